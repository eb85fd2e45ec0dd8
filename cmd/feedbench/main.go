package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// Seeds one viewer following AUTHORS accounts with POSTS posts each, then
// measures the home-feed page-1 read.
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	log := zap.NewNop()

	userSvc := service.NewUserService(repository.NewUserRepository(db), log)
	relSvc := service.NewRelationshipService(repository.NewFollowRepository(db), nil, log)
	postSvc := service.NewPostService(repository.NewPostRepository(db), cfg.Feed.PostsPerPage)

	authors := envInt("AUTHORS", 200)
	posts := envInt("POSTS", 50)
	reads := envInt("READS", 500)

	ctx := context.Background()
	viewer := must(userSvc.Register(ctx, "viewer0", "viewer0@example.com", "p"))
	for i := 0; i < authors; i++ {
		name := fmt.Sprintf("author%04d", i)
		author := must(userSvc.Register(ctx, name, name+"@example.com", "p"))
		if err := relSvc.Follow(ctx, viewer.ID, author.ID); err != nil {
			panic(err)
		}
		for j := 0; j < posts; j++ {
			if _, err := postSvc.Create(ctx, author.ID, fmt.Sprintf("%s post %d", name, j)); err != nil {
				panic(err)
			}
		}
	}

	durations := make([]time.Duration, 0, reads)
	for i := 0; i < reads; i++ {
		st := time.Now()
		page := must(postSvc.HomeFeed(ctx, viewer.ID, 1))
		durations = append(durations, time.Since(st))
		if len(page.Items) == 0 {
			panic("empty feed page")
		}
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	fmt.Printf("AUTHORS=%d POSTS=%d READS=%d\n", authors, posts, reads)
	fmt.Printf("Home feed page-1 read: avg=%v p95=%v p99=%v\n",
		sum/time.Duration(len(durations)), pct(durations, 0.95), pct(durations, 0.99))
}
