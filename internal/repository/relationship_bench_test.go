package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

func setupBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func BenchmarkFollowWrite(b *testing.B) {
	db := setupBenchDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	users := make([]model.User, 1000)
	for i := range users {
		id := fmt.Sprintf("u%04d", i)
		users[i] = model.User{ID: id, Username: id, Email: id + "@example.com", PasswordHash: "p"}
	}
	if err := db.Create(&users).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rng.Intn(len(users))].ID
		to := users[rng.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = repo.Create(ctx, from, to)
	}
}

func BenchmarkHomeFeedQuery(b *testing.B) {
	db := setupBenchDB(b)
	follows := NewFollowRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	// One viewer following N authors with a post each.
	const N = 2000
	viewer := model.User{ID: "v0", Username: "v0", Email: "v0@example.com", PasswordHash: "p"}
	_ = db.Create(&viewer).Error
	base := time.Now()
	for i := 1; i <= N; i++ {
		uid := fmt.Sprintf("u%v", i)
		_ = db.Create(&model.User{ID: uid, Username: uid, Email: uid + "@example.com", PasswordHash: "p"}).Error
		_ = follows.Create(ctx, viewer.ID, uid)
		_ = posts.Create(ctx, &model.Post{AuthorID: uid, Body: "hi", CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := posts.ListFollowed(ctx, viewer.ID, 0, 25); err != nil {
			b.Fatalf("feed query: %v", err)
		}
	}
}
