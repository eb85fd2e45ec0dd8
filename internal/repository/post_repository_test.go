package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
)

func seedPost(t *testing.T, repo PostRepository, authorID, body string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: authorID, Body: body, CreatedAt: at}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestListFollowedExcludesOwnAndUnfollowed(t *testing.T) {
	db := setupDB(t)
	posts := NewPostRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()
	for _, id := range []string{"alice", "bob", "carol"} {
		seedUser(t, db, id)
	}
	require.NoError(t, follows.Create(ctx, "alice", "bob"))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, posts, "bob", "from bob", base)
	seedPost(t, posts, "carol", "from carol", base.Add(time.Minute))
	seedPost(t, posts, "alice", "from alice herself", base.Add(2*time.Minute))

	got, total, err := posts.ListFollowed(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "from bob", got[0].Body)
}

func TestFeedOrderingNewestFirstWithIDTiebreak(t *testing.T) {
	db := setupDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()
	seedUser(t, db, "bob")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, posts, "bob", "oldest", base)
	seedPost(t, posts, "bob", "tied first", base.Add(time.Hour))
	seedPost(t, posts, "bob", "tied second", base.Add(time.Hour))
	seedPost(t, posts, "bob", "newest", base.Add(2*time.Hour))

	got, total, err := posts.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, got, 4)
	assert.Equal(t, "newest", got[0].Body)
	// Equal timestamps: the later insert (higher id) wins.
	assert.Equal(t, "tied second", got[1].Body)
	assert.Equal(t, "tied first", got[2].Body)
	assert.Equal(t, "oldest", got[3].Body)
}

func TestListByAuthorWithOffsetLimit(t *testing.T) {
	db := setupDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedPost(t, posts, "bob", fmt.Sprintf("bob %d", i), base.Add(time.Duration(i)*time.Minute))
	}
	seedPost(t, posts, "carol", "not bob", base.Add(time.Hour))

	got, total, err := posts.ListByAuthor(ctx, "bob", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, got, 5)
	assert.Equal(t, "bob 6", got[0].Body)

	got, total, err = posts.ListByAuthor(ctx, "bob", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, got, 2)
	assert.Equal(t, "bob 0", got[1].Body)
}
