package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

func newPostService(t *testing.T, db *gorm.DB, perPage int) *postService {
	t.Helper()
	return NewPostService(repository.NewPostRepository(db), perPage).(*postService)
}

func TestCreatePostValidation(t *testing.T) {
	svc := newPostService(t, setupDB(t), 25)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrPostBodyRequired)

	_, err = svc.Create(ctx, "alice", strings.Repeat("x", 141))
	assert.ErrorIs(t, err, ErrPostBodyTooLong)

	post, err := svc.Create(ctx, "alice", strings.Repeat("x", 140))
	require.NoError(t, err)
	assert.Equal(t, "alice", post.AuthorID)
	assert.NotZero(t, post.ID)
}

func TestHomeFeedFollowScenario(t *testing.T) {
	db := setupDB(t)
	posts := newPostService(t, db, 25)
	rels := newRelService(t, db, nil)
	ctx := context.Background()

	require.NoError(t, rels.Follow(ctx, "alice", "bob"))
	_, err := posts.Create(ctx, "bob", "hello")
	require.NoError(t, err)

	feed, err := posts.HomeFeed(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "hello", feed.Items[0].Body)

	require.NoError(t, rels.Unfollow(ctx, "alice", "bob"))
	feed, err = posts.HomeFeed(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
	assert.False(t, feed.HasNext)
}

func TestHomeFeedExcludesViewerOwnPosts(t *testing.T) {
	db := setupDB(t)
	posts := newPostService(t, db, 25)
	rels := newRelService(t, db, nil)
	ctx := context.Background()

	require.NoError(t, rels.Follow(ctx, "alice", "bob"))
	_, err := posts.Create(ctx, "alice", "mine")
	require.NoError(t, err)
	_, err = posts.Create(ctx, "bob", "theirs")
	require.NoError(t, err)

	feed, err := posts.HomeFeed(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "theirs", feed.Items[0].Body)
}

func TestHomeFeedOrderedByTimestampDesc(t *testing.T) {
	db := setupDB(t)
	posts := newPostService(t, db, 25)
	rels := newRelService(t, db, nil)
	ctx := context.Background()

	require.NoError(t, rels.Follow(ctx, "v", "bob"))
	require.NoError(t, rels.Follow(ctx, "v", "carol"))

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{base.Add(3 * time.Hour), base.Add(time.Hour), base.Add(2 * time.Hour), base}
	authors := []string{"bob", "carol", "bob", "carol"}
	for i, at := range times {
		at := at
		posts.now = func() time.Time { return at }
		_, err := posts.Create(ctx, authors[i], fmt.Sprintf("p%d", i))
		require.NoError(t, err)
	}

	feed, err := posts.HomeFeed(ctx, "v", 1)
	require.NoError(t, err)
	require.Len(t, feed.Items, 4)
	bodies := make([]string, len(feed.Items))
	for i, p := range feed.Items {
		bodies[i] = p.Body
	}
	assert.Equal(t, []string{"p0", "p2", "p1", "p3"}, bodies)
}

func TestExplorePaginationContract(t *testing.T) {
	db := setupDB(t)
	svc := newPostService(t, db, 25)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		_, err := svc.Create(ctx, "bob", fmt.Sprintf("post %d", i))
		require.NoError(t, err)
	}

	page1, err := svc.Explore(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 25)
	assert.Equal(t, int64(30), page1.Total)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	assert.Equal(t, 2, page1.NextPage)
	assert.Equal(t, "post 29", page1.Items[0].Body)

	page2, err := svc.Explore(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)
	assert.Equal(t, 1, page2.PrevPage)
	assert.Equal(t, "post 0", page2.Items[4].Body)
}

func TestFeedPageBounds(t *testing.T) {
	db := setupDB(t)
	svc := newPostService(t, db, 25)
	ctx := context.Background()
	_, err := svc.Create(ctx, "bob", "only one")
	require.NoError(t, err)

	// Past the data: empty, no next.
	page, err := svc.Explore(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)

	// Non-positive pages are treated as page 1.
	for _, n := range []int{0, -5} {
		page, err = svc.Explore(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Items, 1)
	}
}

func TestAuthorFeed(t *testing.T) {
	db := setupDB(t)
	svc := newPostService(t, db, 25)
	ctx := context.Background()

	_, err := svc.Create(ctx, "bob", "bob post")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "carol", "carol post")
	require.NoError(t, err)

	feed, err := svc.AuthorFeed(ctx, "bob", 1)
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "bob post", feed.Items[0].Body)
	assert.Equal(t, int64(1), feed.Total)
}

func TestPostsAreImmutableRecords(t *testing.T) {
	db := setupDB(t)
	svc := newPostService(t, db, 25)
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }
	post, err := svc.Create(ctx, "bob", "hello")
	require.NoError(t, err)

	var stored model.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, at.UTC(), stored.CreatedAt.UTC())
	assert.Equal(t, "bob", stored.AuthorID)
}
