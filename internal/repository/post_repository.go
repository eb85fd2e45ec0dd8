package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

// feedOrder is the single ordering rule for every post stream: newest
// first, autoincrement id as the tiebreak for equal timestamps.
const feedOrder = "posts.created_at DESC, posts.id DESC"

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListFollowed returns posts authored by accounts the viewer follows
	// (the viewer's own posts are not part of this stream).
	ListFollowed(ctx context.Context, viewerID string, offset, limit int) ([]*model.Post, int64, error)
	// ListAll is the explore stream: every post, globally ordered.
	ListAll(ctx context.Context, offset, limit int) ([]*model.Post, int64, error)
	// ListByAuthor is a single account's posts.
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListFollowed(ctx context.Context, viewerID string, offset, limit int) ([]*model.Post, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Joins("JOIN follows ON follows.followee_id = posts.author_id").
		Where("follows.follower_id = ?", viewerID)
	return r.page(q, offset, limit)
}

func (r *postRepository) ListAll(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	return r.page(q, offset, limit)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID)
	return r.page(q, offset, limit)
}

func (r *postRepository) page(q *gorm.DB, offset, limit int) ([]*model.Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []*model.Post
	err := q.Order(feedOrder).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
