package service

import (
	"context"
	"errors"
	"time"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/pagination"
)

var (
	ErrPostBodyRequired = errors.New("post body is required")
	ErrPostBodyTooLong  = errors.New("post body exceeds 140 characters")
)

// PostService publishes posts and composes the three post streams. The
// home feed is followed authors only: the viewer's own posts are not
// unioned in, matching the behavior this service replaces.
type PostService interface {
	Create(ctx context.Context, authorID, body string) (*model.Post, error)
	HomeFeed(ctx context.Context, viewerID string, page int) (pagination.Page[*model.Post], error)
	Explore(ctx context.Context, page int) (pagination.Page[*model.Post], error)
	AuthorFeed(ctx context.Context, authorID string, page int) (pagination.Page[*model.Post], error)
}

type postService struct {
	postRepo repository.PostRepository
	perPage  int
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository, postsPerPage int) PostService {
	if postsPerPage < 1 {
		postsPerPage = 25
	}
	return &postService{postRepo: postRepo, perPage: postsPerPage, now: time.Now}
}

func (s *postService) Create(ctx context.Context, authorID, body string) (*model.Post, error) {
	if body == "" {
		return nil, ErrPostBodyRequired
	}
	if len([]rune(body)) > model.MaxPostLen {
		return nil, ErrPostBodyTooLong
	}
	post := &model.Post{AuthorID: authorID, Body: body, CreatedAt: s.now()}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) HomeFeed(ctx context.Context, viewerID string, page int) (pagination.Page[*model.Post], error) {
	page, size := pagination.Clamp(page, s.perPage, s.perPage)
	posts, total, err := s.postRepo.ListFollowed(ctx, viewerID, pagination.Offset(page, size), size)
	if err != nil {
		return pagination.Page[*model.Post]{}, err
	}
	return pagination.New(posts, page, size, total), nil
}

func (s *postService) Explore(ctx context.Context, page int) (pagination.Page[*model.Post], error) {
	page, size := pagination.Clamp(page, s.perPage, s.perPage)
	posts, total, err := s.postRepo.ListAll(ctx, pagination.Offset(page, size), size)
	if err != nil {
		return pagination.Page[*model.Post]{}, err
	}
	return pagination.New(posts, page, size, total), nil
}

func (s *postService) AuthorFeed(ctx context.Context, authorID string, page int) (pagination.Page[*model.Post], error) {
	page, size := pagination.Clamp(page, s.perPage, s.perPage)
	posts, total, err := s.postRepo.ListByAuthor(ctx, authorID, pagination.Offset(page, size), size)
	if err != nil {
		return pagination.Page[*model.Post]{}, err
	}
	return pagination.New(posts, page, size, total), nil
}
