package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/pagination"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// RelationshipService maintains the directed follow graph.
type RelationshipService interface {
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	Following(ctx context.Context, userID string, page, pageSize int) (pagination.Page[string], error)
	Followers(ctx context.Context, userID string, page, pageSize int) (pagination.Page[string], error)
	Stats(ctx context.Context, userID string) (cache.FollowerStats, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	stats      *cache.FollowerStatsCache // optional
	log        *zap.Logger
}

func NewRelationshipService(followRepo repository.FollowRepository, stats *cache.FollowerStatsCache, log *zap.Logger) RelationshipService {
	return &relationshipService{followRepo: followRepo, stats: stats, log: log}
}

// Follow inserts the actor→target edge. Repeated calls are no-ops; a
// self-follow is a validation failure, never an edge.
func (s *relationshipService) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, actorID, targetID); err != nil {
		return err
	}
	s.invalidate(ctx, actorID, targetID)
	return nil
}

// Unfollow removes the edge if present; absent edges are a no-op.
func (s *relationshipService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
		return err
	}
	s.invalidate(ctx, actorID, targetID)
	return nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	return s.followRepo.Exists(ctx, actorID, targetID)
}

func (s *relationshipService) Following(ctx context.Context, userID string, page, pageSize int) (pagination.Page[string], error) {
	page, pageSize = pagination.Clamp(page, pageSize, 10)
	items, err := s.followRepo.ListFollowing(ctx, userID, pagination.Offset(page, pageSize), pageSize)
	if err != nil {
		return pagination.Page[string]{}, err
	}
	total, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return pagination.Page[string]{}, err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.FolloweeID
	}
	return pagination.New(ids, page, pageSize, total), nil
}

func (s *relationshipService) Followers(ctx context.Context, userID string, page, pageSize int) (pagination.Page[string], error) {
	page, pageSize = pagination.Clamp(page, pageSize, 10)
	items, err := s.followRepo.ListFollowers(ctx, userID, pagination.Offset(page, pageSize), pageSize)
	if err != nil {
		return pagination.Page[string]{}, err
	}
	total, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return pagination.Page[string]{}, err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.FollowerID
	}
	return pagination.New(ids, page, pageSize, total), nil
}

// Stats serves follower/following counts, via the cache when one is wired.
func (s *relationshipService) Stats(ctx context.Context, userID string) (cache.FollowerStats, error) {
	if s.stats != nil {
		if st, ok := s.stats.Get(ctx, userID); ok {
			return st, nil
		}
	}
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return cache.FollowerStats{}, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return cache.FollowerStats{}, err
	}
	st := cache.FollowerStats{Followers: followers, Following: following}
	if s.stats != nil {
		s.stats.Set(ctx, userID, st)
	}
	return st, nil
}

func (s *relationshipService) invalidate(ctx context.Context, userIDs ...string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx, userIDs...); err != nil {
		s.log.Warn("follower stats invalidation failed", zap.Error(err))
	}
}
