package model

import "time"

// Follow is a directed edge: follower follows followee. The composite
// unique index idx_follow_pair = (follower_id, followee_id) guarantees at
// most one edge per ordered pair.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID string    `json:"follower_id" gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string    `json:"followee_id" gorm:"type:varchar(36);index:idx_follow_followee;index:idx_follow_pair,unique;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
