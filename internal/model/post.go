package model

import "time"

// MaxPostLen bounds the post body, same limit as about_me.
const MaxPostLen = 140

// Post is a short text update. The autoincrement ID doubles as the
// tiebreak when two posts share a timestamp, so feed order is stable.
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	Body      string    `json:"body" gorm:"type:varchar(140);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_created"`
}

func (Post) TableName() string { return "posts" }
