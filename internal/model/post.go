package model

import "time"

// Post 帖子；归属唯一用户，不可转移
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"-" gorm:"index:idx_post_owner;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }
