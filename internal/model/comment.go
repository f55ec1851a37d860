package model

import "time"

// Comment 帖子评论
type Comment struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content string `json:"content" gorm:"type:text;not null"`
	UserID  string `json:"userId" gorm:"type:varchar(36);index:idx_comment_user;not null"`
	PostID  string `json:"postId" gorm:"type:varchar(36);index:idx_comment_post;not null"`
	User    *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }
