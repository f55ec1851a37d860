package model

import "time"

// Post 内容主体
type Post struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content  string `json:"content" gorm:"type:text;not null"`
	AuthorID string `json:"authorId" gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author   *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes    []Like    `json:"likes,omitempty" gorm:"foreignKey:PostID"`

	// LikedByUser 按请求主体派生，不落库
	LikedByUser bool `json:"likedByUser" gorm:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }
