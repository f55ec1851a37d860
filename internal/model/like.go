package model

import "time"

// Like 点赞关系
// 复合唯一键，同一用户对同一帖子至多一条
// idx_like_pair = (user_id, post_id)
type Like struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"userId" gorm:"type:varchar(36);index:idx_like_pair,unique;not null"`
	PostID string `json:"postId" gorm:"type:varchar(36);not null;index:idx_like_pair,unique;index:idx_like_post"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Like) TableName() string { return "likes" }
