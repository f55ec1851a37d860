package model

import "time"

// Follow 关注关系（A 关注 B）
// 复合唯一键，避免重复关注
// idx_follow_pair = (follower_id, following_id)
type Follow struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID  string `json:"followerId" gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FollowingID string `json:"followingId" gorm:"type:varchar(36);not null;index:idx_follow_pair,unique;index:idx_follow_following"`

	Follower  *User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Following *User `json:"following,omitempty" gorm:"foreignKey:FollowingID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Follow) TableName() string { return "follows" }
