package model

import "time"

// User 用户主体；Password 永远不出现在 JSON 中
type User struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       string     `json:"email" gorm:"type:varchar(255);uniqueIndex:ux_user_email;not null"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	AvatarURL   string     `json:"avatarUrl" gorm:"type:varchar(255)"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Bio         string     `json:"bio,omitempty" gorm:"type:text"`
	Location    string     `json:"location,omitempty" gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Posts     []Post   `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Followers []Follow `json:"followers,omitempty" gorm:"foreignKey:FollowingID"`
	Following []Follow `json:"following,omitempty" gorm:"foreignKey:FollowerID"`
}

func (User) TableName() string { return "users" }
