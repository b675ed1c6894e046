package models

import "time"

// Role values stored on users.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Provider values for how the account was created.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
	ProviderKakao  = "KAKAO"
)

type User struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username        string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"column:password_hash;not null" json:"-"`
	Nickname        string    `gorm:"size:50" json:"nickname"`
	ProfileImageURL string    `json:"profile_image_url"`
	Bio             string    `gorm:"type:text" json:"bio"`
	Location        string    `gorm:"size:100" json:"location"`
	Website         string    `gorm:"size:200" json:"website"`
	Role            string    `gorm:"default:'USER';not null" json:"role"`
	Provider        string    `gorm:"default:'LOCAL';not null" json:"provider"`
	ProviderID      string    `gorm:"index" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
