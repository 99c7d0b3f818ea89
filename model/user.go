package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"unique; not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Verified     bool   `gorm:"default:false" json:"verified"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`

	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID" json:"-"`
}

type VerificationToken struct {
	ID        int    `gorm:"primaryKey;autoincrement"`
	UserID    string `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	Purpose   string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
	Used      bool
}
