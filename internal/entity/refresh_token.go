package entity

import "time"

type RefreshToken struct {
	CreatedAt time.Time

	Token string `gorm:"primaryKey"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Expiration time.Time
}
