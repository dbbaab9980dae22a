package entity

import "time"

// Post is a community article. Tags live in their own table and are
// replaced as a set on every update.
type Post struct {
	Base
	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Title   string
	Content string
}

type PostTag struct {
	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	Tag string `gorm:"primaryKey"`
}

type PostLike struct {
	CreatedAt time.Time

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

type Review struct {
	Base
	PostID string `gorm:"index"`
	Post   Post   `gorm:"foreignKey:PostID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Content string
}

const (
	ReactionLike    = "LIKE"
	ReactionDislike = "DISLIKE"
)

// ReviewReaction is one user's reaction to a review. Like and dislike are
// independent toggles, so the same user may hold both at once.
type ReviewReaction struct {
	CreatedAt time.Time

	ReviewID string `gorm:"primaryKey"`
	Review   Review `gorm:"foreignKey:ReviewID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Kind string `gorm:"primaryKey"`
}
