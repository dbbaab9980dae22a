package entity

import "time"

// Follow is the single source of truth for the social graph: one row per
// directed "follower follows followee" edge. Both the following and the
// followers view of a user are queries over this table, never a second
// stored collection.
type Follow struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FolloweeID string `gorm:"primaryKey"`
	Followee   User   `gorm:"foreignKey:FolloweeID"`
}
