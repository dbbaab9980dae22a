package entity

import "time"

type Challenge struct {
	Base
	Title       string
	Description string

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`

	StartDate time.Time
	EndDate   time.Time
}

type ChallengeParticipant struct {
	CreatedAt time.Time

	ChallengeID string    `gorm:"primaryKey"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

// Certification records one user's proof of participation in a challenge.
// At most one per (challenge, user); creating it credits points, deleting
// it debits them again.
type Certification struct {
	Base
	ChallengeID string    `gorm:"index:idx_certifications_challenge_user,unique"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID string `gorm:"index:idx_certifications_challenge_user,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	Title   string
	Content string
}
