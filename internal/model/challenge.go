package model

import "time"

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type Certification struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateChallengeRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type CreateChallengeResponse struct {
	ID string `json:"id"`
}

type UpdateChallengeRequest struct {
	ChallengeID string    `json:"challenge_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateChallengeResponse struct{}

type DeleteChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type DeleteChallengeResponse struct{}

type GetChallengesRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type GetChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type GetChallengeResponse struct {
	Challenge        Challenge       `json:"challenge"`
	RemainingDays    int             `json:"remaining_days"`
	Ended            bool            `json:"ended"`
	InProgress       bool            `json:"in_progress"`
	IsParticipant    bool            `json:"is_participant"`
	HasCertified     bool            `json:"has_certified"`
	ParticipantCount int64           `json:"participant_count"`
	Certifications   []Certification `json:"certifications"`
}

type ToggleParticipationRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type ToggleParticipationResponse struct {
	IsParticipating bool `json:"is_participating"`
}

type CreateCertificationRequest struct {
	ChallengeID string `json:"challenge_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

type CreateCertificationResponse struct {
	ID string `json:"id"`
}

type DeleteCertificationRequest struct {
	CertificationID string `json:"certification_id"`
}

type DeleteCertificationResponse struct{}
