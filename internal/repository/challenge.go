package repository

import (
	"context"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type ChallengeFilter string

const (
	ChallengeFilterAll    ChallengeFilter = ""
	ChallengeFilterActive ChallengeFilter = "active"
	ChallengeFilterEnded  ChallengeFilter = "ended"
)

type GetChallengeListFilter struct {
	Filter ChallengeFilter
	Now    time.Time
	Offset int
	Limit  int
}

type ChallengeRepository interface {
	Create(ctx context.Context, data *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)
	GetList(ctx context.Context, filter GetChallengeListFilter) ([]entity.Challenge, error)
	Update(ctx context.Context, data *entity.Challenge) error
	Delete(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, challengeID, userID string) error
	RemoveParticipant(ctx context.Context, challengeID, userID string) error
	IsParticipant(ctx context.Context, challengeID, userID string) (bool, error)
	CountParticipants(ctx context.Context, challengeID string) (int64, error)
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	var record entity.Challenge
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *challengeRepository) GetList(
	ctx context.Context, filter GetChallengeListFilter,
) ([]entity.Challenge, error) {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{})

	switch filter.Filter {
	case ChallengeFilterActive:
		tx = tx.Where("end_date > ?", filter.Now)
	case ChallengeFilterEnded:
		tx = tx.Where("end_date <= ?", filter.Now)
	}

	var records []entity.Challenge
	err := tx.Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *challengeRepository) Update(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=?", data.ID).
		Updates(map[string]any{
			"title":       data.Title,
			"description": data.Description,
			"start_date":  data.StartDate,
			"end_date":    data.EndDate,
		}).Error
}

func (r *challengeRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Challenge{}).Error
}

func (r *challengeRepository) AddParticipant(ctx context.Context, challengeID, userID string) error {
	return xcontext.DB(ctx).Create(&entity.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
	}).Error
}

func (r *challengeRepository) RemoveParticipant(ctx context.Context, challengeID, userID string) error {
	return xcontext.DB(ctx).
		Where("challenge_id=? AND user_id=?", challengeID, userID).
		Delete(&entity.ChallengeParticipant{}).Error
}

func (r *challengeRepository) IsParticipant(ctx context.Context, challengeID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Where("challenge_id=? AND user_id=?", challengeID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *challengeRepository) CountParticipants(ctx context.Context, challengeID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Where("challenge_id=?", challengeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
