package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type CertificationRepository interface {
	Create(ctx context.Context, data *entity.Certification) error
	GetByID(ctx context.Context, id string) (*entity.Certification, error)
	Get(ctx context.Context, challengeID, userID string) (*entity.Certification, error)
	GetListByChallengeID(ctx context.Context, challengeID string) ([]entity.Certification, error)
	Delete(ctx context.Context, id string) error
}

type certificationRepository struct{}

func NewCertificationRepository() *certificationRepository {
	return &certificationRepository{}
}

func (r *certificationRepository) Create(ctx context.Context, data *entity.Certification) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *certificationRepository) GetByID(ctx context.Context, id string) (*entity.Certification, error) {
	var record entity.Certification
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *certificationRepository) Get(
	ctx context.Context, challengeID, userID string,
) (*entity.Certification, error) {
	var record entity.Certification
	err := xcontext.DB(ctx).
		Where("challenge_id=? AND user_id=?", challengeID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *certificationRepository) GetListByChallengeID(
	ctx context.Context, challengeID string,
) ([]entity.Certification, error) {
	var records []entity.Certification
	err := xcontext.DB(ctx).
		Where("challenge_id=?", challengeID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes the row for real so the user can certify the challenge
// again later; a soft delete would keep the unique (challenge, user) slot
// occupied.
func (r *certificationRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Unscoped().Where("id=?", id).Delete(&entity.Certification{}).Error
}
