package repository

import (
	"context"
	"errors"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PointLedgerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.PointLedger, error)
	GetOrCreateByUserID(ctx context.Context, userID string) (*entity.PointLedger, error)
	CreateEntry(ctx context.Context, data *entity.PointLedgerEntry) error
	GetEntries(ctx context.Context, ledgerID string, offset, limit int) ([]entity.PointLedgerEntry, error)
	CountEntries(ctx context.Context, ledgerID string) (int64, error)
}

type pointLedgerRepository struct{}

func NewPointLedgerRepository() *pointLedgerRepository {
	return &pointLedgerRepository{}
}

func (r *pointLedgerRepository) GetByUserID(ctx context.Context, userID string) (*entity.PointLedger, error) {
	var record entity.PointLedger
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetOrCreateByUserID finds the user's ledger, creating it on first use.
// The unique constraint on user_id resolves a concurrent create: the loser
// observes a duplicate-key error and re-reads the winner's row.
func (r *pointLedgerRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*entity.PointLedger, error) {
	ledger, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return ledger, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ledger = &entity.PointLedger{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
	}

	if err := xcontext.DB(ctx).Create(ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByUserID(ctx, userID)
		}

		return nil, err
	}

	return ledger, nil
}

func (r *pointLedgerRepository) CreateEntry(ctx context.Context, data *entity.PointLedgerEntry) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointLedgerRepository) GetEntries(
	ctx context.Context, ledgerID string, offset, limit int,
) ([]entity.PointLedgerEntry, error) {
	var records []entity.PointLedgerEntry
	err := xcontext.DB(ctx).
		Where("ledger_id=?", ledgerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *pointLedgerRepository) CountEntries(ctx context.Context, ledgerID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PointLedgerEntry{}).
		Where("ledger_id=?", ledgerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
