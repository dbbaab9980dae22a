package points

import (
	"context"
	"errors"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/google/uuid"
)

// staleAfter is the forgiveness window: accounts whose last login is older
// than this lose their spendable balance.
const staleAfter = 365 * 24 * time.Hour

var ErrNonPositiveAmount = errors.New("point amount must be positive")

// Manager owns every balance mutation. The stored balance and the ledger
// append always commit in the same transaction, so the two cannot drift.
type Manager struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.PointLedgerRepository
}

func NewManager(
	userRepo repository.UserRepository,
	ledgerRepo repository.PointLedgerRepository,
) *Manager {
	return &Manager{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

// AddPoints credits amount to the user's balance and appends a credit entry
// to the user's ledger, creating the ledger on first use. TotalPoints is
// left alone.
func (m *Manager) AddPoints(ctx context.Context, userID string, amount int64, reason string) error {
	return m.apply(ctx, userID, amount, reason, true)
}

// SubtractPoints debits amount from the user's balance and appends a debit
// entry. There is no floor check: the balance may go negative.
func (m *Manager) SubtractPoints(ctx context.Context, userID string, amount int64, reason string) error {
	return m.apply(ctx, userID, amount, reason, false)
}

func (m *Manager) apply(ctx context.Context, userID string, amount int64, reason string, isCredit bool) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var err error
	if isCredit {
		err = m.userRepo.IncreasePoints(ctx, userID, amount)
	} else {
		err = m.userRepo.DecreasePoints(ctx, userID, amount)
	}
	if err != nil {
		return err
	}

	ledger, err := m.ledgerRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}

	entry := &entity.PointLedgerEntry{
		Base:     entity.Base{ID: uuid.NewString()},
		LedgerID: ledger.ID,
		IsCredit: isCredit,
		Reason:   reason,
		Amount:   amount,
	}

	if err := m.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

// ResetIfStale zeroes the in-memory balance of a user whose last login is
// strictly more than 365 days before asOf. It reports whether the balance
// changed; persisting the zeroed balance is the caller's responsibility.
func (m *Manager) ResetIfStale(user *entity.User, asOf time.Time) bool {
	if asOf.Sub(user.LastLoginAt) > staleAfter {
		user.Points = 0
		return true
	}

	return false
}
