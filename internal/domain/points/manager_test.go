package points

import (
	"testing"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Manager_AddThenSubtract(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	ledgerRepo := repository.NewPointLedgerRepository()
	manager := NewManager(userRepo, ledgerRepo)

	require.NoError(t, manager.AddPoints(ctx, "user1", 500, entity.PointReasonParticipation))
	require.NoError(t, manager.SubtractPoints(ctx, "user1", 500, entity.PointReasonParticipationCanceled))

	user, err := userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(0), user.Points)

	// Both movements stay in the ledger even though the balance is back
	// where it started.
	ledger, err := ledgerRepo.GetByUserID(ctx, "user1")
	require.NoError(t, err)

	// Newest first: the cancellation debit precedes the original credit.
	entries, err := ledgerRepo.GetEntries(ctx, ledger.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.False(t, entries[0].IsCredit)
	require.Equal(t, entity.PointReasonParticipationCanceled, entries[0].Reason)
	require.True(t, entries[1].IsCredit)
	require.Equal(t, entity.PointReasonParticipation, entries[1].Reason)

	count, err := ledgerRepo.CountEntries(ctx, ledger.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func Test_Manager_BalanceMayGoNegative(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	manager := NewManager(userRepo, repository.NewPointLedgerRepository())

	require.NoError(t, manager.SubtractPoints(ctx, "user1", 300, "주문"))

	user, err := userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(-300), user.Points)
}

func Test_Manager_RejectsNonPositiveAmount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	manager := NewManager(repository.NewUserRepository(), repository.NewPointLedgerRepository())

	require.ErrorIs(t, manager.AddPoints(ctx, "user1", 0, "x"), ErrNonPositiveAmount)
	require.ErrorIs(t, manager.AddPoints(ctx, "user1", -1, "x"), ErrNonPositiveAmount)
	require.ErrorIs(t, manager.SubtractPoints(ctx, "user1", 0, "x"), ErrNonPositiveAmount)
}

func Test_Manager_TotalPointsUntouched(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.SetTotalPoints(ctx, "user1", 1000))

	manager := NewManager(userRepo, repository.NewPointLedgerRepository())
	require.NoError(t, manager.AddPoints(ctx, "user1", 500, entity.PointReasonParticipation))

	user, err := userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(500), user.Points)
	require.Equal(t, int64(1000), user.TotalPoints)
}

func Test_Manager_SingleLedgerPerUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	ledgerRepo := repository.NewPointLedgerRepository()
	manager := NewManager(repository.NewUserRepository(), ledgerRepo)

	require.NoError(t, manager.AddPoints(ctx, "user1", 100, "a"))
	require.NoError(t, manager.AddPoints(ctx, "user1", 100, "b"))

	first, err := ledgerRepo.GetOrCreateByUserID(ctx, "user1")
	require.NoError(t, err)

	second, err := ledgerRepo.GetOrCreateByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	count, err := ledgerRepo.CountEntries(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func Test_Manager_ResetIfStale(t *testing.T) {
	manager := NewManager(nil, nil)
	now := time.Now()

	// Exactly 365 days is still within the window.
	user := &entity.User{Points: 700, LastLoginAt: now.Add(-365 * 24 * time.Hour)}
	require.False(t, manager.ResetIfStale(user, now))
	require.Equal(t, int64(700), user.Points)

	user = &entity.User{Points: 700, LastLoginAt: now.Add(-365*24*time.Hour - time.Second)}
	require.True(t, manager.ResetIfStale(user, now))
	require.Equal(t, int64(0), user.Points)

	// Already zero still counts as a reset when stale.
	user = &entity.User{Points: 0, LastLoginAt: now.Add(-400 * 24 * time.Hour)}
	require.True(t, manager.ResetIfStale(user, now))
	require.Equal(t, int64(0), user.Points)
}
