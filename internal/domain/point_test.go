package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
)

func Test_pointDomain_GetMyLedger(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()
	ledgerRepo := repository.NewPointLedgerRepository()
	manager := points.NewManager(userRepo, ledgerRepo)

	require.NoError(t, manager.AddPoints(ctx, "user1", 100, "a"))
	require.NoError(t, manager.AddPoints(ctx, "user1", 200, "b"))
	require.NoError(t, manager.SubtractPoints(ctx, "user1", 50, "c"))

	d := NewPointDomain(userRepo, ledgerRepo)

	balance, err := d.GetBalance(ctx, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(250), balance.Points)

	resp, err := d.GetMyLedger(ctx, &model.GetMyLedgerRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	// Newest first.
	require.Equal(t, "c", resp.Entries[0].Reason)
	require.False(t, resp.Entries[0].IsCredit)

	// The default limit applies when the request leaves it out.
	resp, err = d.GetMyLedger(ctx, &model.GetMyLedgerRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	// And the maximum is enforced.
	_, err = d.GetMyLedger(ctx, &model.GetMyLedgerRequest{Limit: 1000})
	require.Error(t, err)
	require.Contains(t, err.Error(), "maximum")
}
