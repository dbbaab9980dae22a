package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

func newAuthDomain() *authDomain {
	userRepo := repository.NewUserRepository()
	return NewAuthDomain(
		userRepo,
		repository.NewRefreshTokenRepository(),
		points.NewManager(userRepo, repository.NewPointLedgerRepository()),
	)
}

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomain()

	registered, err := d.Register(ctx, &model.RegisterRequest{
		Name:     "greenday",
		Email:    "greenday@example.com",
		Password: "secret-pw",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)

	// Duplicate name is rejected.
	_, err = d.Register(ctx, &model.RegisterRequest{
		Name:     "greenday",
		Email:    "other@example.com",
		Password: "secret-pw",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already taken")

	resp, err := d.Login(ctx, &model.LoginRequest{Name: "greenday", Password: "secret-pw"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "greenday@example.com", resp.User.Email)

	payload, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, payload.ID)
	require.Equal(t, "greenday", payload.Name)

	_, err = d.Login(ctx, &model.LoginRequest{Name: "greenday", Password: "wrong"})
	require.Error(t, err)

	_, err = d.Login(ctx, &model.LoginRequest{Name: "nobody", Password: "secret-pw"})
	require.Error(t, err)
}

func Test_authDomain_RefreshRotates(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomain()

	_, err := d.Register(ctx, &model.RegisterRequest{
		Name:     "rotator",
		Email:    "rotator@example.com",
		Password: "secret-pw",
	})
	require.NoError(t, err)

	login, err := d.Login(ctx, &model.LoginRequest{Name: "rotator", Password: "secret-pw"})
	require.NoError(t, err)

	refreshed, err := d.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is single use.
	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

func Test_authDomain_LoginResetsStalePoints(t *testing.T) {
	ctx := testutil.MockContext()
	d := newAuthDomain()

	registered, err := d.Register(ctx, &model.RegisterRequest{
		Name:     "dormant",
		Email:    "dormant@example.com",
		Password: "secret-pw",
	})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.SetPoints(ctx, registered.ID, 700))
	require.NoError(t, userRepo.SetTotalPoints(ctx, registered.ID, 700))
	require.NoError(t, userRepo.UpdateLastLogin(ctx, registered.ID,
		time.Now().Add(-366*24*time.Hour)))

	resp, err := d.Login(ctx, &model.LoginRequest{Name: "dormant", Password: "secret-pw"})
	require.NoError(t, err)

	// The spendable balance is forfeited, the lifetime counter stays.
	require.Equal(t, int64(0), resp.User.Points)
	require.Equal(t, int64(700), resp.User.TotalPoints)

	user, err := userRepo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), user.Points)

	// A second login inside the window keeps the balance.
	require.NoError(t, userRepo.SetPoints(ctx, registered.ID, 300))
	resp, err = d.Login(ctx, &model.LoginRequest{Name: "dormant", Password: "secret-pw"})
	require.NoError(t, err)
	require.Equal(t, int64(300), resp.User.Points)
}
