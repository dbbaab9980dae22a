package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

func newChallengeDomain() *challengeDomain {
	userRepo := repository.NewUserRepository()
	return NewChallengeDomain(
		repository.NewChallengeRepository(),
		repository.NewCertificationRepository(),
		userRepo,
		points.NewManager(userRepo, repository.NewPointLedgerRepository()),
	)
}

func createChallenge(t *testing.T, ctx context.Context, d *challengeDomain) string {
	t.Helper()

	adminCtx := xcontext.WithRequestUserID(ctx, "admin")
	resp, err := d.Create(adminCtx, &model.CreateChallengeRequest{
		Title:     "plastic free week",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	return resp.ID
}

func Test_challengeDomain_CreateRequiresAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChallengeDomain()

	_, err := d.Create(ctx, &model.CreateChallengeRequest{
		Title:     "no",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Only admin")

	adminCtx := xcontext.WithRequestUserID(ctx, "admin")
	resp, err := d.Create(adminCtx, &model.CreateChallengeRequest{
		Title:     "yes",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
}

func Test_challengeDomain_ToggleParticipation(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChallengeDomain()
	challengeID := createChallenge(t, ctx, d)

	resp, err := d.ToggleParticipation(ctx, &model.ToggleParticipationRequest{ChallengeID: challengeID})
	require.NoError(t, err)
	require.True(t, resp.IsParticipating)

	got, err := d.Get(ctx, &model.GetChallengeRequest{ChallengeID: challengeID})
	require.NoError(t, err)
	require.True(t, got.IsParticipant)
	require.Equal(t, int64(1), got.ParticipantCount)
	require.True(t, got.InProgress)
	require.False(t, got.Ended)

	resp, err = d.ToggleParticipation(ctx, &model.ToggleParticipationRequest{ChallengeID: challengeID})
	require.NoError(t, err)
	require.False(t, resp.IsParticipating)
}

func Test_challengeDomain_CertificationMovesPoints(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChallengeDomain()
	challengeID := createChallenge(t, ctx, d)

	userRepo := repository.NewUserRepository()

	resp, err := d.CreateCertification(ctx, &model.CreateCertificationRequest{
		ChallengeID: challengeID,
		Title:       "done",
		Content:     "used a tumbler all week",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(500), user.Points)

	// Only one certification per user and challenge.
	_, err = d.CreateCertification(ctx, &model.CreateCertificationRequest{
		ChallengeID: challengeID,
		Title:       "again",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already certified")

	// Removing the certification claws the reward back.
	_, err = d.DeleteCertification(ctx, &model.DeleteCertificationRequest{CertificationID: resp.ID})
	require.NoError(t, err)

	user, err = userRepo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(0), user.Points)

	// The ledger keeps both movements.
	ledgerRepo := repository.NewPointLedgerRepository()
	ledger, err := ledgerRepo.GetByUserID(ctx, "user1")
	require.NoError(t, err)

	count, err := ledgerRepo.CountEntries(ctx, ledger.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func Test_challengeDomain_DeleteCertificationRequiresOwner(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChallengeDomain()
	challengeID := createChallenge(t, ctx, d)

	resp, err := d.CreateCertification(ctx, &model.CreateCertificationRequest{
		ChallengeID: challengeID,
		Title:       "mine",
	})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	_, err = d.DeleteCertification(ctx2, &model.DeleteCertificationRequest{CertificationID: resp.ID})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Only the owner")
}

func Test_challengeDomain_GetListFilters(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.InsertUsers(ctx)

	d := newChallengeDomain()

	_, err := d.Create(ctx, &model.CreateChallengeRequest{
		Title:     "running",
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = d.Create(ctx, &model.CreateChallengeRequest{
		Title:     "walking",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	active, err := d.GetList(ctx, &model.GetChallengesRequest{Q: "active", Limit: 10})
	require.NoError(t, err)
	require.Len(t, active.Challenges, 1)
	require.Equal(t, "walking", active.Challenges[0].Title)

	ended, err := d.GetList(ctx, &model.GetChallengesRequest{Q: "ended", Limit: 10})
	require.NoError(t, err)
	require.Len(t, ended.Challenges, 1)
	require.Equal(t, "running", ended.Challenges[0].Title)

	all, err := d.GetList(ctx, &model.GetChallengesRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all.Challenges, 2)

	_, err = d.GetList(ctx, &model.GetChallengesRequest{Q: "bogus", Limit: 10})
	require.Error(t, err)
}
