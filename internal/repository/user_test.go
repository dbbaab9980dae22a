package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
)

// The register, certification and get-or-create paths all branch on
// gorm.ErrDuplicatedKey, so the driver has to translate unique violations
// into it.
func Test_userRepository_CreateTranslatesDuplicates(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	userRepo := repository.NewUserRepository()

	err := userRepo.Create(ctx, &entity.User{
		Base:        entity.Base{ID: "user1-copy"},
		Name:        "user1",
		Email:       "copy@example.com",
		Role:        entity.UserRole,
		LastLoginAt: time.Now(),
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
