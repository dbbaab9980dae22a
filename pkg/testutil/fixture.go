package testutil

import (
	"context"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
)

// InsertUsers seeds the mock database with three users. They all logged in
// recently, so none of them is subject to the stale point reset.
func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	users := []*entity.User{
		{
			Base:        entity.Base{ID: "user1"},
			Name:        "user1",
			Email:       "user1@example.com",
			Role:        entity.UserRole,
			LastLoginAt: time.Now(),
		},
		{
			Base:        entity.Base{ID: "user2"},
			Name:        "user2",
			Email:       "user2@example.com",
			Role:        entity.UserRole,
			LastLoginAt: time.Now(),
		},
		{
			Base:        entity.Base{ID: "admin"},
			Name:        "admin",
			Email:       "admin@example.com",
			Role:        entity.AdminRole,
			LastLoginAt: time.Now(),
		},
	}

	for _, user := range users {
		if err := userRepo.Create(ctx, user); err != nil {
			panic(err)
		}
	}
}
