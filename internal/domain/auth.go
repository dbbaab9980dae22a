package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/crypto"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	pointsManager    *points.Manager
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	pointsManager *points.Manager,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		pointsManager:    pointsManager,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name, email, or password")
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Address:        req.Address,
		Phone:          req.Phone,
		IsSeller:       req.IsSeller,
		Role:           entity.UserRole,
		LastLoginAt:    time.Now(),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "The name or email is already taken")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{ID: user.ID}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid name or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.VerifyPassword(user.HashedPassword, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid name or password")
	}

	now := time.Now()
	if d.pointsManager.ResetIfStale(user, now) {
		if err := d.userRepo.SetPoints(ctx, user.ID, 0); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reset stale points: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last login: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.ConvertUser(user, true),
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	stored, err := d.refreshTokenRepo.Get(ctx, crypto.SHA256([]byte(req.RefreshToken)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(stored.Expiration) {
		return nil, errorx.New(errorx.TokenExpired, "The refresh token is expired")
	}

	user, err := d.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Rotate: the presented token is single use.
	if err := d.refreshTokenRepo.Delete(ctx, stored.Token); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete used refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) issueTokens(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	refreshToken, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		Token:      crypto.SHA256([]byte(refreshToken)),
		UserID:     user.ID,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}
