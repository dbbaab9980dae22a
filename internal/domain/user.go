package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

// recentLedgerEntries is how many ledger entries a profile view includes.
const recentLedgerEntries = 5

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	ToggleFollow(context.Context, *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetContacts(context.Context, *model.GetContactsRequest) (*model.GetContactsResponse, error)
}

type userDomain struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	ledgerRepo repository.PointLedgerRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	ledgerRepo repository.PointLedgerRepository,
) *userDomain {
	return &userDomain{
		userRepo:   userRepo,
		followRepo: followRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followingCount, err := d.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	followerCount, err := d.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	isFollowing := false
	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		isFollowing, err = d.followRepo.Exists(ctx, requestUserID, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check follow edge: %v", err)
			return nil, errorx.Unknown
		}
	}

	// The profile page shows the latest point movements. Viewing a profile
	// also materializes the ledger, so the web of ledgers grows lazily.
	ledger, err := d.ledgerRepo.GetOrCreateByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point ledger: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.ledgerRepo.GetEntries(ctx, ledger.ID, 0, recentLedgerEntries)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger entries: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.PointLedgerEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, model.ConvertPointLedgerEntry(&entries[i]))
	}

	return &model.GetUserResponse{
		User:           model.ConvertUser(user, false),
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
		IsFollowing:    isFollowing,
		RecentEntries:  clientEntries,
	}, nil
}

func (d *userDomain) ToggleFollow(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	target, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// Following yourself is silently ignored; the caller just gets the
	// current state back.
	if requestUserID != target.ID {
		following, err := d.followRepo.Exists(ctx, requestUserID, target.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check follow edge: %v", err)
			return nil, errorx.Unknown
		}

		if following {
			err = d.followRepo.Delete(ctx, requestUserID, target.ID)
		} else {
			err = d.followRepo.Create(ctx, &entity.Follow{
				CreatedAt:  time.Now(),
				FollowerID: requestUserID,
				FolloweeID: target.ID,
			})
		}
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot toggle follow edge: %v", err)
			return nil, errorx.Unknown
		}
	}

	isFollowing, err := d.followRepo.Exists(ctx, requestUserID, target.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check follow edge: %v", err)
		return nil, errorx.Unknown
	}

	followingCount, err := d.followRepo.CountFollowing(ctx, target.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	followerCount, err := d.followRepo.CountFollowers(ctx, target.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleFollowResponse{
		IsFollowing:    isFollowing,
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
	}, nil
}

func (d *userDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	users, err := d.followRepo.GetFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowingResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *userDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	users, err := d.followRepo.GetFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowersResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *userDomain) GetContacts(
	ctx context.Context, req *model.GetContactsRequest,
) (*model.GetContactsResponse, error) {
	users, err := d.followRepo.GetContacts(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get contacts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetContactsResponse{Users: model.ConvertUsers(users)}, nil
}
