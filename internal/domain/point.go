package domain

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type PointDomain interface {
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetMyLedger(context.Context, *model.GetMyLedgerRequest) (*model.GetMyLedgerResponse, error)
}

type pointDomain struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.PointLedgerRepository
}

func NewPointDomain(
	userRepo repository.UserRepository,
	ledgerRepo repository.PointLedgerRepository,
) *pointDomain {
	return &pointDomain{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (d *pointDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceResponse{
		Points:      user.Points,
		TotalPoints: user.TotalPoints,
	}, nil
}

func (d *pointDomain) GetMyLedger(
	ctx context.Context, req *model.GetMyLedgerRequest,
) (*model.GetMyLedgerResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	ledger, err := d.ledgerRepo.GetOrCreateByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point ledger: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.ledgerRepo.GetEntries(ctx, ledger.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger entries: %v", err)
		return nil, errorx.Unknown
	}

	clientEntries := []model.PointLedgerEntry{}
	for i := range entries {
		clientEntries = append(clientEntries, model.ConvertPointLedgerEntry(&entries[i]))
	}

	return &model.GetMyLedgerResponse{Entries: clientEntries}, nil
}
