package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type ChallengeDomain interface {
	Create(context.Context, *model.CreateChallengeRequest) (*model.CreateChallengeResponse, error)
	Update(context.Context, *model.UpdateChallengeRequest) (*model.UpdateChallengeResponse, error)
	Delete(context.Context, *model.DeleteChallengeRequest) (*model.DeleteChallengeResponse, error)
	GetList(context.Context, *model.GetChallengesRequest) (*model.GetChallengesResponse, error)
	Get(context.Context, *model.GetChallengeRequest) (*model.GetChallengeResponse, error)
	ToggleParticipation(context.Context, *model.ToggleParticipationRequest) (*model.ToggleParticipationResponse, error)
	CreateCertification(context.Context, *model.CreateCertificationRequest) (*model.CreateCertificationResponse, error)
	DeleteCertification(context.Context, *model.DeleteCertificationRequest) (*model.DeleteCertificationResponse, error)
}

type challengeDomain struct {
	challengeRepo     repository.ChallengeRepository
	certificationRepo repository.CertificationRepository
	userRepo          repository.UserRepository
	pointsManager     *points.Manager
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	certificationRepo repository.CertificationRepository,
	userRepo repository.UserRepository,
	pointsManager *points.Manager,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo:     challengeRepo,
		certificationRepo: certificationRepo,
		userRepo:          userRepo,
		pointsManager:     pointsManager,
	}
}

func (d *challengeDomain) Create(
	ctx context.Context, req *model.CreateChallengeRequest,
) (*model.CreateChallengeResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, errorx.New(errorx.BadRequest, "End date must be after start date")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !slices.Contains(entity.GlobalAdminRoles, user.Role) {
		return nil, errorx.New(errorx.PermissionDenied, "Only admin can create challenges")
	}

	challenge := &entity.Challenge{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   requestUserID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateChallengeResponse{ID: challenge.ID}, nil
}

func (d *challengeDomain) Update(
	ctx context.Context, req *model.UpdateChallengeRequest,
) (*model.UpdateChallengeResponse, error) {
	challenge, err := d.getChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	if challenge.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can update this challenge")
	}

	challenge.Title = req.Title
	challenge.Description = req.Description
	challenge.StartDate = req.StartDate
	challenge.EndDate = req.EndDate

	if err := d.challengeRepo.Update(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateChallengeResponse{}, nil
}

func (d *challengeDomain) Delete(
	ctx context.Context, req *model.DeleteChallengeRequest,
) (*model.DeleteChallengeResponse, error) {
	challenge, err := d.getChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	if challenge.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can delete this challenge")
	}

	if err := d.challengeRepo.Delete(ctx, challenge.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteChallengeResponse{}, nil
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetChallengesRequest,
) (*model.GetChallengesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	filter := repository.ChallengeFilter(req.Q)
	switch filter {
	case repository.ChallengeFilterAll, repository.ChallengeFilterActive, repository.ChallengeFilterEnded:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid filter %s", req.Q)
	}

	challenges, err := d.challengeRepo.GetList(ctx, repository.GetChallengeListFilter{
		Filter: filter,
		Now:    time.Now(),
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenges: %v", err)
		return nil, errorx.Unknown
	}

	clientChallenges := []model.Challenge{}
	for i := range challenges {
		clientChallenges = append(clientChallenges, model.ConvertChallenge(&challenges[i]))
	}

	return &model.GetChallengesResponse{Challenges: clientChallenges}, nil
}

func (d *challengeDomain) Get(
	ctx context.Context, req *model.GetChallengeRequest,
) (*model.GetChallengeResponse, error) {
	challenge, err := d.getChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	remainingDays := 0
	if now.Before(challenge.EndDate) {
		remainingDays = int(challenge.EndDate.Sub(now).Hours() / 24)
	}

	requestUserID := xcontext.RequestUserID(ctx)

	isParticipant := false
	hasCertified := false
	if requestUserID != "" {
		isParticipant, err = d.challengeRepo.IsParticipant(ctx, challenge.ID, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check participation: %v", err)
			return nil, errorx.Unknown
		}

		_, err = d.certificationRepo.Get(ctx, challenge.ID, requestUserID)
		if err == nil {
			hasCertified = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get certification: %v", err)
			return nil, errorx.Unknown
		}
	}

	participantCount, err := d.challengeRepo.CountParticipants(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	certifications, err := d.certificationRepo.GetListByChallengeID(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get certifications: %v", err)
		return nil, errorx.Unknown
	}

	clientCertifications := []model.Certification{}
	for i := range certifications {
		clientCertifications = append(clientCertifications, model.ConvertCertification(&certifications[i]))
	}

	return &model.GetChallengeResponse{
		Challenge:        model.ConvertChallenge(challenge),
		RemainingDays:    remainingDays,
		Ended:            now.After(challenge.EndDate),
		InProgress:       !now.Before(challenge.StartDate) && !now.After(challenge.EndDate),
		IsParticipant:    isParticipant,
		HasCertified:     hasCertified,
		ParticipantCount: participantCount,
		Certifications:   clientCertifications,
	}, nil
}

func (d *challengeDomain) ToggleParticipation(
	ctx context.Context, req *model.ToggleParticipationRequest,
) (*model.ToggleParticipationResponse, error) {
	challenge, err := d.getChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	isParticipant, err := d.challengeRepo.IsParticipant(ctx, challenge.ID, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check participation: %v", err)
		return nil, errorx.Unknown
	}

	if isParticipant {
		err = d.challengeRepo.RemoveParticipant(ctx, challenge.ID, requestUserID)
	} else {
		err = d.challengeRepo.AddParticipant(ctx, challenge.ID, requestUserID)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle participation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleParticipationResponse{IsParticipating: !isParticipant}, nil
}

func (d *challengeDomain) CreateCertification(
	ctx context.Context, req *model.CreateCertificationRequest,
) (*model.CreateCertificationResponse, error) {
	challenge, err := d.getChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	certification := &entity.Certification{
		Base:        entity.Base{ID: uuid.NewString()},
		ChallengeID: challenge.ID,
		UserID:      requestUserID,
		Title:       req.Title,
		Content:     req.Content,
	}

	if err := d.certificationRepo.Create(ctx, certification); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You already certified this challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot create certification: %v", err)
		return nil, errorx.Unknown
	}

	reward := xcontext.Configs(ctx).Challenge.CertificationReward
	err = d.pointsManager.AddPoints(ctx, requestUserID, reward, entity.PointReasonParticipation)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit certification reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCertificationResponse{ID: certification.ID}, nil
}

func (d *challengeDomain) DeleteCertification(
	ctx context.Context, req *model.DeleteCertificationRequest,
) (*model.DeleteCertificationResponse, error) {
	certification, err := d.certificationRepo.GetByID(ctx, req.CertificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found certification")
		}

		xcontext.Logger(ctx).Errorf("Cannot get certification: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if certification.UserID != requestUserID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can delete this certification")
	}

	if err := d.certificationRepo.Delete(ctx, certification.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete certification: %v", err)
		return nil, errorx.Unknown
	}

	reward := xcontext.Configs(ctx).Challenge.CertificationReward
	err = d.pointsManager.SubtractPoints(ctx, requestUserID, reward, entity.PointReasonParticipationCanceled)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot debit certification reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCertificationResponse{}, nil
}

func (d *challengeDomain) getChallenge(ctx context.Context, id string) (*entity.Challenge, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty challenge id")
	}

	challenge, err := d.challengeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	return challenge, nil
}
