package main

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/config"
	"github.com/JiSuMun/New-zigoohang/internal/domain"
	"github.com/JiSuMun/New-zigoohang/internal/domain/points"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/logger"
	"github.com/JiSuMun/New-zigoohang/pkg/router"
	"github.com/JiSuMun/New-zigoohang/pkg/ws"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/JiSuMun/New-zigoohang/pkg/xredis"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB
	redis   xredis.Client
	hub     *ws.Hub

	userRepo          repository.UserRepository
	followRepo        repository.FollowRepository
	ledgerRepo        repository.PointLedgerRepository
	roomRepo          repository.ChatRoomRepository
	messageRepo       repository.ChatMessageRepository
	notificationRepo  repository.ChatNotificationRepository
	challengeRepo     repository.ChallengeRepository
	certificationRepo repository.CertificationRepository
	postRepo          repository.PostRepository
	reviewRepo        repository.ReviewRepository
	refreshTokenRepo  repository.RefreshTokenRepository

	pointsManager *points.Manager

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	pointDomain     domain.PointDomain
	chatDomain      domain.ChatDomain
	challengeDomain domain.ChallengeDomain
	postDomain      domain.PostDomain

	router *router.Router
}

func (s *srv) loadConfig(cctx *cli.Context) {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "planethelper"),
			Password: getEnv("MYSQL_PASSWORD", "planethelper"),
			Database: getEnv("MYSQL_DATABASE", "planethelper"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			Cert:         getEnv("SERVER_CERT", ""),
			Key:          getEnv("SERVER_KEY", ""),
			AllowCORS:    []string{getEnv("ALLOW_CORS", "http://localhost:3000")},
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Hour,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: 14 * 24 * time.Hour,
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Challenge: config.ChallengeConfigs{
			CertificationReward: 500,
		},
	}

	// A toml file, when given, wins over the environment.
	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, s.configs); err != nil {
			panic(err)
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(xcontext.WithConfigs(context.Background(), *s.configs), s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(
		mysql.Open(s.configs.Database.ConnectionString()),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redis = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.ledgerRepo = repository.NewPointLedgerRepository()
	s.roomRepo = repository.NewChatRoomRepository()
	s.messageRepo = repository.NewChatMessageRepository()
	s.notificationRepo = repository.NewChatNotificationRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.certificationRepo = repository.NewCertificationRepository()
	s.postRepo = repository.NewPostRepository()
	s.reviewRepo = repository.NewReviewRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
}

func (s *srv) loadDomains() {
	s.hub = ws.NewHub()
	s.pointsManager = points.NewManager(s.userRepo, s.ledgerRepo)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo, s.pointsManager)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followRepo, s.ledgerRepo)
	s.pointDomain = domain.NewPointDomain(s.userRepo, s.ledgerRepo)
	s.chatDomain = domain.NewChatDomain(
		s.userRepo, s.roomRepo, s.messageRepo, s.notificationRepo, s.redis, s.hub)
	s.challengeDomain = domain.NewChallengeDomain(
		s.challengeRepo, s.certificationRepo, s.userRepo, s.pointsManager)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.reviewRepo)
}
