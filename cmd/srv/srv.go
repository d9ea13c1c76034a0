package main

import (
	"context"
	"net/http"

	"github.com/shelfmark/backend/config"
	"github.com/shelfmark/backend/internal/domain"
	"github.com/shelfmark/backend/internal/domain/statistic"
	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/internal/repository"
	"github.com/shelfmark/backend/pkg/authenticator"
	"github.com/shelfmark/backend/pkg/logger"
	"github.com/shelfmark/backend/pkg/router"
	"github.com/shelfmark/backend/pkg/xcontext"
	"github.com/shelfmark/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	ctx     context.Context
	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client

	userRepo       repository.UserRepository
	oauth2Repo     repository.OAuth2Repository
	bookRepo       repository.BookRepository
	userBookRepo   repository.UserBookRepository
	readingLogRepo repository.ReadingLogRepository
	communityRepo  repository.CommunityRepository
	memberRepo     repository.MemberRepository

	leaderboard statistic.Leaderboard

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	bookDomain      domain.BookDomain
	userBookDomain  domain.UserBookDomain
	communityDomain domain.CommunityDomain
	statisticDomain domain.StatisticDomain
	presenceDomain  domain.PresenceDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	switch s.configs.Database.Driver {
	case "sqlite":
		s.db, err = gorm.Open(sqlite.Open(s.configs.Database.SQLiteFile), &gorm.Config{})
	default:
		s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	}

	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.oauth2Repo = repository.NewOAuth2Repository()
	s.bookRepo = repository.NewBookRepository()
	s.userBookRepo = repository.NewUserBookRepository()
	s.readingLogRepo = repository.NewReadingLogRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.memberRepo = repository.NewMemberRepository()
}

func (s *srv) loadDomains() {
	var oauth2Services []authenticator.IOAuth2Service
	if s.configs.Auth.Google.ClientID != "" {
		google, err := authenticator.NewOAuth2Service(s.ctx, s.configs.Auth.Google)
		if err != nil {
			panic(err)
		}

		oauth2Services = append(oauth2Services, google)
	}

	s.leaderboard = statistic.New(s.readingLogRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.oauth2Repo, oauth2Services)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.oauth2Repo, s.readingLogRepo)
	s.bookDomain = domain.NewBookDomain(s.bookRepo)
	s.userBookDomain = domain.NewUserBookDomain(
		s.userBookRepo, s.bookRepo, s.readingLogRepo, s.memberRepo, s.leaderboard)
	s.presenceDomain = domain.NewPresenceDomain(s.communityRepo, s.memberRepo, s.redisClient)
	s.communityDomain = domain.NewCommunityDomain(
		s.communityRepo, s.memberRepo, s.userRepo, s.presenceDomain)
	s.statisticDomain = domain.NewStatisticDomain(
		s.userRepo, s.userBookRepo, s.readingLogRepo, s.communityRepo, s.leaderboard)
}

func (s *srv) migrate(*cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	return nil
}
