package main

import (
	"context"
	"net/http"

	"github.com/shelfmark/backend/internal/middleware"
	"github.com/shelfmark/backend/pkg/router"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.WithAuth())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.POST(publicRouter, "/verifyOAuth2", s.authDomain.OAuth2Verify)

		router.GET(publicRouter, "/getBook", s.bookDomain.Get)
		router.GET(publicRouter, "/getBooks", s.bookDomain.GetList)
		router.GET(publicRouter, "/getCommunity", s.communityDomain.Get)
		router.GET(publicRouter, "/getCommunities", s.communityDomain.GetList)
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
	}

	// Authenticated API
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)

		// Catalog API
		router.POST(authRouter, "/createBook", s.bookDomain.Create)

		// Shelf API
		router.POST(authRouter, "/addShelfBook", s.userBookDomain.Add)
		router.GET(authRouter, "/getMyShelf", s.userBookDomain.GetMyShelf)
		router.POST(authRouter, "/updateProgress", s.userBookDomain.UpdateProgress)
		router.POST(authRouter, "/finishShelfBook", s.userBookDomain.Finish)
		router.POST(authRouter, "/removeShelfBook", s.userBookDomain.Remove)

		// Community API
		router.POST(authRouter, "/createCommunity", s.communityDomain.Create)
		router.POST(authRouter, "/followCommunity", s.communityDomain.Follow)
		router.POST(authRouter, "/unfollowCommunity", s.communityDomain.Unfollow)
		router.GET(authRouter, "/getMembers", s.communityDomain.GetMembers)
		router.GET(authRouter, "/getMyCommunities", s.communityDomain.GetMyCommunities)

		// Statistic API
		router.GET(authRouter, "/getMyStats", s.statisticDomain.GetMyStats)
		router.GET(authRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)

		// Presence API
		router.POST(authRouter, "/heartbeat", s.presenceDomain.Heartbeat)
		router.GET(authRouter, "/getStatuses", s.presenceDomain.GetStatuses)
	}

	// Admin API
	onlyAdmin := middleware.NewOnlyAdmin(s.userRepo)
	adminRouter := authRouter.Branch()
	adminRouter.Before(onlyAdmin.Middleware())
	{
		router.POST(adminRouter, "/deleteBook", s.bookDomain.Delete)
	}
}
