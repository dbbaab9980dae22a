package main

import (
	"log"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/JiSuMun/New-zigoohang/internal/middleware"
	"github.com/JiSuMun/New-zigoohang/pkg/router"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	httpSrv := &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if cert, key := s.configs.ApiServer.Cert, s.configs.ApiServer.Key; cert != "" && key != "" {
		return httpSrv.ListenAndServeTLS(cert, key)
	}

	return httpSrv.ListenAndServe()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authFlowRouter := s.router.Branch()
	authFlowRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authFlowRouter, "/register", s.authDomain.Register)
		router.POST(authFlowRouter, "/login", s.authDomain.Login)
		router.POST(authFlowRouter, "/refresh", s.authDomain.Refresh)
	}

	// Public API
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.NewAuthVerifier().WithOptional().Middleware())
	{

		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getFollowing", s.userDomain.GetFollowing)
		router.GET(publicRouter, "/getFollowers", s.userDomain.GetFollowers)

		router.GET(publicRouter, "/getChallenges", s.challengeDomain.GetList)
		router.GET(publicRouter, "/getChallenge", s.challengeDomain.Get)

		router.GET(publicRouter, "/getPosts", s.postDomain.GetList)
		router.GET(publicRouter, "/getPost", s.postDomain.Get)
	}

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getContacts", s.userDomain.GetContacts)
		router.POST(authRouter, "/toggleFollow", s.userDomain.ToggleFollow)

		// Point API
		router.GET(authRouter, "/getBalance", s.pointDomain.GetBalance)
		router.GET(authRouter, "/getMyLedger", s.pointDomain.GetMyLedger)

		// Chat API
		router.POST(authRouter, "/startChat", s.chatDomain.StartChat)
		router.POST(authRouter, "/startGroupChat", s.chatDomain.StartGroupChat)
		router.GET(authRouter, "/getInbox", s.chatDomain.GetInbox)
		router.POST(authRouter, "/sendMessage", s.chatDomain.SendMessage)
		router.GET(authRouter, "/getMessages", s.chatDomain.GetMessages)
		router.POST(authRouter, "/deleteRoom", s.chatDomain.DeleteRoom)
		router.GET(authRouter, "/ws/chat", s.chatDomain.Subscribe)

		// Challenge API
		router.POST(authRouter, "/createChallenge", s.challengeDomain.Create)
		router.POST(authRouter, "/updateChallenge", s.challengeDomain.Update)
		router.POST(authRouter, "/deleteChallenge", s.challengeDomain.Delete)
		router.POST(authRouter, "/toggleParticipation", s.challengeDomain.ToggleParticipation)
		router.POST(authRouter, "/createCertification", s.challengeDomain.CreateCertification)
		router.POST(authRouter, "/deleteCertification", s.challengeDomain.DeleteCertification)

		// Post API
		router.POST(authRouter, "/createPost", s.postDomain.Create)
		router.POST(authRouter, "/updatePost", s.postDomain.Update)
		router.POST(authRouter, "/deletePost", s.postDomain.Delete)
		router.POST(authRouter, "/togglePostLike", s.postDomain.ToggleLike)
		router.POST(authRouter, "/createReview", s.postDomain.CreateReview)
		router.POST(authRouter, "/updateReview", s.postDomain.UpdateReview)
		router.POST(authRouter, "/deleteReview", s.postDomain.DeleteReview)
		router.POST(authRouter, "/toggleReviewLike", s.postDomain.ToggleReviewLike)
		router.POST(authRouter, "/toggleReviewDislike", s.postDomain.ToggleReviewDislike)
	}
}
