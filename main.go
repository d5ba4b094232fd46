package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/controller"
	"github.com/defamed-sol/github-analyzer-bot/logger"
	"github.com/defamed-sol/github-analyzer-bot/service"
	"github.com/defamed-sol/github-analyzer-bot/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Panic("unable to load configuration")
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to Github service to easily improve tests with mock client
	githubClient := github.NewClient(nil)

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		githubClient = githubClient.WithAuthToken(cfg.Github.Token)
	}

	// setup local rate limiter
	// execute first request to github to fetch current rate limits
	log.Debug("loading current rate limit from github")
	rateLimits, _, err := githubClient.RateLimit.Get(context.Background())
	if err != nil {
		log.WithError(err).Panic("unable to load current github rate limits")
	}

	log.WithFields(log.Fields{
		"totalAvailable":    rateLimits.Core.Limit,
		"remainingRequests": rateLimits.Core.Remaining,
	}).Debug("will setup local rate limiter with rate limits infos from github")

	// setup rate limiter
	// consume X tokens according to the number of remaining tokens
	// this help us to have a right rate limiter even if external requests are made
	rateLimiter := rate.NewLimiter(rate.Every(time.Hour), rateLimits.Core.Limit)

	if !rateLimiter.AllowN(time.Now(), rateLimits.Core.Limit-rateLimits.Core.Remaining) {
		log.WithError(err).Panic("unable to configure the github rate limiter")
	}

	// setup the scan counter store used by the chat layer
	scanCounter, err := store.NewScanCounter(cfg.Store.Path)
	if err != nil {
		log.WithError(err).Panic("unable to open the scan counter store")
	}

	// setup handlers and services
	githubService := service.NewGithubService(*cfg, githubClient, rateLimiter)
	analyzerService := service.NewAnalyzerService(*cfg, githubService, service.GetDefaultKeywords())
	apiController := controller.NewAPIController(*cfg, analyzerService)

	// setup server and define all routes
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	server := &http.Server{
		Addr:    ":" + cfg.API.ListenPort,
		Handler: router,
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With"},
			MaxAge:       12 * time.Hour,
		}),
	)

	api := router.Group("")
	{
		api.GET("/users/:username/analysis", apiController.GetProfileAnalysis)
	}

	// start with configuration
	go func() {
		log.Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("error while starting server")
		}
	}()

	// start the telegram front end when enabled
	// the bot consumes updates until the shutdown context is cancelled
	botCtx, stopBot := context.WithCancel(context.Background())

	if cfg.Telegram.Enabled {
		botController, err := controller.NewBotController(*cfg, analyzerService, scanCounter)

		if err != nil {
			log.WithError(err).Panic("unable to start the telegram bot")
		}

		go botController.Run(botCtx)
	} else {
		log.Info("telegram bot disabled, only the HTTP API is available")
	}

	// create context with 15 seconds timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// wait for interrupt signal to gracefully shut down the server with a timeout of 15 seconds.
	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	stopBot()

	if err := scanCounter.Close(); err != nil {
		log.WithError(err).Error("unable to close the scan counter store")
	}

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	} else {
		log.Info("Application stopped gracefully !")
	}
}
