package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/canape/config"
	"github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/handlers"
	applog "github.com/padraicbc/canape/logger"
	mw "github.com/padraicbc/canape/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey(), cfg.IsAdmin)

	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := h.WarmCache(ctx); err != nil {
			logger.Warn("season cache warm-up failed", zap.Error(err))
		}
	}
	sched := cron.New()
	if _, err := sched.AddFunc(cfg.RefreshCron, warm); err != nil {
		logger.Fatal("invalid REFRESH_CRON", zap.String("schedule", cfg.RefreshCron), zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()
	go warm()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(applog.Requests(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/pool/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	pool := e.Group("/pool", mw.JWT(cfg.JWTKey()))
	pool.GET("/seasons", h.Seasons)
	pool.GET("/competitions", h.Competitions)
	pool.GET("/matchdays", h.Matchdays)
	pool.GET("/leaderboard", h.Leaderboard)
	pool.GET("/rankings", h.Rankings)
	pool.GET("/matchday", h.Matchday)
	pool.GET("/scored", h.Scored)
	pool.GET("/participants/:id/stats", h.ParticipantStats)
	pool.GET("/me/stats", h.MyStats)
	pool.POST("/predictions", h.SubmitPrediction)
	pool.POST("/results", h.RecordResult, mw.Admin(cfg.IsAdmin))

	if cfg.Debug || len(cfg.TLSDomains) == 0 {
		logger.Info("starting server", zap.Bool("debug", cfg.Debug), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting tls server", zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
