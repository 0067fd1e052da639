package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/api"
	"github.com/youruser/binderbase/internal/cards"
	"github.com/youruser/binderbase/internal/deck"
	"github.com/youruser/binderbase/internal/recommend"
	"github.com/youruser/binderbase/internal/store"
	"github.com/youruser/binderbase/internal/util"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfgFile string) error {
	cfg, logger, err := setup(cfgFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.AutoMigrate(ctx); err != nil {
		return err
	}

	httpClient := util.NewHTTPClient(cfg.HTTP.Timeout)
	cardClient := cards.NewClient(cfg.Scryfall.BaseURL, httpClient, logger)
	srv := api.NewServer(api.Deps{
		Decks:        deck.NewService(st, cardClient, logger),
		Cards:        cardClient,
		Recs:         recommend.NewClient(cfg.EDHREC.BaseURL, httpClient, logger),
		DB:           st,
		HTTP:         httpClient,
		Logger:       logger,
		Debug:        cfg.Debug,
		AllowOrigins: cfg.CORS.AllowOrigins,
		PublicURL:    cfg.PublicURL,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", httpSrv.Addr),
			zap.String("driver", cfg.DB.Driver),
			zap.String("version", version))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func runMigrate(ctx context.Context, cfgFile string) error {
	cfg, logger, err := setup(cfgFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.AutoMigrate(ctx); err != nil {
		return err
	}
	logger.Info("migration complete", zap.String("driver", cfg.DB.Driver))
	return nil
}
