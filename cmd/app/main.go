package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/api"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/foodlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/lifecycle"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/messagebus"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/config"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)

	bus := messagebus.New(logger)
	bus.Register(user.EventCreated, func(event domain.Event) error {
		logger.Info("user registered")
		return nil
	})
	bus.Register(user.EventRecomputed, func(event domain.Event) error {
		logger.Debug("derived metrics recomputed")
		return nil
	})
	bus.Register(healthlog.EventScored, func(event domain.Event) error {
		logger.Debug("daily log scored")
		return nil
	})
	defer bus.Close()

	sqlf.SetDialect(sqlf.PostgreSQL)

	pool, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	db := &storage.DB{DB: pool}

	authorizer := &auth.Authorizer{
		Cost:             bcrypt.DefaultCost,
		Secret:           cfg.JWT.Secret,
		AccessTokenTTL:   cfg.JWT.AccessTokenTTL,
		AuthorizationTTL: cfg.JWT.RefreshTokenTTL,
	}

	authService := auth.NewService(authorizer, logger)
	nutrition := foodlog.NewNutritionProvider(db, bus, logger)
	lifecycleService := lifecycle.NewService(nutrition, logger)
	foodService := foodlog.NewService(logger)

	server := api.NewServer(
		api.Addr(cfg.Server.Host, cfg.Server.Port),
		api.Logger(logger),
		api.DBContext(db),
		api.AuthService(authService),
		api.LifecycleService(lifecycleService),
		api.FoodService(foodService),
		api.MessageBus(bus),
	)

	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error)

	go func() {
		defer close(errCh)
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server was not shutdown gracefully", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server closed with unexpected error", "error", err)
			}
		}
	}
	logger.Info("server shutdown")
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
