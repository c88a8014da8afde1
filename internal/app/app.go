// Package app composes the seller bot: configuration, logging, database,
// OTP delivery, conversation flows and the Telegram runtime.
package app

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	coreconfig "github.com/maz-edu/sellersbot/core/config"
	coredatabase "github.com/maz-edu/sellersbot/core/database"
	"github.com/maz-edu/sellersbot/core/logger"
	tg "github.com/maz-edu/sellersbot/core/telegram"
	"github.com/maz-edu/sellersbot/core/telegram/router"
	"github.com/maz-edu/sellersbot/internal/bot"
	"github.com/maz-edu/sellersbot/internal/otp"
	"github.com/maz-edu/sellersbot/internal/store"
)

// Run boots the bot and blocks until ctx is done or the runtime fails.
func Run(ctx context.Context, configPath string) error {
	cfg, err := coreconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("app: load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Profile: cfg.Logging.Profile,
		Dir:     cfg.Logging.Dir,
		BotFile: cfg.Logging.BotFile,
	}); err != nil {
		return fmt.Errorf("app: logger init: %w", err)
	}

	db, err := coredatabase.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("app: database: %w", err)
	}
	defer db.Close()

	if err := coredatabase.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("app: migrations: %w", err)
	}

	verifier := otp.New(
		otp.NewKavenegarSender(cfg.SMS.APIKey, cfg.SMS.Template),
		otp.Config{TTL: cfg.OTP.TTL(), MaxAttempts: cfg.OTP.MaxAttempts},
	)

	service := bot.New(store.NewPostgres(db), verifier)
	reg := tg.NewRegistry()
	service.Register(reg)

	routes := []tg.Route{
		router.TextRoute(service.FSM(), reg, router.TextOptions{}),
		router.CallbackRoute(reg),
	}
	routes = append(routes, router.CommandRoutes(reg)...)

	startedAt := time.Now()
	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(context.Context, tg.Runtime) error {
			logger.Component("app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.Took(startedAt)),
			)
			return nil
		},
		OnStop: func(context.Context, tg.Runtime) error {
			logger.Component("app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	})
}
