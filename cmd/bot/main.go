package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"svitlo_notification_bot/internal/app"
	"svitlo_notification_bot/internal/domain/region"
	"svitlo_notification_bot/internal/domain/user"
	"svitlo_notification_bot/internal/infra/config"
	idb "svitlo_notification_bot/internal/infra/database"
	"svitlo_notification_bot/internal/infra/logger"
	"svitlo_notification_bot/internal/infra/schedulefile"
	"svitlo_notification_bot/internal/infra/scheduler"
	"svitlo_notification_bot/internal/infra/telegram"
	"svitlo_notification_bot/internal/infra/upstream"
	"svitlo_notification_bot/internal/infra/userfile"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().WithError(err).Fatal("Could not load application configuration")
	}
	logger.Init(cfg)
	log := logger.Get()

	scheduleStore := schedulefile.New(cfg.DataDir, log.WithField("component", "schedule_store"))
	scheduleService := app.NewScheduleService(scheduleStore)

	var userRepo user.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		userRepo = idb.NewPostgresUserRepository(db)
		log.Info("Using Postgres profile store")
	} else {
		userRepo = userfile.New(cfg.UsersFile, scheduleStore.Available, log.WithField("component", "user_store"))
		log.WithField("path", cfg.UsersFile).Info("Using flat-file profile store")
	}

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	notifier := telegram.NewTelebotAdapter(bot)
	alertService := app.NewAlertService(
		scheduleStore,
		userRepo,
		notifier,
		log.WithField("component", "alerts"),
		cfg.CheckInterval,
	)

	var refreshService *app.RefreshService
	if cfg.UpstreamURLFormat != "" {
		registry := upstream.BuildRegistry(cfg.UpstreamURLFormat, region.Codes())
		refreshService = app.NewRefreshService(registry, scheduleStore, log.WithField("component", "refresh"))
		log.Info("Upstream refresh cycle enabled")
	}

	pollScheduler := scheduler.NewPollingScheduler(
		alertService,
		refreshService,
		log.WithField("component", "scheduler"),
		cfg.CheckInterval,
		cfg.ScrapeInterval,
	)
	pollScheduler.Start()

	telegram.RegisterHandlers(context.Background(), bot, userRepo, scheduleService, log.WithField("component", "telegram"))
	log.Info("Bot handlers registered")

	go bot.Start()
	log.Info("Application setup complete. Bot and scheduler are running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	pollScheduler.Stop()
	bot.Stop()
	log.Info("Application shut down gracefully.")
}
