package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk_pickup_scheduler/internal/app"
	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/partner"
	"kiosk_pickup_scheduler/internal/infra/config"
	idb "kiosk_pickup_scheduler/internal/infra/database"
	applogger "kiosk_pickup_scheduler/internal/infra/logger"
	"kiosk_pickup_scheduler/internal/infra/scheduler"
	"kiosk_pickup_scheduler/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("FATAL: Could not load application configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	applogger.Init(cfg)
	log := applogger.Get()
	log.WithFields(map[string]interface{}{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Timezone.String(),
	}).Info("Configuration loaded.")

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database.")
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Repositories
	kioskRepo := idb.NewPostgresKioskRepository(db)
	requestRepo := idb.NewPostgresRequestRepository(db)
	holidayRepo := idb.NewPostgresHolidayRepository(db)
	log.Info("Repositories initialized.")

	// Partner roster: built-in rules, chat routing and environment from config.
	env := partner.EnvironmentTest
	if cfg.IsLive() {
		env = partner.EnvironmentLive
	}
	profiles := partner.BuiltInProfiles()
	for _, p := range profiles {
		p.ChatID = cfg.PartnerChatIDs[p.ServiceBank]
		p.Environment = env
	}
	registry, err := partner.NewRegistry(profiles...)
	if err != nil {
		log.WithError(err).Fatal("Invalid partner roster.")
	}
	log.WithField("partners", registry.ServiceBanks()).Info("Partner registry initialized.")

	// Domain services
	evaluator := collection.NewEvaluator(log)
	aggregator := collection.NewAggregator(evaluator, log)

	// Telegram bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(map[string]interface{}{
					"message": c.Text(),
					"sender":  c.Sender().ID,
					"chat":    c.Chat().ID,
				})
			}
			entry.Error("Telegram bot error.")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot.")
	}

	notifier := telegram.NewTelebotNotifier(bot, cfg.AdminChatID)

	// Application services
	collectionService := app.NewCollectionService(
		kioskRepo, requestRepo, holidayRepo, registry, aggregator, notifier, log,
	)
	resetService := app.NewResetService(kioskRepo, requestRepo, registry, log)

	// Operator commands
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()
	telegram.RegisterOpsHandlers(appCtx, bot, cfg, collectionService, resetService, requestRepo, registry, log.WithField("component", "telegram"))
	log.Info("Operator command handlers registered.")

	// Cron jobs
	collectionScheduler := scheduler.NewCollectionScheduler(
		collectionService,
		resetService,
		log,
		cfg.Timezone,
		cfg.CronSpecDailyRun,
		cfg.CronSpecReset,
	)
	collectionScheduler.Start()

	log.Info("Application setup complete. Bot and scheduler are starting...")

	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	cancelApp()
	collectionScheduler.Stop()
	bot.Stop()
	log.Info("Application shut down gracefully.")
}
