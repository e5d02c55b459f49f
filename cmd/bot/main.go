package main

import (
	"context"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/bus_booking_bot/internal/app"
	"github.com/Freeeeeet/bus_booking_bot/internal/config"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/ratelimit"
	"github.com/Freeeeeet/bus_booking_bot/internal/repository"
	"github.com/Freeeeeet/bus_booking_bot/internal/schedule"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/Freeeeeet/bus_booking_bot/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting bus booking bot",
		"environment", cfg.Environment,
		"data_source", cfg.DataSource,
		"timezone", cfg.Timezone.String(),
		"token_length", len(cfg.TelegramToken))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("👋 Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	if err := migrate(ctx, cfg, pool, logger); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	terminalRepo := repository.NewTerminalRepository(pool)

	// Источник справочников
	var source gateway.Source
	switch cfg.DataSource {
	case config.DataSourceRemote:
		source = gateway.NewRemoteSource(cfg.LLMURL, cfg.LLMModel, cfg.LLMTimeout)
	default:
		source = gateway.NewMockSource(schedule.NewSynthesizer(nil), cfg.MockLatency)
	}
	policy := gateway.RetryPolicy{Attempts: cfg.FetchAttempts, Delay: cfg.FetchDelay}

	if cfg.TerminalSync {
		syncer := service.NewBookingService(gateway.New(source, policy, logger), ticketRepo, logger)
		if _, err := syncer.SyncTerminals(ctx, terminalRepo); err != nil {
			logger.Warn("Terminal sync failed, serving terminals from source", zap.Error(err))
		}
	}

	dataGateway := gateway.New(gateway.WithTerminals(source, terminalRepo), policy, logger)

	userService := service.NewUserService(userRepo, logger)
	bookingService := service.NewBookingService(dataGateway, ticketRepo, logger)

	sessions := state.NewManager()
	scheduler := app.NewScheduler(sessions, cfg.SessionTTL, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	limiter, closeLimiter := connectLimiter(ctx, cfg, logger)
	defer closeLimiter()

	deps := &callbacktypes.Handler{
		UserService:    userService,
		BookingService: bookingService,
		Sessions:       sessions,
		Logger:         logger,
		PaymentTimings: wizard.PaymentTimings{
			Idle:       cfg.PaymentIdleDelay,
			Processing: cfg.PaymentProcessingDelay,
			Success:    cfg.PaymentSuccessDelay,
		},
		Location: cfg.Timezone,
		NewRand: func() wizard.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}

	cmdHandlers := handlers.NewHandlers(deps, limiter, logger)

	b, err := bot.New(cfg.TelegramToken, bot.WithMiddlewares(cmdHandlers.RateLimit))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, cmdHandlers, deps, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	return botController.Start(ctx)
}

func migrate(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) error {
	fsys, dir := migrationsSource(cfg)

	migrator, err := app.NewMigrator(pool, fsys, dir, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// migrationsSource каталог на диске, если задан, иначе встроенные миграции
func migrationsSource(cfg *config.Config) (fs.FS, string) {
	if cfg.MigrationsDir != "" {
		return nil, cfg.MigrationsDir
	}
	return migrations.FS, "."
}

// connectLimiter включает ограничение частоты нажатий, если задан Redis
func connectLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (handlers.RateLimiter, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("Rate limiting disabled: REDIS_ADDR is not set")
		return nil, func() {}
	}

	client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("Rate limiting disabled: redis unavailable", zap.Error(err))
		return nil, func() {}
	}

	logger.Info("✅ Connected to redis", zap.String("addr", cfg.RedisAddr))
	limiter := ratelimit.NewRedisLimiter(client, cfg.RateLimitWindow, cfg.RateLimitMax)
	return limiter, func() { _ = client.Close() }
}
