package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gym-service/internal/api/http"
	"github.com/spec-kit/gym-service/internal/api/http/handlers"
	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/events"
	"github.com/spec-kit/gym-service/internal/observability"
	"github.com/spec-kit/gym-service/internal/persistence"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/internal/service"
	"github.com/spec-kit/gym-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("invalid bcrypt cost", zap.Error(err))
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("invalid token settings", zap.Error(err))
	}

	var staffRepo repository.StaffRepository
	if pg.Enabled() {
		staffRepo = repository.NewPostgresStaffRepository(pg.PoolHandle())
	} else {
		staffRepo = repository.NewMemoryStaffRepository()
	}
	studentRepo := repository.NewMemoryStudentRepository()
	planRepo := repository.NewMemoryPlanRepository()
	checkInRepo := repository.NewMemoryCheckInRepository()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(service.AuditDependencies{
		Dispatcher: dispatcher,
		Logger:     logger,
		Publisher:  redis,
		Recorder:   metrics,
		Channel:    cfg.Redis.EventsChannel,
	}))

	authService := service.NewAuthService(service.AuthDependencies{
		CredentialStore: staffRepo,
		Hasher:          hasher,
		Tokens:          tokens,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	staffService := service.NewStaffService(service.StaffDependencies{
		StaffRepo:  staffRepo,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	studentService := service.NewStudentService(studentRepo, planRepo)
	planService := service.NewPlanService(planRepo)
	checkInService := service.NewCheckInService(checkInRepo, studentRepo)
	reportService := service.NewReportService(studentRepo, planRepo, checkInRepo)

	if err := staffService.EnsureDefaultAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal("failed to seed administrator", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(authService, staffService),
		Students:       handlers.NewStudentsHandler(studentService),
		Plans:          handlers.NewPlansHandler(planService),
		CheckIns:       handlers.NewCheckInsHandler(checkInService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenIssuer()),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
