package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tu-usuario/granja-pro/internal/application/analytics"
	"github.com/tu-usuario/granja-pro/internal/application/auth"
	"github.com/tu-usuario/granja-pro/internal/application/business"
	"github.com/tu-usuario/granja-pro/internal/application/earnings"
	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/granja-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/granja-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/granja-pro/internal/interfaces/http"
	"github.com/tu-usuario/granja-pro/pkg/config"
	"github.com/tu-usuario/granja-pro/pkg/logger"
	"github.com/tu-usuario/granja-pro/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	roleRepo := postgres.NewBusinessRoleRepository(pool)
	prefRepo := postgres.NewPreferenceRepository(pool)
	caretakerRepo := postgres.NewCaretakerRepository(pool)
	goatRepo := postgres.NewGoatRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	healthRepo := postgres.NewHealthRecordRepository(pool)
	weightRepo := postgres.NewWeightRecordRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Sesión: resolver de rol + registro de negocios + manager en memoria
	resolver := session.NewResolver(profileRepo, roleRepo, log)
	registry := business.NewRegistry(
		businessRepo, roleRepo, txRepo, expenseRepo,
		weightRepo, healthRepo, goatRepo, caretakerRepo, log,
	)
	manager := session.NewManager(resolver, registry, prefRepo, log)

	authUC := auth.NewUseCase(userRepo, roleRepo, caretakerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	caretakerUC := usecase.NewCaretakerUseCase(caretakerRepo, roleRepo)
	goatUC := usecase.NewGoatUseCase(goatRepo, weightRepo, txRepo, log)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	healthUC := usecase.NewHealthUseCase(healthRepo, goatRepo)
	earningsSvc := earnings.NewService(businessRepo, caretakerRepo, goatRepo, expenseRepo, healthRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportGen := infrapdf.NewEarningsReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Granja Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Manager:     manager,
		CaretakerUC: caretakerUC,
		GoatUC:      goatUC,
		ExpenseUC:   expenseUC,
		HealthUC:    healthUC,
		EarningsSvc: earningsSvc,
		DashboardUC: dashboardUC,
		ReportGen:   reportGen,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
