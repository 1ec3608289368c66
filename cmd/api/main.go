package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/labinventaris/internal/application/analytics"
	"github.com/jhoicas/labinventaris/internal/application/media"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
	"github.com/jhoicas/labinventaris/internal/bootstrap"
	"github.com/jhoicas/labinventaris/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/labinventaris/internal/infrastructure/pdf"
	"github.com/jhoicas/labinventaris/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/labinventaris/internal/interfaces/http"
	"github.com/jhoicas/labinventaris/pkg/config"
	"github.com/jhoicas/labinventaris/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := persistence.Open(ctx, cfg.DB, log.Component("persistence"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer backend.Close()

	m := metrics.New()
	store, err := bootstrap.NewStore(backend.Gateway, cfg, log.Component("store"), m)
	if err != nil {
		log.Fatal().Err(err).Msg("construir store")
	}
	// Una carga parcial no impide arrancar: los recursos que fallaron quedan vacíos.
	if err := store.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial incompleta")
	}

	blobs, err := bootstrap.BlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}
	uploadUC := media.NewUploadUseCase(blobs, cfg.Storage.UploadMaxBytes, log.Component("uploads"))

	// PDF: reportes de inventario y préstamos
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	transferSvc := transfer.NewService(store, transfer.NewExporter(pdfGenerator))
	dashboardUC := appanalytics.NewDashboardUseCase(store)

	var redisClient *redis.Client
	if cfg.Limit.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Limit.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("REDIS_URL inválido")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}
	rateLimiter, err := httpRouter.NewLimiter(cfg.Limit.Rate, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limiter")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Storage.UploadMaxBytes) + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Labinventaris API",
	}))

	// Con almacenamiento local las imágenes se sirven desde el mismo proceso.
	if cfg.Storage.Driver == "fs" && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		app.Static(cfg.Storage.PublicURL, cfg.Storage.FSDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"db":      backend.Driver,
			"loading": store.Loading(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:     store,
		Transfer:  transferSvc,
		Dashboard: dashboardUC,
		Uploads:   uploadUC,
		Metrics:   m,
		Limiter:   rateLimiter,
		Log:       log.Component("http"),
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
