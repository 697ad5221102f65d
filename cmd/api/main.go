package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/internal/application/ports"
	"github.com/antonyto02/nexsoft-inventory/internal/application/usecase"
	infraai "github.com/antonyto02/nexsoft-inventory/internal/infrastructure/ai"
	"github.com/antonyto02/nexsoft-inventory/internal/infrastructure/bus"
	inframqtt "github.com/antonyto02/nexsoft-inventory/internal/infrastructure/mqtt"
	"github.com/antonyto02/nexsoft-inventory/internal/infrastructure/postgres"
	infras3 "github.com/antonyto02/nexsoft-inventory/internal/infrastructure/s3"
	httpRouter "github.com/antonyto02/nexsoft-inventory/internal/interfaces/http"
	"github.com/antonyto02/nexsoft-inventory/internal/interfaces/ws"
	"github.com/antonyto02/nexsoft-inventory/pkg/config"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	entryRepo := postgres.NewStockEntryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	broadcaster := bus.NewBroadcaster()
	entryMode := inventory.NewEntryMode(cfg.Sensors.EntryMode)

	recorder := inventory.NewRecordMovementUseCase(txRunner, entryRepo, broadcaster, log)
	movementUC := inventory.NewManualMovementUseCase(productRepo, movementRepo, recorder)
	summaryUC := inventory.NewHomeSummaryUseCase(productRepo, entryRepo)
	rfidUC := inventory.NewRfidUseCase(txRunner, productRepo, entryRepo, recorder, entryMode, broadcaster, log)
	cameraUC := inventory.NewCameraUseCase(txRunner, recorder, cfg.Sensors.CameraProductID, log)
	weightUC := inventory.NewWeightStabilizer(cfg.Sensors.WeightChannels, recorder, log)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, unitRepo, entryRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	voiceUC := usecase.NewVoiceUseCase(anthropicSvc, movementUC, productUC, log)

	// URLs pre-firmadas de S3; sin bucket configurado el endpoint se desactiva.
	var storage ports.ObjectStorage
	if cfg.AWS.Bucket != "" {
		presigner, err := infras3.NewPresigner(ctx, cfg.AWS)
		if err != nil {
			log.Fatal().Err(err).Msg("configurar S3")
		}
		storage = presigner
	} else {
		log.Warn().Msg("AWS_BUCKET_NAME vacío, subida de imágenes desactivada")
	}

	hub, err := ws.NewHub(broadcaster.Bus(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("suscribir hub WebSocket")
	}

	// Listener MQTT de sensores; sin host configurado se arranca solo la API.
	if cfg.MQTT.Host != "" {
		router := inventory.NewSensorRouter(rfidUC, cameraUC, weightUC, log)
		listener, err := inframqtt.NewListener(cfg.MQTT, router, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MQTT")
		}
		defer listener.Close()
		log.Info().Str("host", cfg.MQTT.Host).Str("prefix", cfg.MQTT.TopicPrefix).Msg("listener de sensores activo")
	} else {
		log.Warn().Msg("MQTT_HOST vacío, listener de sensores desactivado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NexSoft Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
		SummaryUC:  summaryUC,
		RfidUC:     rfidUC,
		VoiceUC:    voiceUC,
		EntryMode:  entryMode,
		Storage:    storage,
		Hub:        hub,
		JWTSecret:  cfg.JWT.Secret,
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
