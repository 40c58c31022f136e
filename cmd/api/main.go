package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/auth"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/cart"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/ports"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/media"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	infraamqp "github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/amqp"
	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/redis"
	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/rest"
	httpRouter "github.com/jhoicas/Tienda-Funkos-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/config"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Str("catalog", cfg.Catalog.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// PostgreSQL solo si algún componente lo usa
	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	// Almacenamiento clave-valor: carritos, sesiones, cuentas locales y comprobantes
	var kv repository.KeyValueStore
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := infraredis.NewClient(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		kv = infraredis.NewKVStore(client, cfg.App.Name+":")
	case config.StoragePostgres:
		kv = postgres.NewKVStore(pool)
	default:
		log.Warn().Msg("almacenamiento en memoria: carritos y sesiones se pierden al reiniciar")
		kv = memory.NewKVStore()
	}
	if p, ok := kv.(repository.ExpiredPurger); ok {
		go purgeExpired(ctx, p, cfg.Storage.PurgeInterval, log)
	}

	// Servicio REST externo (cuentas siempre; catálogo si CATALOG_DRIVER=rest)
	backend := rest.NewClient(cfg.Backend, log)

	var (
		productRepo  repository.ProductRepository
		categoryRepo repository.CategoryRepository
		licenceRepo  repository.LicenceRepository
	)
	if cfg.Catalog.Driver == config.CatalogPostgres {
		productRepo = postgres.NewProductRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		licenceRepo = postgres.NewLicenceRepository(pool)
	} else {
		productRepo = rest.NewProductRepository(backend)
		categoryRepo = rest.NewCategoryRepository(backend)
		licenceRepo = rest.NewLicenceRepository(backend)
	}

	// Eventos del carrito: RabbitMQ si AMQP_URL está definido
	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, err := infraamqp.Dial(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		amqpPublisher, err := infraamqp.NewPublisher(conn, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("declarar exchange de eventos")
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	cache := catalog.NewCache(productRepo, log)
	if err := cache.Refresh(ctx); err != nil {
		// se sirve un catálogo vacío hasta el próximo refresco
		log.Warn().Err(err).Msg("carga inicial del catálogo")
	}
	go cache.Run(ctx, cfg.Catalog.RefreshInterval)

	images := media.NewResolver(cfg.App.MediaPrefix)
	catalogUC := catalog.NewUseCase(productRepo, categoryRepo, licenceRepo, cache, images, log)

	manager := cart.NewManager(kv, log)
	relay := cart.NewEventRelay(publisher, log, 256)
	manager.Subscribe(relay.Listener())
	relay.Start(2)

	// PDF: comprobante de compra
	receiptPDF := infrapdf.NewReceiptGenerator("Tienda Funkos")
	cartSvc := cart.NewService(manager, cache, kv, publisher, receiptPDF, log)

	authUC := auth.NewAuthUseCase(rest.NewAccountClient(backend), kv, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.DemoUsers, log)
	userUC := usecase.NewUserUseCase(rest.NewUserClient(backend))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Funkos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"products": len(cache.Products()),
			"loading":  cache.Loading(),
			"carts":    manager.Len(),
		}
		if err := cache.Err(); err != nil {
			status["catalog_error"] = err.Error()
		}
		return c.JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		CartSvc:   cartSvc,
		UserUC:    userUC,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	relay.Close()

	log.Info().Msg("aplicación detenida")
}

// purgeExpired borra periódicamente las claves vencidas (sesiones) hasta que ctx se cancela.
func purgeExpired(ctx context.Context, p repository.ExpiredPurger, every time.Duration, log *logger.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de claves vencidas")
				continue
			}
			if n > 0 {
				log.Debug().Int64("keys", n).Msg("claves vencidas eliminadas")
			}
		}
	}
}
