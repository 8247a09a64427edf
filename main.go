package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ivr/internal/config"
	"ivr/internal/handlers"
	"ivr/internal/middleware"
	"ivr/internal/repositories"
	"ivr/internal/services"
	"ivr/pkg/mongodb"
	"ivr/pkg/payments"
	"ivr/pkg/rabbitmq"
)

const banner = "Indian Valley Restaurant Server is Running"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg.LogLevel)

	app, closers, err := newApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	closeAll(closers)
	log.Info().Msg("server gracefully stopped")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// closeAll releases resources in reverse order of acquisition.
func closeAll(closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Error().Err(err).Msg("error releasing resource")
		}
	}
}

type stores struct {
	menu   repositories.MenuRepository
	users  repositories.UserRepository
	carts  repositories.CartRepository
	orders repositories.OrderRepository
}

// openStores connects the configured storage backend.
func openStores(ctx context.Context, cfg *config.Config) (stores, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, mongodb.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.StoreTimeout,
		})
		if err != nil {
			return stores{}, nil, err
		}
		disconnect := func() error { return client.Disconnect(context.Background()) }

		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			disconnect()
			return stores{}, nil, err
		}
		return stores{
			menu:   repositories.NewMongoMenuRepository(db),
			users:  repositories.NewMongoUserRepository(db),
			carts:  repositories.NewMongoCartRepository(db),
			orders: repositories.NewMongoOrderRepository(db),
		}, disconnect, nil

	case config.DriverSQLite, config.DriverPostgres:
		dialector := sqlite.Open(cfg.DatabaseDSN)
		if cfg.StoreDriver == config.DriverPostgres {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return stores{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return stores{}, nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		if err := repositories.AutoMigrate(db); err != nil {
			sqlDB.Close()
			return stores{}, nil, err
		}
		return stores{
			menu:   repositories.NewGORMMenuRepository(db),
			users:  repositories.NewGORMUserRepository(db),
			carts:  repositories.NewGORMCartRepository(db),
			orders: repositories.NewGORMOrderRepository(db),
		}, sqlDB.Close, nil

	default:
		log.Warn().Msg("using the in-memory store; data is lost on restart")
		return stores{
			menu:   repositories.NewMockMenuRepository(),
			users:  repositories.NewMockUserRepository(),
			carts:  repositories.NewMockCartRepository(),
			orders: repositories.NewMockOrderRepository(),
		}, func() error { return nil }, nil
	}
}

// newApp wires storage, optional collaborators, services and routes. The returned closers
// must be run once the app has shut down.
func newApp(ctx context.Context, cfg *config.Config) (*fiber.App, []func() error, error) {
	st, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{closeStore}

	menuRepo := st.menu
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, menu cache disabled")
			client.Close()
		} else {
			menuRepo = repositories.NewCacheAsideMenuRepository(st.menu, client, cfg.MenuCacheTTL)
			closers = append(closers, client.Close)
		}
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:        cfg.RabbitMQURL,
			Exchange:   cfg.RabbitMQExchange,
			Queue:      cfg.RabbitMQQueue,
			BindingKey: "order.#",
		})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unreachable, order events disabled")
		} else {
			publisher = mqClient
			closers = append(closers, mqClient.Close)
			if err := mqClient.ConsumeOrderEvents(handleOrderEvent); err != nil {
				log.Error().Err(err).Msg("failed to start RabbitMQ consumer")
			}
		}
	}

	var processor services.PaymentProcessor
	if cfg.StripeSecretKey != "" {
		processor = payments.NewStripeProcessor(cfg.StripeSecretKey)
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	// --- Initialize Services ---
	cartService := services.NewCartService(st.carts)
	orderService := services.NewOrderService(st.orders, st.users, cartService, publisher)
	menuService := services.NewMenuService(menuRepo)
	userService := services.NewUserService(st.users)
	paymentService := services.NewPaymentService(processor, cfg.PaymentCurrency)
	statsService := services.NewStatsService(st.users, st.orders)

	app := fiber.New(fiber.Config{AppName: "ivr"})
	app.Use(recover.New(), requestid.New(), middleware.RequestLogger())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(banner)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.StoreDriver,
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1", middleware.StoreDeadline(cfg.StoreTimeout))
	handlers.NewMenuHandler(menuService).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewPaymentHandler(paymentService).RegisterRoutes(apiV1)
	handlers.NewStatsHandler(statsService).RegisterRoutes(apiV1)

	return app, closers, nil
}

// handleOrderEvent logs an order event. Bodies that are not order events are rejected.
func handleOrderEvent(msg amqp.Delivery) error {
	var event services.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("malformed order event: %w", err)
	}
	if event.OrderID == "" {
		return errors.New("order event without orderId")
	}
	log.Info().
		Str("event", msg.RoutingKey).
		Str("order_id", event.OrderID).
		Str("user_id", event.UserID).
		Str("status", string(event.Status)).
		Float64("total", event.Total).
		Msg("order event received")
	return nil
}
