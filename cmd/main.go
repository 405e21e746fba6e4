package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqpAdapter "github.com/zahub/storefront/internal/adapter/amqp"
	httpAdapter "github.com/zahub/storefront/internal/adapter/http"
	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/adapter/postgres"
	"github.com/zahub/storefront/internal/adapter/rabbitmq"
	"github.com/zahub/storefront/internal/app/cart"
	"github.com/zahub/storefront/internal/app/catalog"
	"github.com/zahub/storefront/internal/app/checkout"
	"github.com/zahub/storefront/internal/config"
)

func main() {
	mode := flag.String("mode", "", "Service mode: storefront, notification-subscriber")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "storefront":
		if err := postgres.RunMigrations(cfg.Database); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		runStorefront(db, mqConn, lgr, cfg.HTTP.Port)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, mqConn, lgr, *prefetch)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runStorefront(db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger, port int) {
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	publisher := rabbitmq.NewPublisher(mqConn)

	cartService := cart.NewService(cartRepo, catalogRepo, lgr)
	checkoutService := checkout.NewService(cartService, cartRepo, orderRepo, publisher, lgr)
	catalogService := catalog.NewService(catalogRepo, orderRepo, lgr)

	cartHandler := httpAdapter.NewCartHandler(cartService, checkoutService, lgr)
	catalogHandler := httpAdapter.NewCatalogHandler(catalogService, lgr)

	authed := httpAdapter.AuthMiddleware(userRepo, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/menu/ingredients", catalogHandler.HandleIngredients)
	mux.HandleFunc("/menu/products", catalogHandler.HandleProducts)
	mux.Handle("/cart", authed(http.HandlerFunc(cartHandler.HandleCart)))
	mux.Handle("/cart/lines", authed(http.HandlerFunc(cartHandler.HandleLines)))
	mux.Handle("/cart/lines/", authed(http.HandlerFunc(cartHandler.HandleLine)))
	mux.Handle("/checkout", authed(http.HandlerFunc(cartHandler.HandleCheckout)))
	mux.Handle("/orders", authed(http.HandlerFunc(catalogHandler.HandleOrders)))
	mux.Handle("/orders/", authed(http.HandlerFunc(catalogHandler.HandleOrders)))

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Storefront started on port %d", port), "startup", map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down storefront", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger, prefetch int) {
	consumer := rabbitmq.NewConsumer(mqConn, prefetch)
	handler := amqpAdapter.NewOrderPlacedHandler(lgr)

	lgr.Info("service_started", "Notification subscriber started", "startup", nil)

	go func() {
		if err := consumer.ConsumeOrderPlaced(ctx, handler.HandleOrderPlaced); err != nil {
			lgr.Error("consumer_error", "Error consuming order-placed events", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down notification subscriber", "shutdown", nil)
}
