package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/ledgermart/ledgermart/internal/config"
	"github.com/ledgermart/ledgermart/internal/handler"
	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
	"github.com/ledgermart/ledgermart/internal/middleware"
	"github.com/ledgermart/ledgermart/internal/repository"
	"github.com/ledgermart/ledgermart/internal/service"
	"github.com/ledgermart/ledgermart/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Ledger runtime and genesis actors
	sys := ledger.NewSystem(ledger.Config{
		Rent:            ledger.Coins(cfg.Ledger.RentNano),
		EventBufferSize: cfg.Ledger.EventBufferSize,
	}, log)

	admin := ledger.WalletAddress(cfg.Ledger.AdminWalletKey)
	shopFactory := market.ShopFactoryAddress(admin)
	usersFactory := market.UsersFactoryAddress(admin)
	sys.Install(shopFactory, market.NewShopFactory(admin))
	sys.Install(usersFactory, market.NewUsersFactory(admin))
	sys.Start(ctx)
	log.Info("ledger started",
		"shop_factory", shopFactory.String(),
		"users_factory", usersFactory.String(),
	)

	// Repository
	archiveRepo := repository.NewArchiveRepository(dbPool)

	// Services
	poll := service.PollConfig{
		Retries: cfg.Ledger.DeployPollRetries,
		Backoff: cfg.Ledger.DeployPollBackoff,
	}
	authSvc := service.NewAuthService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.DevTokens)
	shopSvc := service.NewShopService(sys, shopFactory, redisClient, poll)
	orderSvc := service.NewOrderService(sys, archiveRepo, poll)
	userSvc := service.NewUserService(sys, usersFactory, poll)
	walletSvc := service.NewWalletService(sys, cfg.Ledger.FaucetEnabled, ledger.Coins(cfg.Ledger.FaucetAmountNano))

	// Handlers
	shopH := handler.NewShopHandler(shopSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	userH := handler.NewUserHandler(userSvc, walletSvc, authSvc)
	healthH := handler.NewHealthHandler(sys, []ledger.Address{shopFactory, usersFactory}, dbPool, redisClient, amqpConn)

	// Worker
	eventWorker := worker.NewEventWorker(sys.Events(), archiveRepo, amqpCh, redisClient, log)
	eventWorker.Start(ctx)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/dev-token", userH.DevToken)

		wallets := v1.Group("/wallets")
		wallets.GET("/:addr/balance", userH.Balance)
		wallets.GET("/:addr/shop", shopH.ResolveShop)
		wallets.POST("/:addr/faucet", userH.Faucet)

		shops := v1.Group("/shops")
		shops.GET("/:addr", shopH.GetShop)
		shops.GET("/:addr/orders", orderH.ListShopOrders)
		shops.POST("", auth, shopH.CreateShop)
		shops.PUT("/:addr", auth, shopH.UpdateShop)
		shops.POST("/:addr/items", auth, shopH.AddItem)
		shops.PUT("/:addr/items/:index", auth, shopH.UpdateItem)
		shops.PUT("/:addr/item-price", auth, shopH.SetItemPrice)
		shops.POST("/:addr/orders", auth, orderH.MakeOrder)

		v1.GET("/items/:addr", shopH.GetItem)

		orders := v1.Group("/orders")
		orders.GET("/:addr", orderH.GetOrder)
		orders.POST("/:addr/pay", auth, orderH.Pay)
		orders.POST("/:addr/refund", auth, orderH.Refund)

		users := v1.Group("/users")
		users.GET("/:addr", userH.GetUser)
		users.POST("", auth, userH.CreateUser)
		users.PUT("/me", auth, userH.ChangeUserData)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	eventWorker.Stop()
	sys.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
