package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dozirovkaa/shop-api/configs"
	"github.com/dozirovkaa/shop-api/internal/adapter/cache"
	"github.com/dozirovkaa/shop-api/internal/adapter/http"
	"github.com/dozirovkaa/shop-api/internal/adapter/http/middleware"
	"github.com/dozirovkaa/shop-api/internal/adapter/kafka"
	"github.com/dozirovkaa/shop-api/internal/adapter/payment"
	"github.com/dozirovkaa/shop-api/internal/adapter/queue"
	"github.com/dozirovkaa/shop-api/internal/adapter/repo"
	"github.com/dozirovkaa/shop-api/internal/logging"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, "./logs/app.log", cfg.App.LogLevel)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.MySQL.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.MySQL.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	}
	if cfg.MySQL.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	log.Info("shop-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq producer
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange, cfg.Rabbit.RoutingKey, cfg.Rabbit.Queue)
	if err != nil {
		return nil, nil, err
	}

	// infra
	productRepo := repo.NewMySQLProductRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.StatusCache.TTL)
	gateway := payment.NewStripeGateway(
		cfg.Stripe.SecretKey, cfg.Stripe.Currency,
		cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL,
		cfg.Stripe.ShippingCountries, cfg.Stripe.Timeout,
	)

	// use cases
	cartUC := usecase.NewCart(productRepo, cartRepo)
	checkoutUC := usecase.NewCheckout(cartRepo, gateway)
	createUC := usecase.NewCreateOrder(cartRepo, orderRepo, idem, producer, logging.New("usecase"))

	// fulfillment status listener
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	if err := startStatusConsumer(consumerCtx, cfg, orderRepo, statusCache); err != nil {
		stopConsumer()
		return nil, nil, err
	}

	// handlers + router + middleware
	handlers := http.Handlers{
		Products: http.NewProductHandler(productRepo),
		Cart:     http.NewCartHandler(cartUC),
		Checkout: http.NewCheckoutHandler(checkoutUC),
		Orders:   http.NewOrderHandler(createUC, orderRepo, statusCache),
		Webhook:  http.NewWebhookHandler(createUC, cfg.Stripe.WebhookSecret),
		Token:    http.NewTokenHandler(cfg),
	}
	session := middleware.NewSession(cfg)
	router := http.NewRouter(cfg, handlers, session, logging.New("http"))

	cleanup := func() {
		stopConsumer()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func startStatusConsumer(ctx context.Context, cfg configs.Config, orders *repo.MySQLOrderRepo, statusCache *cache.RedisStatusCache) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	log := logging.New("kafka")
	h := kafka.NewOrderStatusChangedHandler(orders, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicStatus}, h.Handle, log)

	go func() {
		defer grp.Close()
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("status consumer stopped", "err", err)
		}
	}()
	return nil
}
