package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/util"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		panic(err)
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	client, err := database.Connect(cfg.Mongo.URI)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	db := client.Database(cfg.Mongo.DBName)
	logger.Info("mongodb connected", zap.String("database", db.Name()))

	if err := database.EnsureProductIndexes(db); err != nil {
		logger.Warn("product index warning", zap.Error(err))
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		logger.Warn("order index warning", zap.Error(err))
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		logger.Warn("user index warning", zap.Error(err))
	}
	if err := database.EnsureContactIndexes(db); err != nil {
		logger.Warn("contact index warning", zap.Error(err))
	}
	if err := database.EnsureNewsletterIndexes(db); err != nil {
		logger.Warn("newsletter index warning", zap.Error(err))
	}

	// Rate limiting degrades open without Redis; the API stays up.
	rdb := connectRedis(cfg)

	notifier := notify.NewNotifier(
		notify.NewSMTPSender(cfg.Email),
		notify.NewTwilioSender(cfg.SMS),
		cfg,
	)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	env := cfg.Server.Env
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "time": time.Now().Unix()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	window := 15 * time.Minute
	orderLimiter := middleware.RateLimit(rdb, "orders", 3, window,
		"Too many order submissions. Please try again in 15 minutes.")
	contactLimiter := middleware.RateLimit(rdb, "contact", 5, window,
		"Too many contact form submissions. Please try again in 15 minutes.")
	newsletterLimiter := middleware.RateLimit(rdb, "newsletter", 5, window,
		"Too many newsletter requests. Please try again in 15 minutes.")
	authLimiter := middleware.RateLimit(rdb, "auth", 10, window,
		"Too many authentication attempts. Please try again in 15 minutes.")

	api := r.Group("/api")
	{
		api.GET("/products", handlers.ListProducts(db, env))
		api.GET("/products/featured", handlers.FeaturedProducts(db, env))
		api.GET("/products/bestsellers", handlers.BestSellers(db, env))
		api.GET("/products/:id", handlers.GetProduct(db, env))

		api.POST("/orders", orderLimiter, handlers.CreateOrder(db, notifier, env))
		api.GET("/orders", handlers.ListOrders(db, env))
		api.GET("/orders/stats/summary", handlers.OrderStats(db, env))
		api.GET("/orders/:id", handlers.GetOrder(db, env))
		api.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db, notifier, env))
		api.POST("/orders/:id/tracking", handlers.AddTracking(db, env))
		api.POST("/orders/:id/payment", handlers.RecordPayment(db, env))
		api.POST("/orders/:id/refund", handlers.RecordRefund(db, env))

		api.POST("/contact", contactLimiter, handlers.SubmitContact(db, notifier, env))
		api.GET("/contact", handlers.ListContacts(db, env))
		api.PUT("/contact/:id/read", handlers.MarkContactRead(db, env))

		api.POST("/newsletter/subscribe", newsletterLimiter, handlers.Subscribe(db, env))
		api.POST("/newsletter/unsubscribe", newsletterLimiter, handlers.Unsubscribe(db, env))
		api.GET("/newsletter/status/:email", handlers.SubscriptionStatus(db, env))
		api.GET("/newsletter/stats", handlers.NewsletterStats(db, env))

		api.POST("/auth/register", authLimiter, handlers.Register(db, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMin, env))
		api.POST("/auth/login", authLimiter, handlers.Login(db, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMin, env))
		api.GET("/auth/me", middleware.UserAuth(cfg.Auth.JWTSecret), handlers.Me(db, env))
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func connectRedis(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		util.GetLogger().Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		return nil
	}
	return rdb
}
