package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mdbarber/booking-api/internal/cache"
	"github.com/mdbarber/booking-api/internal/config"
	dbpkg "github.com/mdbarber/booking-api/internal/db"
	"github.com/mdbarber/booking-api/internal/infra/imagestore"
	"github.com/mdbarber/booking-api/internal/infra/paymentgw"
	"github.com/mdbarber/booking-api/internal/logger"
	"github.com/mdbarber/booking-api/internal/metrics"
	"github.com/mdbarber/booking-api/internal/middleware"
	"github.com/mdbarber/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, routes.Deps{
		Cache:    buildCache(cfg, log),
		Payments: buildPayments(cfg, log),
		Images:   buildImages(cfg, log),
	})

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func buildCache(cfg *config.Config, log *zap.Logger) *cache.Availability {
	if cfg.RedisAddr == "" {
		log.Info("availability cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return cache.NewAvailability(rdb, log)
}

func buildPayments(cfg *config.Config, log *zap.Logger) paymentgw.Provider {
	switch cfg.PaymentProvider {
	case "stripe":
		if cfg.StripeSecretKey == "" {
			log.Info("payments disabled", zap.String("provider", "stripe"))
			return nil
		}
		return paymentgw.NewStripeProvider(cfg.StripeSecretKey, cfg.PaymentCurrency)

	case "mercadopago":
		if cfg.MPAccessToken == "" {
			log.Info("payments disabled", zap.String("provider", "mercadopago"))
			return nil
		}
		provider, err := paymentgw.NewMercadoPagoProvider(cfg.MPAccessToken, cfg.PaymentCurrency)
		if err != nil {
			log.Fatal("mercadopago init failed", zap.Error(err))
		}
		return provider

	default:
		log.Warn("unknown payment provider", zap.String("provider", cfg.PaymentProvider))
		return nil
	}
}

func buildImages(cfg *config.Config, log *zap.Logger) imagestore.Store {
	switch cfg.ImageStore {
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" {
			log.Info("image uploads disabled", zap.String("store", "cloudinary"))
			return nil
		}
		store, err := imagestore.NewCloudinaryStore(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder,
		)
		if err != nil {
			log.Fatal("cloudinary init failed", zap.Error(err))
		}
		return store

	case "s3":
		if cfg.S3Bucket == "" {
			log.Info("image uploads disabled", zap.String("store", "s3"))
			return nil
		}
		return imagestore.NewS3Store(imagestore.S3Options{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})

	default:
		log.Warn("unknown image store", zap.String("store", cfg.ImageStore))
		return nil
	}
}
