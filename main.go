package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"vegholic-api/cache"
	"vegholic-api/configs"
	"vegholic-api/locks"
	"vegholic-api/server"
	"vegholic-api/store"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recordStore store.Store
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		recordStore = store.NewMemoryStore()
	default:
		mongoClient, err = configs.ConnectDB(ctx, cfg)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		mongoStore := store.NewMongoStore(mongoClient, cfg.DatabaseName)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			logger.Fatal("index creation failed", zap.Error(err))
		}
		recordStore = mongoStore
		logger.Info("connected to MongoDB", zap.String("database", cfg.DatabaseName))
	}

	var (
		productCache cache.ProductCache = cache.NoopCache{}
		locker       locks.Locker       = locks.NewLocalLocker()
		redisClient  *redis.Client
	)
	redisClient, err = configs.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	if redisClient != nil {
		productCache = cache.NewRedisProductCache(redisClient, cfg.ProductCacheTTL, logger)
		locker = locks.NewRedisLocker(redisClient, cfg.RequestTimeout, logger)
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	srv := server.New(server.Dependencies{
		Config: cfg,
		Store:  recordStore,
		Locker: locker,
		Cache:  productCache,
		Logger: logger,
	})

	if _, err := srv.Catalog.EnsureSeed(ctx); err != nil {
		logger.Error("catalog seed failed", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.App.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}
}
