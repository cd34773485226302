package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/cache"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/cart"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/checkout"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/geo"
	h "github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/http"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/order"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/storage"
)

type Config struct {
	HTTPPort             string
	SQLitePath           string
	MigrationsPath       string
	MongoURI             string
	MongoDBName          string
	RedisAddr            string
	RedisPassword        string
	GeoProviderURL       string
	OrderRefreshInterval time.Duration
	LocateTimeout        time.Duration
	RequestTimeout       time.Duration
	ShutdownTimeout      time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		SQLitePath:           getEnv("SQLITE_PATH", "umkm.db"),
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "migrations"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:          getEnv("MONGO_DB_NAME", "umkm_carts"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		GeoProviderURL:       getEnv("GEO_PROVIDER_URL", "http://localhost:8091"),
		OrderRefreshInterval: getEnvDuration("ORDER_REFRESH_INTERVAL", order.DefaultRefreshInterval),
		LocateTimeout:        getEnvDuration("LOCATE_TIMEOUT", geo.DefaultLocateTimeout),
		RequestTimeout:       30 * time.Second,
		ShutdownTimeout:      10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	db, err := storage.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Client().Disconnect(ctx); err != nil {
			log.Printf("mongodb disconnect error: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	store := cache.NewRedisStore(redisClient)

	catalogService := catalog.NewService(catalog.NewRepository(db), store)
	cartService := cart.NewService(cart.NewMongoRepository(mongoDB), store, catalogService)

	orderRepo := order.NewRepository(db)
	checkoutService := checkout.NewService(cartService, catalogService, orderRepo)

	watcher := order.NewWatcher(orderRepo, cfg.OrderRefreshInterval)
	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	go watcher.Run(watcherCtx)

	locator := geo.NewHTTPLocator(&http.Client{Timeout: cfg.LocateTimeout}, cfg.GeoProviderURL)

	router := h.NewRouter(h.RouterDeps{
		Vendors:      h.NewVendorHandler(catalogService, locator, cfg.LocateTimeout),
		Products:     h.NewProductHandler(catalogService),
		Vouchers:     h.NewVoucherHandler(catalogService),
		Destinations: h.NewDestinationHandler(catalogService, locator, cfg.LocateTimeout),
		Cart:         h.NewCartHandler(cartService, catalogService),
		Checkout:     h.NewCheckoutHandler(checkoutService),
		Orders:       h.NewOrderHandler(orderRepo, watcher),
		Settings:     h.NewSettingsHandler(catalogService),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopWatcher()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
