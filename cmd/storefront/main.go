package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gordopods/storefront/internal/config"
	"github.com/gordopods/storefront/internal/events"
	"github.com/gordopods/storefront/internal/httpserver"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/notify"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/search"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/store"
	pkgdb "github.com/gordopods/storefront/pkg/db"
	"github.com/gordopods/storefront/pkg/logging"
	"github.com/gordopods/storefront/pkg/middleware/csrf"
	loggingmw "github.com/gordopods/storefront/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	localDB, err := pkgdb.OpenSQLite(cfg.LocalCachePath)
	if err != nil {
		cancel()
		log.Fatalf("local cache open: %v", err)
	}
	if err := store.Migrate(ctx, localDB); err != nil {
		cancel()
		log.Fatalf("local cache migrate: %v", err)
	}

	var index search.Index
	if cfg.ESURL != "" {
		client, err := search.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_unavailable", "error", err)
		} else {
			index = &search.ESIndex{Client: client, Index: cfg.ESIndex}
		}
	}
	cancel()

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	r := repo.New(db)
	kv := &store.Fallback{
		Primary: store.NewGormStore(db, "remote"),
		Cache:   store.NewGormStore(localDB, "local"),
	}
	locale := money.LocaleFor(cfg.StoreLocale)

	catalogSvc := &service.CatalogService{Repo: r, Index: index}
	carts := &service.CartService{Store: kv, Catalog: r}
	settings := &service.SettingsService{Store: kv}
	checkout := &service.CheckoutService{
		Carts:         carts,
		Settings:      settings,
		Orders:        r,
		Assembler:     order.NewAssembler(),
		Publisher:     publisher,
		Notifier:      &notify.KafkaNotifier{Publisher: publisher, Topic: cfg.NotifyTopic},
		EventsTopic:   cfg.OrderEventsTopic,
		StoreWhatsApp: cfg.StoreWhatsApp,
		Locale:        locale,
	}
	orders := &service.OrderService{Repo: r, Publisher: publisher, EventsTopic: cfg.OrderEventsTopic}
	auth := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, AccessTTL: service.DefaultAccessTTL}

	if cfg.AdminUsername != "" {
		if err := auth.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatalf("ensure admin: %v", err)
		}
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CSRFSecure

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Catalog:   &httpserver.CatalogHTTP{Svc: catalogSvc},
		Cart:      &httpserver.CartHTTP{Svc: carts, Locale: locale},
		Checkout:  &httpserver.CheckoutHTTP{Svc: checkout},
		Orders:    &httpserver.OrderHTTP{Svc: orders},
		Settings:  &httpserver.SettingsHTTP{Svc: settings},
		Auth:      &httpserver.AuthHTTP{Svc: auth, CSRF: csrfCfg},
		JWTSecret: cfg.JWTSecret,
		CSRF:      csrfCfg,
		Ready:     r.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}
	if err := pkgdb.Close(localDB); err != nil {
		log.Printf("local cache close error: %v", err)
	}
	if err := pkgdb.Close(db); err != nil {
		log.Printf("db close error: %v", err)
	}

	log.Println("storefront stopped")
}
