package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/config"
	"github.com/soundplus/storefront/internal/events"
	"github.com/soundplus/storefront/internal/httpserver"
	"github.com/soundplus/storefront/internal/search"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/session"
	pkgdb "github.com/soundplus/storefront/pkg/db"
	"github.com/soundplus/storefront/pkg/logging"
	"github.com/soundplus/storefront/pkg/middleware"
	"github.com/soundplus/storefront/pkg/middleware/csrf"
	"github.com/soundplus/storefront/pkg/middleware/ratelimit"
)

// closers collects what has to be released after the server stops.
type closers []func() error

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "storefront")
	slog.SetDefault(logger)

	api, err := apiclient.NewClient(cfg.APIURL, cfg.APITimeout)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	var cleanup closers
	store, err := sessionStore(appCtx, cfg, &cleanup)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	publisher := events.Publisher(events.Nop{})
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("events_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	cleanup = append(cleanup, publisher.Close)

	var searcher search.Searcher = &search.Catalog{Source: api}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		ctx, cancel := context.WithTimeout(appCtx, 5*time.Second)
		err = search.Ping(ctx, es)
		cancel()
		if err != nil {
			logger.Warn("search_fallback", "reason", "elasticsearch unreachable", "error", err)
		} else {
			searcher = &search.Elastic{ES: es, IndexName: cfg.ESIndex}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.Common(logger)...)

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	csrfCfg.SkipPaths = []string{"/health/live", "/health/ready"}

	err = httpserver.Register(e, &httpserver.Deps{
		Sessions:     store,
		Auth:         &service.AuthService{API: api, Events: publisher},
		Catalog:      &service.CatalogService{API: api, Search: searcher, Events: publisher},
		Orders:       &service.OrderService{API: api},
		Cart:         &service.CartService{API: api},
		API:          api,
		CSRF:         csrfCfg,
		LoginLimiter: ratelimit.New(rate.Limit(cfg.LoginRate), cfg.LoginBurst),
	})
	if err != nil {
		log.Fatalf("register routes: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("storefront_listening", "addr", srv.Addr, "api_url", cfg.APIURL, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	stopApp()

	for _, c := range cleanup {
		if err := c(); err != nil {
			logger.Error("close_error", "error", err)
		}
	}
	logger.Info("storefront stopped")
}

// sessionKeys derives the encryption key from the signing secret so one
// SESSION_SECRET is enough.
func sessionKeys(secret []byte) [][]byte {
	enc := sha256.Sum256(append([]byte("storefront-session-encryption:"), secret...))
	return [][]byte{secret, enc[:]}
}

func sessionStore(ctx context.Context, cfg *config.Config, cleanup *closers) (sessions.Store, error) {
	keys := sessionKeys(cfg.SessionSecret)
	opts := httpserver.SessionOptions(cfg.SessionMaxAge, cfg.CookieSecure)

	switch cfg.SessionStore {
	case "cookie":
		s := sessions.NewCookieStore(keys...)
		s.Options = opts
		return s, nil

	case "filesystem":
		if err := os.MkdirAll(cfg.SessionDir, 0o700); err != nil {
			return nil, err
		}
		s := sessions.NewFilesystemStore(cfg.SessionDir, keys...)
		s.Options = opts
		return s, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		*cleanup = append(*cleanup, client.Close)
		s := session.NewRedisStore(client, keys...)
		s.Options = opts
		return s, nil

	case "sql":
		if cfg.SessionDBDSN == "" {
			return nil, errors.New("SESSION_DB_DSN is required for the sql session store")
		}
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := pkgdb.Open(openCtx, cfg.SessionDBDSN)
		if err != nil {
			return nil, err
		}
		*cleanup = append(*cleanup, closeDB(db))
		s, err := session.NewGormStore(db, keys...)
		if err != nil {
			return nil, err
		}
		s.Options = opts
		go s.Reap(ctx, 10*time.Minute)
		return s, nil
	}
	return nil, errors.New("unknown SESSION_STORE " + cfg.SessionStore + " (cookie, filesystem, redis, sql)")
}

func closeDB(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
