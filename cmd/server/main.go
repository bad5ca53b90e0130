package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Skufu/symptomchat/internal/chat"
	"github.com/Skufu/symptomchat/internal/config"
	"github.com/Skufu/symptomchat/internal/knowledge"
	"github.com/Skufu/symptomchat/internal/logger"
	"github.com/Skufu/symptomchat/internal/metrics"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// server carries the state shared by all handlers. kb is read-only after
// startup.
type server struct {
	kb         *knowledge.Base
	history    chat.Store
	log        logger.Logger
	checks     map[string]HealthChecker
	sessionTTL time.Duration
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)
	log := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	checks := map[string]HealthChecker{}

	var pool *pgxpool.Pool
	if cfg.NeedsDB() {
		pool, err = connectDB(ctx, cfg.DatabaseURL)
		switch {
		case err != nil && cfg.EnableDB:
			log.WithError(err).Error("database connection failed", nil)
			os.Exit(1)
		case err != nil:
			log.WithError(err).Warn("database unavailable", map[string]interface{}{"kb_source": cfg.KnowledgeBaseSource})
		default:
			defer pool.Close()
			checks["db"] = pool
		}
	}

	kb := loadKnowledgeBase(ctx, cfg, pool, log)
	metrics.KnowledgeBaseConditions.Set(float64(kb.Len()))

	history, closeHistory := newHistoryStore(cfg, checks)
	defer func() {
		if err := closeHistory(); err != nil {
			log.WithError(err).Warn("closing history store", nil)
		}
	}()

	srv := &server{
		kb:         kb,
		history:    history,
		log:        log,
		checks:     checks,
		sessionTTL: cfg.SessionTTL,
	}

	staticRoot := cfg.StaticRoot
	if staticRoot == "" {
		staticRoot = detectStaticRoot()
	}
	router := setupRouter(srv, staticRoot)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error", nil)
			os.Exit(1)
		}
	}()

	log.Info("server listening", map[string]interface{}{
		"port":            cfg.Port,
		"session_backend": cfg.SessionBackend,
		"static_root":     staticRoot,
	})
	waitForShutdown(httpServer, log)
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// loadKnowledgeBase never fails: any problem is logged and an empty base is
// served instead.
func loadKnowledgeBase(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log logger.Logger) *knowledge.Base {
	fields := map[string]interface{}{"source": cfg.KnowledgeBaseSource}

	var (
		kb  *knowledge.Base
		err error
	)
	switch cfg.KnowledgeBaseSource {
	case "postgres":
		if pool == nil {
			log.Warn("knowledge base unavailable without database, serving empty", fields)
			return knowledge.Empty()
		}
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()

		loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		kb, err = knowledge.LoadSQL(loadCtx, db)
	default:
		fields["path"] = cfg.KnowledgeBasePath
		kb, err = knowledge.LoadFile(cfg.KnowledgeBasePath)
	}

	if err != nil {
		log.WithError(err).Warn("knowledge base unavailable, serving empty", fields)
	}
	fields["conditions"] = kb.Len()
	log.Info("knowledge base loaded", fields)
	return kb
}

func newHistoryStore(cfg *config.Config, checks map[string]HealthChecker) (chat.Store, func() error) {
	if cfg.SessionBackend == "redis" {
		store := chat.NewRedisStore(chat.NewRedisClient(chat.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), cfg.SessionTTL)
		checks["redis"] = store
		return store, store.Close
	}
	return chat.NewMemoryStore(cfg.SessionTTL), func() error { return nil }
}

func waitForShutdown(server *http.Server, log logger.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}
}

// detectStaticRoot finds the web/ directory whether the binary runs from the
// repository root or from cmd/server.
func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "web"
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		webDir := filepath.Join(dir, "web")
		if fileExists(filepath.Join(webDir, "index.html")) {
			return webDir
		}
	}

	return filepath.Join(startDir, "web")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
