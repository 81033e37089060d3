// Command authd runs the bundled authentication service: an in-memory user
// store behind the credential engine, exposed over HTTP. It exists for demos
// and integration testing; real deployments embed the library behind their
// own user database.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gourmoire/authkit"
	"github.com/gourmoire/authkit/httpapi"
	"github.com/gourmoire/authkit/password"
	"github.com/gourmoire/authkit/userstore"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting authd", zap.String("addr", cfg.Server.Addr))

	// Startup is a distinct phase: every dependency is connected and seeded
	// before the listener opens, so request handlers never initialize state.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	pingCtx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}

	users, err := seedUsers(cfg, logger)
	if err != nil {
		logger.Fatal("seed users", zap.Error(err))
	}

	engine, err := authkit.New().
		WithConfig(authkit.Config{
			AccessSecret:  cfg.Auth.AccessSecret,
			RefreshSecret: cfg.Auth.RefreshSecret,
		}).
		WithRedis(rdb).
		WithUserProvider(users).
		Build()
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpapi.NewServer(engine, users, logger).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", zap.String("addr", cfg.Server.Addr))

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	_ = srv.Shutdown(shCtx)

	logger.Info("bye")
}

func seedUsers(cfg *config, logger *zap.Logger) (*userstore.Memory, error) {
	hasher, err := password.NewHasher(bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := userstore.NewMemory(hasher)
	for _, u := range cfg.Users {
		if _, err := users.Create(u.Username, u.Email, u.Password); err != nil {
			return nil, err
		}
		logger.Info("seeded user", zap.String("username", u.Username))
	}
	return users, nil
}

func initLogger(cfg *config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Log.Pretty {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}
