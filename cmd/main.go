package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/longkeutn/cong-thong-tin-sht/internal/api"
	"github.com/longkeutn/cong-thong-tin-sht/internal/repository"
	"github.com/longkeutn/cong-thong-tin-sht/internal/service"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/broker"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/config"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/logger"
	"github.com/longkeutn/cong-thong-tin-sht/pkg/postgres"
)

const (
	ReadTimeout       = 3 * time.Second
	WriteTimeout      = 5 * time.Second
	IdleTimeout       = 60 * time.Second
	ReadHeaderTimeout = 1 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	pool, err := postgres.ConnectToPostgres(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)

	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	catalogRepo := repository.NewCatalogRepository(pool)
	favoritesRepo := repository.NewFavoritesRepository(pool)

	var events service.EventPublisher

	if len(cfg.KafkaBrokers) > 0 {
		producer := broker.NewProducer(l, cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()

		events = producer
	}

	s := service.NewService(catalogRepo, favoritesRepo, events)

	h := api.NewHandler(s)
	mw := api.NewMiddleware(loadJWTPublicKey(cfg.JWTPublicKey), cfg.DevFallbackEmail)
	router := api.NewRouter(h, mw)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("http server started", "port", cfg.HTTPPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		l.Debug("http server stopped")
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(cfg.FavoritesCompactInterval)
		defer ticker.Stop()

		l := l.With("job", "compact_favorites")
		for {
			l.Debug("job started")

			deleted, err := s.CompactFavorites(ctx)
			if err != nil {
				l.Error(fmt.Sprintf("job failed: %s", err))
			} else {
				l.Debug("job finished", "deleted_rows", deleted)
			}

			select {
			case <-ctx.Done():
				l.Debug("job stopped by ctx")
				return
			case <-ticker.C:
			}
		}
	}()

	waitSignal(l, cancel, server)
	wg.Wait()
}

func waitSignal(l *slog.Logger, cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		l.Error("server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

func loadJWTPublicKey(path string) *rsa.PublicKey {
	if path == "" {
		return nil
	}

	pem, err := os.ReadFile(path)
	panicOnErr("read JWT public key", err)

	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	panicOnErr("parse JWT public key", err)

	return key
}
