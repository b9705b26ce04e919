package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawsuite/grooming-booking/internal/api"
	"github.com/pawsuite/grooming-booking/internal/booking"
	"github.com/pawsuite/grooming-booking/internal/config"
	"github.com/pawsuite/grooming-booking/internal/db"
	"github.com/pawsuite/grooming-booking/internal/storage"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s storage=%s", cfg.Env, cfg.HTTPPort, cfg.StorageBackend)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := connectStore(rootCtx, cfg)
	if err != nil {
		log.Fatalf("store connection error: %v", err)
	}
	defer closeStore()
	log.Printf("connected to %s store", cfg.StorageBackend)

	catalog := booking.NewCatalog(store)
	seedCtx, cancelSeed := context.WithTimeout(rootCtx, 5*time.Second)
	err = catalog.EnsureSeeded(seedCtx)
	cancelSeed()
	if err != nil {
		log.Fatalf("catalog seed error: %v", err)
	}

	sessions := booking.NewSessions(store)
	recorder := booking.NewRecorder(store)
	hours := booking.Hours{
		OpenHour:      cfg.OpenHour,
		CloseHour:     cfg.CloseHour,
		ClosedWeekday: cfg.ClosedWeekday,
	}
	workflow := booking.NewWorkflow(catalog, recorder, hours)

	router := api.NewRouter(api.RouterConfig{
		Workflow: workflow,
		Catalog:  catalog,
		Sessions: sessions,
		Store:    store,
		Env:      cfg.Env,
		Version:  version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		log.Println("shutting down api-server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func connectStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pgCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancel()
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewPgStore(pool)
		schemaCtx, cancelSchema := context.WithTimeout(ctx, 5*time.Second)
		err = store.EnsureSchema(schemaCtx)
		cancelSchema()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		rdb, err := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}
		return storage.NewRedisStore(rdb), closeFn, nil
	}
}
