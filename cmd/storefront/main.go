package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	cartapp "github.com/tienda-kame/storefront/internal/cart/app"
	cartadapter "github.com/tienda-kame/storefront/internal/cart/infra/adapter"
	cartslot "github.com/tienda-kame/storefront/internal/cart/infra/slot"
	cartrest "github.com/tienda-kame/storefront/internal/cart/rest"

	catalogapp "github.com/tienda-kame/storefront/internal/catalog/app"
	"github.com/tienda-kame/storefront/internal/catalog/infra/source"
	catalogrest "github.com/tienda-kame/storefront/internal/catalog/rest"

	sessionapp "github.com/tienda-kame/storefront/internal/session/app"
	sessionslot "github.com/tienda-kame/storefront/internal/session/infra/slot"
	sessionrest "github.com/tienda-kame/storefront/internal/session/rest"

	"github.com/tienda-kame/storefront/internal/storage"
	"github.com/tienda-kame/storefront/internal/view"

	"github.com/tienda-kame/storefront/pkg/config"
	"github.com/tienda-kame/storefront/pkg/logger"
	"github.com/tienda-kame/storefront/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store := mustStore(cfg, log)
	defer store.Close()

	// Catalog
	catalogStore := catalogapp.NewStore(catalogSource(cfg))
	if err := catalogStore.Load(ctx); err != nil {
		// Retried lazily on the next catalog read.
		log.Warn("initial catalog load failed", slog.Any("err", err))
	}

	// View Sync and selector quantities
	selector := view.NewSelector()
	viewSync := view.NewSync(log, view.NewBadgeLogger(log))

	// Session gate and cart manager reference each other (the gate
	// clears the cart on End, the manager checks the gate before Add),
	// so the clearer side is linked after construction.
	sessionRepo := sessionslot.NewRepo(store, log)
	gate := sessionapp.NewGate(sessionRepo)
	cartRepo := cartslot.NewRepo(store, log)
	manager := cartapp.NewManager(
		cartRepo,
		cartadapter.NewCatalogStoreReader(catalogStore),
		cartadapter.NewSessionGateReader(gate),
		viewSync,
	)
	gate.AttachCartClearer(manager)
	viewSync.AttachSource(manager)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	catalogrest.NewHandler(catalogStore, selector).RegisterRoutes(router)
	cartrest.NewHandler(manager, selector).RegisterRoutes(router)
	sessionrest.NewHandler(gate).RegisterRoutes(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustStore(cfg config.Config, log *slog.Logger) storage.Store {
	switch cfg.StoreDriver {
	case "sqlite":
		s, err := storage.OpenSQLite(cfg.StorePath)
		if err != nil {
			log.Error("sqlite store open failed", slog.Any("err", err))
			os.Exit(1)
		}
		return s
	default:
		return storage.NewFileStore(cfg.StorePath, log)
	}
}

func catalogSource(cfg config.Config) catalogapp.Source {
	if cfg.CatalogURL != "" {
		return source.NewHTTPSource(cfg.CatalogURL, nil)
	}
	return source.NewFileSource(cfg.CatalogPath)
}
