package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sharebox/api"
	"sharebox/config"
	"sharebox/db"
	_ "sharebox/docs" // Import for side effect: registers swagger spec via init()
	"sharebox/store"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// @title           BEUShareBox API
// @version         1.0.0

// @description     ## BEUShareBox
// @description
// @description     A local product-sharing catalog for a single user. Products can be added, browsed, filtered, sorted, liked, commented on, reordered and deleted.
// @description     The catalog, the user profile and the active filters are persisted after every change and reloaded on start.
// @description
// @description     **Views** subscribe to `GET /events`. A `change` event carries everything a view renders: the filtered products, the user, the filters and the statistics.
// @description     `toast` events carry short messages such as "Product liked!".
// @description
// @description     **Deleting** is a two-step action: `POST /products/{id}/delete-request` returns a token, which is confirmed with `POST /deletions/{token}/confirm` or cancelled with `DELETE /deletions/{token}`.
// @description
// @description     **Moving data:** `GET /export` downloads the whole catalog. `POST /import` merges an exported file back in, skipping products that already exist.

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("CRITICAL: Failed to load configuration: %v", err)
	}

	// --- Storage ---
	backend, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to open %s storage: %v", cfg.StorageDriver, err)
	}

	// --- Catalog ---
	metrics := api.NewMetrics()
	hub := api.NewHub(metrics)
	catalog := store.New(cfg, backend, hub)
	catalog.Init()
	detach := hub.Attach(catalog)
	metrics.WatchCatalog(catalog)

	// --- Gin Router Setup ---
	router := gin.New()
	// Logger and Recovery as in gin.Default, minus the debug warning.
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, catalog, hub, metrics, cfg)

	// --- Start Server ---
	listenAddr := fmt.Sprintf("%s:%s", cfg.ListenAddress, cfg.ListenPort)
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("INFO: Starting server on %s", listenAddr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			detach()
			if closeErr := catalog.Close(); closeErr != nil {
				log.Printf("ERROR: Failed to close storage: %v", closeErr)
			}
			log.Fatalf("CRITICAL: Server failed to start: %v", err)
		}
	case <-ctx.Done():
		log.Printf("INFO: Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Open event streams end when their request context is cancelled.
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("WARN: Graceful shutdown did not complete: %v", err)
		}
	}

	detach()
	if err := catalog.Close(); err != nil {
		log.Printf("ERROR: Failed to close storage: %v", err)
	}
	log.Printf("INFO: Server stopped")
}
