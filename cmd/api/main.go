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

	"github.com/joho/godotenv"

	"github.com/synthpanel/focusgroup/internal/config"
	"github.com/synthpanel/focusgroup/internal/handler"
	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/ai"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog := newCatalog(cfg.Catalog)

	var fgSvc *focusgroup.Service
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without ask endpoints - check the ARK_* environment variables")
		} else {
			fgSvc = focusgroup.NewService(catalog, aiSvc)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, ask endpoints disabled")
	}

	router := handler.NewRouter(catalog, fgSvc)

	startServer(ctx, cfg.Server, router)
}

// newCatalog prefers the configured catalog file and falls back to the
// built-in seed audience when the file is absent.
func newCatalog(cfg config.CatalogConfig) persona.Catalog {
	if _, err := os.Stat(cfg.Path); err != nil {
		log.Printf("audience catalog %s unavailable (%v), using built-in seed audiences", cfg.Path, err)
		return persona.NewMemoryCatalog(persona.Seed())
	}

	log.Printf("serving audiences from %s", cfg.Path)
	return persona.NewFileCatalog(cfg.Path)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Focus group backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
