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

	"github.com/spurlabs/support-chat/backend/internal/config"
	"github.com/spurlabs/support-chat/backend/internal/handler"
	chatModel "github.com/spurlabs/support-chat/backend/internal/model/chat"
	"github.com/spurlabs/support-chat/backend/internal/service/ai"
	chatservice "github.com/spurlabs/support-chat/backend/internal/service/chat"
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

	store, err := chatModel.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open conversation store at %s: %v", cfg.Store.Path, err)
	}
	defer store.Close()

	// The reply generator never blocks startup: without credentials it
	// answers with its fallback string.
	aiService := ai.NewService(ctx, cfg.AI)
	if aiService.Enabled() {
		log.Println("AI service initialized successfully")
	}

	chatSvc := chatservice.New(store, aiService)
	router := handler.NewRouter(chatSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Spur support chat backend listening on %s", serverCfg.Addr)
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
