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

	"github.com/centralaluminiosdelvalle/backend/internal/config"
	"github.com/centralaluminiosdelvalle/backend/internal/googleauth"
	"github.com/centralaluminiosdelvalle/backend/internal/handler"
	"github.com/centralaluminiosdelvalle/backend/internal/service/assistant"
	"github.com/centralaluminiosdelvalle/backend/internal/service/chat"
	"github.com/centralaluminiosdelvalle/backend/internal/service/chatbot"
	"github.com/centralaluminiosdelvalle/backend/internal/service/inventory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Inventory data source: service account if fully configured,
	// API key otherwise, fixture data when neither is present.
	var sheetsOpts []inventory.SheetsOption
	if cfg.Sheets.HasServiceAccount() {
		tokens, err := googleauth.NewTokenSource(googleauth.Credentials{
			ClientEmail: cfg.Sheets.ServiceAccountEmail,
			PrivateKey:  cfg.Sheets.PrivateKey,
			ProjectID:   cfg.Sheets.ProjectID,
		})
		if err != nil {
			log.Printf("warning: service account unusable, falling back to API key: %v", err)
		} else {
			sheetsOpts = append(sheetsOpts, inventory.WithTokenSource(tokens))
			log.Println("Google service account configured for sheet access")
		}
	}
	if !cfg.Sheets.Enabled() {
		log.Println("spreadsheet access not configured, inventory will serve fixture data")
	}
	inventorySvc := inventory.NewService(inventory.NewSheetsSource(cfg.Sheets, sheetsOpts...))

	chatSvc := chat.NewService()

	assistantSvc, err := assistant.NewService(ctx, inventorySvc, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize completion chain: %v", err)
		log.Println("continuing with the local responder only")
		assistantSvc, _ = assistant.NewService(ctx, inventorySvc, config.AIConfig{})
	}
	if assistantSvc.AIEnabled() {
		log.Println("AI assistant initialized successfully")
	} else {
		log.Println("completion credential not configured, assistant runs on local responses")
	}

	var legacyClient *chatbot.Client
	if cfg.Chatbot.Enabled() {
		legacyClient = chatbot.NewClient(cfg.Chatbot)
		log.Printf("legacy chatbot backend enabled, session=%s", legacyClient.SessionID())
	} else {
		log.Println("legacy chatbot backend not configured, skipping proxy routes")
	}

	router := handler.NewRouter(chatSvc, assistantSvc, inventorySvc, legacyClient)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Central de Aluminios backend listening on %s", serverCfg.Addr)
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
