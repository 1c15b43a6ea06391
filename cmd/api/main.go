package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Rajputmansi7/fitness-store/internal/app"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/docstore"
	"github.com/Rajputmansi7/fitness-store/internal/services/hash"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
	"github.com/Rajputmansi7/fitness-store/internal/services/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("GOMAXPROCS", "cpu", runtime.GOMAXPROCS(0))

	// 1. Initialize the document store
	dbService := docstore.New()

	// 2. Initialize services
	hashService := hash.NewHashService()
	tokenService := token.NewService()
	sentryService := sentry.NewSentryService()
	defer sentryService.Close()

	// 3. Initialize the app
	application := app.NewApp(dbService, hashService, tokenService, sentryService, app.AdminCredentialFromEnv())

	// 4. Configure the server
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 4000 // Fallback default
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      application.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 5. Graceful shutdown
	done := make(chan bool, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down gracefully, press Ctrl+C again to force")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
		if err := dbService.Close(); err != nil {
			logger.Error("Store close failed", "error", err)
		}
		done <- true
	}()

	// 6. Start the server
	logger.Info("Starting server", "port", srv.Addr)
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	logger.Info("Graceful shutdown complete")
	return nil
}
