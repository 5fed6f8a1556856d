package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/secubot/internal/api/handlers"
	"github.com/cloo-solutions/secubot/internal/config"
	"github.com/cloo-solutions/secubot/internal/jobs"
	"github.com/cloo-solutions/secubot/internal/server"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the review API server",
		Long:  "Start the secubot API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	shutdownTelemetry := initTelemetry()
	defer shutdownTelemetry()

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if cfg.HasDatabase() && !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer pipe.Close()

	// The index is built before the listener opens so the first review
	// request already has retrieval context. A failure leaves the index
	// unchanged and the daemon up; the reindex worker retries on its
	// interval. The build runs under the same timeout as any other
	// collaborator call.
	buildCtx, buildCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	if err := pipe.indexer.BuildIndex(buildCtx); err != nil {
		log.Printf("initial knowledge indexing failed, serving with partial context: %v", err)
	}
	buildCancel()

	reindexWorker := jobs.NewReindexWorker(pipe.indexer, cfg.ReindexInterval, cfg.RequestTimeout)
	go reindexWorker.Start(ctx)

	router := server.NewRouter(server.RouterConfig{
		ReviewHandler: handlers.NewReviewHandler(pipe.runner),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	reindexWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
