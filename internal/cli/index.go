package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/cloo-solutions/secubot/internal/config"
	"github.com/spf13/cobra"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the persistent knowledge index",
		Long: `Rebuild the pgvector knowledge index from the knowledge base.
Requires SECUBOT_DATABASE_URL; without a database the review command
indexes in memory on every run and this command has nothing to build.`,
		RunE: runIndex,
	}

	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasDatabase() {
		return fmt.Errorf("SECUBOT_DATABASE_URL is required for the index command")
	}

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer pipe.Close()

	if err := pipe.indexer.BuildIndex(ctx); err != nil {
		return err
	}

	log.Println("knowledge index built")
	return nil
}
