package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloo-solutions/secubot/internal/config"
	"github.com/cloo-solutions/secubot/internal/domain"
	"github.com/cloo-solutions/secubot/internal/github"
	"github.com/cloo-solutions/secubot/internal/telemetry"
	"github.com/spf13/cobra"
)

// ReviewCmd returns the review command
func ReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a pull request for security risk",
		Long: `Review a pull request: index the security knowledge base, fetch the
diff, ask the model for a verdict grounded in retrieved guidelines, and
post the verdict as a PR comment.

Exits non-zero when the verdict is HIGH or CRITICAL so CI can block the
merge.`,
		RunE: runReview,
	}

	cmd.Flags().String("pr-url", "", "Pull request API URL (defaults to the GitHub Actions event)")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	shutdownTelemetry := initTelemetry()
	defer shutdownTelemetry()

	prFlag, _ := cmd.Flags().GetString("pr-url")
	prURL, err := github.ResolvePRURL(prFlag)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer pipe.Close()

	// An indexing failure degrades the review to whatever context is
	// already indexed; it does not abort the run.
	if err := pipe.indexer.BuildIndex(ctx); err != nil {
		log.Printf("knowledge indexing failed, reviewing with partial context: %v", err)
		telemetry.CaptureError(ctx, err)
	}

	verdict, err := pipe.runner.Run(ctx, prURL)
	if err != nil {
		telemetry.CaptureError(ctx, err)
		// A review that never produced a verdict can optionally pass, so
		// a model outage does not block every merge.
		var domainErr *domain.DomainError
		if cfg.FailOpen && errors.As(err, &domainErr) && domainErr.Code == domain.ErrCodeReviewFailed {
			log.Printf("review did not complete, passing because fail-open is set: %v", err)
			return nil
		}
		return err
	}

	log.Printf("review verdict: %s (%s)", verdict.RiskLevel.Normalize(), verdict.Decide())

	if verdict.Decide() == domain.DecisionBlock {
		return fmt.Errorf("security review blocked merge: risk level %s", verdict.RiskLevel.Normalize())
	}
	return nil
}
