package cli

import (
	"log"
	"os"

	"github.com/cloo-solutions/secubot/internal/telemetry"
)

// initTelemetry initializes Sentry when SENTRY_DSN is set. A telemetry
// failure never stops a review; the returned shutdown flushes pending
// events and is always safe to call.
func initTelemetry() func() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return func() {}
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	// Default to 10% sampling in production, 100% in development
	sampleRate := 0.1
	if environment == "development" {
		sampleRate = 1.0
	}

	shutdown, err := telemetry.Init(telemetry.Config{
		DSN:              dsn,
		Environment:      environment,
		TracesSampleRate: sampleRate,
	})
	if err != nil {
		log.Printf("telemetry init failed (continuing without tracing): %v", err)
		return func() {}
	}
	return shutdown
}
