package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tabroomapi/cmd/tabroom-cli/commands"
	"tabroomapi/lib/serviceutil"
	"tabroomapi/lib/telemetry"

	"go.opentelemetry.io/otel"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := serviceutil.SignalContext()
	defer stop()

	tel, err := telemetry.SetupFromEnv(ctx, "tabroom-cli")
	if err != nil {
		slog.Debug("telemetry is not configured", "err", err)
	} else {
		perf, err := telemetry.InstrumentPerfStats(otel.GetMeterProvider())
		if err != nil {
			slog.Warn("failed to instrument perf stats", "err", err)
		} else {
			defer perf.Unregister()
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}()

	if err := commands.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
