package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signalsfoundry/telemetrix/core"
	"github.com/signalsfoundry/telemetrix/internal/api"
	"github.com/signalsfoundry/telemetrix/internal/logging"
	"github.com/signalsfoundry/telemetrix/internal/observability"
	"github.com/signalsfoundry/telemetrix/model"
	"github.com/signalsfoundry/telemetrix/monitor"
	"github.com/signalsfoundry/telemetrix/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/scenario.json", "path to the monitoring scenario JSON")
	listen := flag.String("listen", ":8080", "HTTP listen address")
	once := flag.Bool("once", false, "run both pipelines once, print the snapshot as JSON, and exit")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *scenarioPath, *listen, *once, log); err != nil {
		log.Error(ctx, "telemetrix exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, scenarioPath, listen string, once bool, log logging.Logger) error {
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	f, err := os.Open(scenarioPath)
	if err != nil {
		return fmt.Errorf("open scenario: %w", err)
	}
	scenario, err := monitor.LoadScenario(f)
	f.Close()
	if err != nil {
		return err
	}

	eval, err := core.NewEvaluator(scenario.Thresholds, scenario.Provider)
	if err != nil {
		return err
	}

	mtr, err := observability.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	source := monitor.SourceFunc(func(context.Context) (model.TelemetrySeries, error) {
		return telemetry.Generate(scenario.Generator)
	})

	runner, err := monitor.NewRunner(scenario.Config, source, eval, log, mtr)
	if err != nil {
		return err
	}
	runner.AddListener(func(snap *monitor.Snapshot) {
		if snap.Proximity.Tier == model.RiskCritical {
			log.Warn(ctx, "critical conjunction risk",
				logging.Float64("min_distance_km", snap.Proximity.MinDistanceKm),
			)
		}
	})

	if once {
		snap, err := runner.RunOnce(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	server := api.NewServer(listen, runner, mtr, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", logging.String("addr", listen))
		errCh <- server.ListenAndServe()
	}()
	go func() {
		errCh <- runner.Run(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.HTTPServer().Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "http shutdown failed", logging.Err(err))
	}
	log.Info(ctx, "telemetrix stopped")
	return nil
}
