// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crossrelay/crossrelay/pkg/log"
	"github.com/crossrelay/crossrelay/pkg/metrics"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
	pconfig "github.com/crossrelay/crossrelay/private/config"
	"github.com/crossrelay/crossrelay/relay/admission"
	"github.com/crossrelay/crossrelay/relay/config"
)

func newRun() *cobra.Command {
	var flags struct {
		config string
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(flags.config)
		},
	}
	cmd.Flags().StringVar(&flags.config, "config", "", "relay config file (required)")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}

func run(path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := log.Setup(cfg.Logging); err != nil {
		return serrors.Wrap("setting up logging", err)
	}
	defer log.Flush()
	defer log.HandlePanic()

	logger := log.Root().New("id", cfg.General.ID)
	for _, chain := range cfg.UnfilteredChains() {
		logger.Info("Chain has no filter section, relaying all its traffic",
			"chain", chain)
	}

	filters, err := cfg.ChainFilters()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	counter := func(name, help string) metrics.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		registry.MustRegister(c)
		return metrics.NewPromCounter(c)
	}
	gauge := func(name, help string) metrics.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		registry.MustRegister(g)
		return metrics.NewPromGauge(g)
	}
	metrics.GaugeSet(gauge("relay_configured_chains",
		"Number of chains the relay is configured with."),
		float64(len(cfg.Chains)))
	admitter := admission.NewAdmitter(filters, admission.Metrics{
		AcceptedPackets: counter("relay_packets_accepted_total",
			"Number of admission checks that permitted relaying."),
		RejectedPackets: counter("relay_packets_rejected_total",
			"Number of admission checks that rejected relaying."),
	}, logger)

	reloader, err := admission.NewReloader(path,
		func(ctx context.Context) error { return reloadFilters(ctx, path, admitter) },
		admission.ReloaderMetrics{
			Reloads: counter("relay_filter_reloads_total",
				"Number of successful filter reloads."),
			ReloadErrors: counter("relay_filter_reload_errors_total",
				"Number of filter reloads that failed."),
		}, logger)
	if err != nil {
		return serrors.Wrap("setting up config reloader", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return reloader.Run(errCtx)
	})
	if cfg.Metrics.Prometheus != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.Metrics.Prometheus, Handler: mux}
		g.Go(func() error {
			defer log.HandlePanic()
			logger.Info("Exposing metrics", "addr", cfg.Metrics.Prometheus)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving metrics", err)
			}
			return nil
		})
		g.Go(func() error {
			defer log.HandlePanic()
			<-errCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}
	logger.Info("Relay started", "chains", len(cfg.Chains))
	return g.Wait()
}

// loadConfig reads, defaults and validates the config file.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if err := pconfig.LoadFile(path, &cfg); err != nil {
		return config.Config{}, serrors.Wrap("loading config", err, "file", path)
	}
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, serrors.Wrap("validating config", err, "file", path)
	}
	return cfg, nil
}

// reloadFilters re-reads the config file and swaps the filters of all
// configured chains. The chain set itself is fixed for the lifetime of the
// process; adding or removing a chain requires a restart.
func reloadFilters(ctx context.Context, path string, admitter *admission.Admitter) error {
	log.FromCtx(ctx).Debug("Reloading filters", "file", path)
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	filters, err := cfg.ChainFilters()
	if err != nil {
		return err
	}
	return admitter.UpdateAll(filters)
}
