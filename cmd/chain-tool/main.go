package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/goodnatureofminers/chaintool/internal/ledger/fault"
	"github.com/goodnatureofminers/chaintool/internal/ledger/service"
	"github.com/goodnatureofminers/chaintool/internal/metrics"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Dir             string               `long:"dir" env:"CHAIN_TOOL_DIR" description:"directory holding chain.db, chain.head.db and the lane transaction stores" default:"."`
	PrintMissingTxs bool                 `long:"print-missing-txs" env:"CHAIN_TOOL_PRINT_MISSING_TXS" description:"report block, slice and index of every missing transaction"`
	RepairBlockDB   bool                 `long:"repair-block-db" env:"CHAIN_TOOL_REPAIR_BLOCK_DB" description:"write the canonical chain to chain_repaired.db and chain_repaired.head.db"`
	TrimTxDB        bool                 `long:"trim-tx-db" env:"CHAIN_TOOL_TRIM_TX_DB" description:"write the canonical chain's transactions to trimmed lane stores"`
	Compression     codec.CompressionTag `long:"compression" env:"CHAIN_TOOL_COMPRESSION" description:"value compression for written stores (none, lz4, zstd)" default:"none"`
	ReportFile      string               `long:"report-file" env:"CHAIN_TOOL_REPORT_FILE" description:"write the run report as YAML"`
	MetricsAddr     string               `long:"metrics-addr" env:"CHAIN_TOOL_METRICS_ADDR" description:"address for metrics server while the tool runs"`
	MetricsTextfile string               `long:"metrics-textfile" env:"CHAIN_TOOL_METRICS_TEXTFILE" description:"write final metrics in Prometheus text format"`
	LogJSON         bool                 `long:"log-json" env:"CHAIN_TOOL_LOG_JSON" description:"log JSON in production format"`
}

func main() {
	os.Exit(runMain(os.Args))
}

// runMain returns the process exit code: 0 on success, the negative fault
// code otherwise.
func runMain(args []string) int {
	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return 0
		}
		return int(fault.CodeConfig)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	code := fault.CodeOf(err)
	if err != nil {
		logger.Error("chain tool failed", zap.Error(err), zap.Int("code", int(code)), zap.Stringer("category", code))
	}
	return int(code)
}

func newLogger(jsonOutput bool) (*zap.Logger, error) {
	if jsonOutput {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.MetricsAddr != "" {
		serverCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		startMetricsServer(serverCtx, cfg.MetricsAddr, logger)
	}

	svc := service.NewChainTool(service.Config{
		Dir:             cfg.Dir,
		PrintMissingTxs: cfg.PrintMissingTxs,
		RepairBlockDB:   cfg.RepairBlockDB,
		TrimTxDB:        cfg.TrimTxDB,
		Compression:     cfg.Compression,
	}, metrics.NewChainTool(), logger)

	res, runErr := svc.Run(ctx)

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, res, runErr); err != nil {
			logger.Error("failed to write report", zap.String("path", cfg.ReportFile), zap.Error(err))
		} else {
			logger.Info("report written", zap.String("path", cfg.ReportFile))
		}
	}
	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Error("failed to write metrics textfile", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		}
	}
	return runErr
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
