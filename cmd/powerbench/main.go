package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/server"
	"github.com/voltlab/powerbench/internal/sim"
	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
	"github.com/voltlab/powerbench/internal/version"
	"github.com/voltlab/powerbench/pkg/catalog"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("PowerBench server starting", zap.String("version", version.Short()))

	// Load configuration
	config, err := server.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Component catalog: embedded by default, file-loaded when configured.
	var cat *catalog.Catalog
	if path := config.GetString("catalog.path"); path != "" {
		cat, err = catalog.Load(path)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
		logger.Info("loaded catalog from file", zap.String("path", path))
	} else {
		cat = catalog.NewCatalog()
	}

	simulator := sim.NewMockSimulator(
		sim.WithLatency(config.GetDuration("sim.latency")),
	)

	suggester := suggest.NewEngine(cat)
	sweeper := sweep.NewEngine(cat, simulator, logger)

	addr := config.GetString("server.host") + ":" + config.GetString("server.port")
	srv := server.New(addr, suggester, sweeper, logger)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("PowerBench server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("PowerBench server stopped")
}
