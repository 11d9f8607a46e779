package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"wifi-monitor/internal/config"
	"wifi-monitor/internal/database"
	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/monitor"
	"wifi-monitor/internal/probe"
	"wifi-monitor/internal/report"
	"wifi-monitor/internal/web"
)

//go:embed static/*
var staticFiles embed.FS

const usage = `Usage: wifi-monitor <command> [flags]

Commands:
  monitor     Sample the link continuously and serve the dashboard
  dashboard   Serve the dashboard over an existing database
  report      Write a text report and charts for a time range
  export      Dump snapshots, events and statistics as JSON
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	switch command {
	case "monitor", "dashboard", "report", "export":
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	fs := config.NewFlagSet(command)
	cfg, err := config.Load(fs, os.Args[2:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Invalid arguments: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log configuration: %v\n", err)
		os.Exit(2)
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database schema")
	}

	switch command {
	case "monitor":
		err = runMonitor(cfg, db)
	case "dashboard":
		err = runDashboard(cfg, db)
	case "report":
		err = runReport(cfg, db)
	case "export":
		err = runExport(cfg, db)
	}
	if err != nil {
		logger.Error().Err(err).Str("command", command).Msg("Command failed")
		db.Close()
		os.Exit(1)
	}
}

func runMonitor(cfg config.Config, db *database.DB) error {
	prober := probe.New(probe.Options{
		Interface:    cfg.Interface,
		Timeout:      cfg.ProbeTimeout,
		PingCount:    cfg.PingCount,
		HTTPProbeURL: cfg.HTTPProbeURL,
	})
	mon := monitor.New(cfg, db, prober)
	webServer := web.New(db, cfg.Port, staticFiles)
	mon.OnSnapshot(webServer.Publish)

	if err := mon.Start(); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}
	logger.Info().
		Dur("interval", cfg.Interval).
		Strs("targets", cfg.PingTargets).
		Int("port", cfg.Port).
		Msg("Monitor started")

	err := serveUntilSignal(webServer)
	mon.Stop()
	mon.Wait()
	return err
}

func runDashboard(cfg config.Config, db *database.DB) error {
	logger.Info().Int("port", cfg.Port).Str("db", cfg.DatabasePath).Msg("Serving dashboard")
	return serveUntilSignal(web.New(db, cfg.Port, staticFiles))
}

// serveUntilSignal runs the web server until SIGINT/SIGTERM or a server
// failure, then shuts it down.
func serveUntilSignal(srv *web.Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case <-sigChan:
		logger.Info().Msg("Shutting down...")
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runReport(cfg config.Config, db *database.DB) error {
	r, err := cfg.Range()
	if err != nil {
		return err
	}

	dir, err := report.NewGenerator(db).GenerateReport(context.Background(), cfg.Output, r)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", dir)
	return nil
}

func runExport(cfg config.Config, db *database.DB) error {
	r, err := cfg.Range()
	if err != nil {
		return err
	}

	export, err := db.Export(context.Background(), r)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return err
	}
	logger.Info().
		Int("snapshots", len(export.Snapshots)).
		Int("events", len(export.Events)).
		Str("output", cfg.Output).
		Msg("Export written")
	return nil
}
