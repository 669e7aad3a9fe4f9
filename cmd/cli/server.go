// Package cli provides command-line interface commands for portsim.
// This file implements the server command.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anstrom/portsim/internal/api"
	"github.com/anstrom/portsim/internal/config"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/metrics"
	"github.com/anstrom/portsim/internal/scanning"
)

// Server command flags.
var (
	serverHost string
	serverPort int
)

// serverCmd represents the server command.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP and WebSocket API",
	Long: `Run the portsim API server in the foreground until interrupted.

The server exposes scan control and results under /api/v1, a live snapshot
stream at /ws/scan, Prometheus metrics at /metrics and the Swagger UI at
/swagger/.`,
	Example: `  portsim server
  portsim server --host 0.0.0.0 --port 9090
  PORTSIM_API_PORT=9090 portsim server`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverHost, "host", "", "Listen address (overrides config)")
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Listen port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

	cfg, err := setupServerConfig()
	if err != nil {
		return err
	}

	apiServer, err := createServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "portsim API listening on http://%s\n", apiServer.GetAddress())
	if err := apiServer.Start(ctx); err != nil {
		logger.Error("API server stopped with error", "error", err)
		return err
	}
	return nil
}

// setupServerConfig loads config and applies the command line overrides.
func setupServerConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if serverHost != "" {
		cfg.API.Host = serverHost
	}
	if serverPort > 0 {
		cfg.API.Port = serverPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// createServer wires the engine, metrics and API server together.
func createServer(cfg *config.Config, logger *logging.Logger) (*api.Server, error) {
	logger.Info("Starting portsim API server",
		"version", version,
		"commit", commit,
		"build_time", buildTime,
		"address", cfg.GetAPIAddress())

	var (
		pm       *metrics.PrometheusMetrics
		recorder scanning.Recorder
	)
	if cfg.Metrics.Enabled {
		pm = metrics.NewPrometheusMetrics()
		recorder = pm
	}

	engine := newEngine(cfg, recorder, logger)
	apiServer, err := api.New(cfg, engine, pm)
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}
	return apiServer, nil
}
