// Package cli implements the huntarr CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/tui"
)

var (
	configPath string
	logLevel   string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "huntarr",
	Short: "Terminal client for a Huntarr server",
	Long: `Huntarr watches the live logs, hunt history, statistics and settings
of a running Huntarr server. Run without a command to open the dashboard.`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.huntarr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address (overrides server.url)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(testConnectionCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.ConfigFile()
}

// loadConfig reads the config and applies command line overrides.
func loadConfig() (*config.Config, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if serverURL != "" {
		normalized, err := config.NormalizeServerURL(serverURL)
		if err != nil {
			return nil, "", err
		}
		cfg.Server.URL = normalized
	}
	return cfg, path, nil
}

// setupHeadless loads the config, logs to stderr and builds an API client.
func setupHeadless(opts ...api.Option) (*config.Config, *api.Client, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	config.SetupLogger(cfg.Log.Level, os.Stderr)

	client, err := api.FromConfig(cfg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return cfg, client, nil
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The dashboard owns the terminal, so logs go to the console log file.
	logFile, err := config.OpenLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	config.SetupLogger(cfg.Log.Level, logFile)

	log.WithField("server", cfg.Server.URL).Info("Starting dashboard")
	return tui.Run(cfg, path)
}
