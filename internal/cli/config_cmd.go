package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the client configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Set the Huntarr server address",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetURL,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the Huntarr API key (read from the terminal)",
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetURLCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	source := "defaults and environment"
	if config.FileExists(path) {
		source = path
	}
	fmt.Printf("%s %s\n", styleBrand.Render("Configuration"), styleHint.Render("("+source+")"))

	key := "(not set)"
	if cfg.Server.APIKey != "" {
		key = "********"
	}
	printField("server.url", cfg.Server.URL)
	printField("server.api_key", key)
	printField("server.timeout", cfg.Server.Timeout.String())
	printField("stream.path", cfg.Stream.Path)
	printField("stream.retry_delay", cfg.Stream.RetryDelay.String())
	printField("stream.buffer", strconv.Itoa(cfg.Stream.Buffer))
	printField("log.level", cfg.Log.Level)
	printField("log.file", orDefault(cfg.Log.File, "~/.huntarr/"+config.LogFileName))
	printField("ui.default_source", cfg.UI.DefaultSource)
	printField("ui.history_page_size", strconv.Itoa(cfg.UI.HistoryPageSize))
	return nil
}

func runConfigSetURL(cmd *cobra.Command, args []string) error {
	url, err := config.NormalizeServerURL(args[0])
	if err != nil {
		return err
	}
	return updateConfig(func(cfg *config.Config) {
		cfg.Server.URL = url
	}, "server.url = "+url)
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	key, err := promptSecret("API key")
	if err != nil {
		return err
	}
	return updateConfig(func(cfg *config.Config) {
		cfg.Server.APIKey = key
	}, "server.api_key updated")
}

// updateConfig applies fn to the stored configuration and writes it back.
// A running dashboard picks the change up through its file watcher.
func updateConfig(fn func(*config.Config), done string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	fn(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveYAML(path, cfg); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("✓ " + done))
	fmt.Println(styleHint.Render("  saved to " + path))
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
