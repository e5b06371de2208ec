package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/models"
)

var (
	testURL    string
	testAPIKey string
)

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection <app>",
	Short: "Ask the server to reach an app instance",
	Long: `Ask the server to connect to an app instance with the given URL and
API key. The key is prompted for without echo when --api-key is not set.`,
	Args: cobra.ExactArgs(1),
	RunE: runTestConnection,
}

func init() {
	testConnectionCmd.Flags().StringVar(&testURL, "url", "", "instance URL (http:// is added when missing)")
	testConnectionCmd.Flags().StringVar(&testAPIKey, "api-key", "", "instance API key")
	_ = testConnectionCmd.MarkFlagRequired("url")
}

func runTestConnection(cmd *cobra.Command, args []string) error {
	app, err := models.ParseSource(args[0])
	if err != nil {
		return err
	}
	if !app.IsApp() {
		return fmt.Errorf("%s is not an app", app)
	}

	key := testAPIKey
	if key == "" {
		if key, err = promptSecret("API key"); err != nil {
			return err
		}
	}

	// Validate before anything is sent.
	if _, err := api.ValidateConnection(testURL, key); err != nil {
		return err
	}

	_, client, err := setupHeadless()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	result, err := client.TestConnection(ctx, app, models.ConnectionTest{URL: testURL, APIKey: key})
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("the Huntarr server rejected the client's API key")
		}
		return fmt.Errorf("connection test failed: %w", err)
	}

	if !result.Success {
		fmt.Println(styleError.Render("✗ " + result.Message))
		return fmt.Errorf("%s is not reachable", app.Label())
	}
	msg := "✓ " + result.Message
	if result.Version != "" {
		msg += " (version " + result.Version + ")"
	}
	fmt.Println(styleSuccess.Render(msg))
	return nil
}
