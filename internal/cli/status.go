package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status [app]",
	Short: "Show app connection status",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, client, err := setupHeadless()
	if err != nil {
		return err
	}

	apps := models.Apps
	if len(args) == 1 {
		app, err := models.ParseSource(args[0])
		if err != nil {
			return err
		}
		if !app.IsApp() {
			return fmt.Errorf("%s is not an app", app)
		}
		apps = []models.Source{app}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	fmt.Printf("%s %s\n", styleBrand.Render("Huntarr"), styleHint.Render(client.BaseURL()))
	failed := 0
	for _, app := range apps {
		st, err := client.Status(ctx, app)
		if err != nil {
			log.WithField("app", app).WithError(err).Debug("Status request failed")
			fmt.Printf("  %-10s %s\n", app.Label(), styleError.Render("error: "+err.Error()))
			failed++
			continue
		}
		fmt.Printf("  %-10s %s\n", app.Label(), statusStyle(*st).Render(st.Summary()))
	}
	if failed == len(apps) {
		return fmt.Errorf("server did not answer any status request")
	}
	return nil
}

func statusStyle(st models.AppStatus) lipgloss.Style {
	switch {
	case !st.Configured:
		return styleHint
	case st.Connected || (st.ConnectedCount != nil && *st.ConnectedCount > 0):
		return styleSuccess
	default:
		return styleWarning
	}
}
