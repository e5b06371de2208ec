package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/stats"
)

var statsResetYes bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or reset hunt statistics",
	RunE:  runStatsShow,
}

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show hunted and upgraded counters per app",
	RunE:  runStatsShow,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset [app]",
	Short: "Reset the counters of one app, or all apps",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatsReset,
}

func init() {
	statsResetCmd.Flags().BoolVarP(&statsResetYes, "yes", "y", false, "do not ask for confirmation")

	statsCmd.AddCommand(statsResetCmd)
	statsCmd.AddCommand(statsShowCmd)
}

func runStatsShow(cmd *cobra.Command, args []string) error {
	_, client, err := setupHeadless()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}
	printStats(s)
	return nil
}

func runStatsReset(cmd *cobra.Command, args []string) error {
	_, client, err := setupHeadless()
	if err != nil {
		return err
	}

	app := models.SourceAll
	if len(args) == 1 {
		if app, err = models.ParseSource(args[0]); err != nil {
			return err
		}
		if app != models.SourceAll && !app.IsApp() {
			return fmt.Errorf("%s is not an app", app)
		}
	}

	if !confirm(fmt.Sprintf("Reset %s statistics?", app.Label()), statsResetYes) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	board := stats.NewBoard()
	current, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}
	board.Update(current)

	reset := board.BeginReset(app)
	if err := client.ResetStats(ctx, app); err != nil {
		board.RollbackReset(reset)
		printStats(board.Stats())
		return fmt.Errorf("failed to reset stats: %w", err)
	}

	after, err := client.Stats(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to refresh stats after reset")
		after = nil
	}
	board.CommitReset(reset, after)

	fmt.Println(styleSuccess.Render(app.Label() + " statistics reset."))
	printStats(board.Stats())
	return nil
}

func printStats(s models.Stats) {
	fmt.Println(styleHeader.Render(fmt.Sprintf("  %-10s %10s %10s", "App", "Hunted", "Upgraded")))
	var total models.AppStats
	for _, app := range models.Apps {
		st := s[app]
		total.Hunted += st.Hunted
		total.Upgraded += st.Upgraded
		fmt.Printf("  %-10s %10d %10d\n", app.Label(), st.Hunted, st.Upgraded)
	}
	fmt.Println(styleLabel.Render(fmt.Sprintf("  %-10s %10d %10d", "Total", total.Hunted, total.Upgraded)))
}
