package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/models"
)

var (
	historyPage     int
	historyPageSize int
	historySearch   string
	historyClear    bool
	historyYes      bool
)

var historyCmd = &cobra.Command{
	Use:   "history [app]",
	Short: "Show processed media history",
	Long: `Show one page of the media the server has hunted, for one app or all
apps. Page sizes other than 10, 20, 30, 50, 100, 250 and 1000 fall back to 20.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "page number")
	historyCmd.Flags().IntVar(&historyPageSize, "page-size", 0, "entries per page (default ui.history_page_size)")
	historyCmd.Flags().StringVar(&historySearch, "search", "", "only entries whose title contains this text")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the history instead of showing it")
	historyCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, client, err := setupHeadless()
	if err != nil {
		return err
	}

	app := models.SourceAll
	if len(args) == 1 {
		if app, err = models.ParseSource(args[0]); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if historyClear {
		if !confirm(fmt.Sprintf("Clear %s history?", app.Label()), historyYes) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := client.ClearHistory(ctx, app); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println(styleSuccess.Render(app.Label() + " history cleared."))
		return nil
	}

	size := historyPageSize
	if size == 0 {
		size = cfg.UI.HistoryPageSize
	}
	q := models.HistoryQuery{
		App:      app,
		Page:     historyPage,
		PageSize: models.ClampHistoryPageSize(size),
		Search:   historySearch,
	}
	page, err := client.History(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	if len(page.Entries) == 0 {
		fmt.Println(styleHint.Render("No history found."))
		return nil
	}

	fmt.Println(styleHeader.Render(fmt.Sprintf("%-16s %-9s %-14s %-50s %s", "When", "App", "Instance", "Item", "Operation")))
	for _, e := range page.Entries {
		when := e.HowLongAgo
		if when == "" {
			when = e.DateTimeReadable
		}
		fmt.Printf("%-16s %-9s %-14s %-50s %s\n",
			ansi.Truncate(when, 16, "…"),
			models.Source(e.AppType).Label(),
			ansi.Truncate(e.InstanceName, 14, "…"),
			ansi.Truncate(e.ProcessedInfo, 50, "…"),
			e.OperationType)
	}
	fmt.Println(styleHint.Render(fmt.Sprintf("Page %d of %d · %d per page", page.Page, max(page.TotalPages, 1), q.PageSize)))
	return nil
}
