package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/config"
	"github.com/jharder01/Huntarr.io/internal/metrics"
	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/stats"
	"github.com/jharder01/Huntarr.io/internal/stream"
)

var (
	logsSource      string
	logsHistory     bool
	logsClear       bool
	logsLevel       string
	logsSearch      string
	logsLimit       int
	logsOffset      int
	logsMetricsAddr string
	logsMetricsWait time.Duration
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Follow or page through server logs",
	Long: `Follow the live log stream of the server, filtered by source.

With --history, print a page of stored log lines instead. With --clear,
delete the stored logs of the source.`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVarP(&logsSource, "source", "s", "", "filter: all, system or an app name (default ui.default_source)")
	logsCmd.Flags().BoolVar(&logsHistory, "history", false, "print stored log lines instead of following")
	logsCmd.Flags().BoolVar(&logsClear, "clear", false, "delete stored log lines for the source")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "stored lines: only this level")
	logsCmd.Flags().StringVar(&logsSearch, "search", "", "stored lines: only lines containing this text")
	logsCmd.Flags().IntVar(&logsLimit, "limit", 100, "stored lines: page size")
	logsCmd.Flags().IntVar(&logsOffset, "offset", 0, "stored lines: lines to skip")
	logsCmd.Flags().StringVar(&logsMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while following")
	logsCmd.Flags().DurationVar(&logsMetricsWait, "metrics-shutdown-timeout", 3*time.Second, "how long the metrics server may take to stop")
	logsCmd.MarkFlagsMutuallyExclusive("history", "clear")
}

func runLogs(cmd *cobra.Command, args []string) error {
	var counters *metrics.Counters
	var opts []api.Option
	if logsMetricsAddr != "" && !logsHistory && !logsClear {
		counters = metrics.New()
		opts = append(opts, api.WithObserver(counters.ObserveRequest))
	}

	cfg, client, err := setupHeadless(opts...)
	if err != nil {
		return err
	}

	source := cfg.DefaultSource()
	if logsSource != "" {
		if source, err = models.ParseSource(logsSource); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	switch {
	case logsClear:
		n, err := client.ClearLogs(ctx, source)
		if err != nil {
			return fmt.Errorf("failed to clear logs: %w", err)
		}
		fmt.Println(styleSuccess.Render(fmt.Sprintf("Cleared %d log lines for %s.", n, source.Label())))
		return nil
	case logsHistory:
		return printStoredLogs(ctx, client, source)
	}

	return followLogs(ctx, cfg, client, source, counters)
}

func printStoredLogs(ctx context.Context, client *api.Client, source models.Source) error {
	page, err := client.Logs(ctx, source, api.LogQuery{
		Level:  logsLevel,
		Limit:  logsLimit,
		Offset: logsOffset,
		Search: logsSearch,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(page.Lines) == 0 {
		fmt.Println(styleHint.Render("No log lines."))
		return nil
	}
	for _, line := range page.Lines {
		if line.Timestamp == "" {
			fmt.Println(line.Message)
			continue
		}
		fmt.Printf("%s %s %s %s\n",
			styleLabel.Render(line.Timestamp),
			levelStyle(line.Level).Render(fmt.Sprintf("%-8s", line.Level)),
			styleHint.Render("["+line.App+"]"),
			line.Message)
	}
	fmt.Println(styleHint.Render(fmt.Sprintf("Showing %d-%d of %d", page.Offset+1, page.Offset+len(page.Lines), page.Total)))
	return nil
}

// followLogs drives a stream.Manager from a single goroutine: transport
// goroutines only post events to the channel this loop drains.
func followLogs(ctx context.Context, cfg *config.Config, client *api.Client, source models.Source, counters *metrics.Counters) error {
	events := make(chan stream.Event, 64)
	dispatch := func(ev stream.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	monitor := &stats.MonitorCounters{}
	mgr := stream.NewManager(
		stream.NewSSEDialer(client.APIKey()),
		func(src models.Source) string { return client.StreamURL(cfg.Stream.Path, src) },
		dispatch,
		stream.WithRetryDelay(cfg.Stream.RetryDelay),
		stream.WithMetrics(counters),
		stream.OnEntry(printEntry),
		stream.OnMonitor(monitor.Observe),
		stream.OnState(func(s stream.State) {
			log.WithField("state", s.String()).Debug("Stream state changed")
			if s == stream.Error {
				fmt.Println(styleWarning.Render("Stream interrupted, reconnecting shortly."))
			}
		}),
	)

	var serverErr <-chan error
	if counters != nil {
		handler := echo.New()
		metrics.ConfigureRouter(handler)
		srv := metrics.NewServer(handler,
			metrics.Addr(logsMetricsAddr),
			metrics.ShutdownTimeout(logsMetricsWait),
		)
		defer func() {
			if err := srv.Shutdown(); err != nil {
				log.WithError(err).Warn("Metrics server shutdown failed")
			}
		}()
		serverErr = srv.Notify()
		log.WithField("addr", logsMetricsAddr).Info("Serving metrics")
	}

	fmt.Println(styleHint.Render(fmt.Sprintf("Following %s logs from %s (Ctrl+C to stop)", source.Label(), client.BaseURL())))
	mgr.SetActive(true)
	mgr.Connect(source)

	for {
		select {
		case <-ctx.Done():
			mgr.SetActive(false)
			mgr.DisconnectAll()
			if source == models.MonitorSource {
				fmt.Printf("\n%s processed %d, strikes %d, removals %d, ignored %d\n",
					styleLabel.Render("Swaparr:"), monitor.Processed, monitor.Strikes, monitor.Removals, monitor.Ignored)
			}
			return nil
		case ev := <-events:
			mgr.Handle(ev)
		case err, ok := <-serverErr:
			if ok && err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			serverErr = nil
		}
	}
}

func printEntry(e models.StreamEntry) {
	if !e.Structured() {
		fmt.Printf("%s %s\n", styleHint.Render("["+e.Source.Label()+"]"), e.Raw)
		return
	}
	fmt.Printf("%s %s %s %s\n",
		styleLabel.Render(e.Timestamp),
		levelStyle(e.Level).Render(fmt.Sprintf("%-8s", e.Level)),
		styleHint.Render("["+e.Source.Label()+"]"),
		e.Message)
}
