package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/store"
	"github.com/theirongolddev/lifeline/internal/watch"
)

var (
	flagWatchAddr     string
	flagWatchSchedule string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate the snapshot on a schedule and serve it over HTTP/SSE",
	Long: "Re-evaluate the household snapshot on a cron schedule and serve\n" +
		"/v1/status, /v1/report, /v1/events and the /v1/stream event feed.",
	RunE: runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running watcher",
	RunE:  runWatchStatus,
}

func init() {
	watchCmd.PersistentFlags().StringVar(&flagWatchAddr, "addr", "", "HTTP listen address (default from config)")
	watchCmd.Flags().StringVar(&flagWatchSchedule, "schedule", "", "Cron schedule, e.g. \"@every 5m\" (default from config)")
	watchCmd.AddCommand(watchStatusCmd)
	rootCmd.AddCommand(watchCmd)
}

func watchAddr() string {
	if flagWatchAddr != "" {
		return flagWatchAddr
	}
	return appConfig.Watch.Addr
}

func runWatch(_ *cobra.Command, _ []string) error {
	path, err := snapshotPath()
	if err != nil {
		return err
	}
	if info, err := os.Stat(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	} else if info.IsDir() {
		return errors.New("watch needs a single snapshot file, not a directory")
	}
	runner, err := newRunner()
	if err != nil {
		return err
	}

	schedule := appConfig.Watch.Schedule
	if flagWatchSchedule != "" {
		schedule = flagWatchSchedule
	}

	var recorder watch.Recorder
	if appConfig.History.Enabled && !flagNoHistory {
		h, err := store.Open(appConfig.HistoryPath(), appLog)
		if err != nil {
			appLog.WithError(err).Warn("history unavailable, watching without it")
		} else {
			defer h.Close()
			recorder = h
		}
	}

	svc := watch.New(watch.Config{
		SnapshotPath: path,
		Schedule:     schedule,
		Addr:         watchAddr(),
		EventsBuffer: appConfig.Watch.EventsBuffer,
		HistoryKeep:  appConfig.History.Keep,
	}, runner, recorder, appLog)

	fmt.Printf("  lifeline watching %s\n", path)
	fmt.Printf("  API: http://%s/v1/status (%s)\n", watchAddr(), schedule)
	fmt.Println("  Stop with Ctrl-C")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWatchStatus(_ *cobra.Command, _ []string) error {
	addr := watchAddr()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status check
	if err != nil {
		fmt.Printf("  Watcher: unreachable at %s (%v)\n", addr, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  Watcher: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st watch.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  Watcher: malformed response (%v)\n", err)
		return nil
	}
	if flagJSON {
		return printJSON(st)
	}

	fmt.Printf("  Address:   http://%s\n", addr)
	fmt.Printf("  Snapshot:  %s\n", st.SnapshotPath)
	fmt.Printf("  Schedule:  %s\n", st.Schedule)
	if st.LastPollAt.IsZero() {
		fmt.Println("  Last poll: pending")
	} else {
		fmt.Printf("  Last poll: %s\n", cli.FormatTime(st.LastPollAt, time.Now()))
	}
	fmt.Printf("  Polls:     %s\n", cli.FormatNumber(st.PollCount))
	fmt.Printf("  Status:    %s\n", cli.StatusStyle(st.Summary.Status).Render(string(st.Summary.Status)))
	fmt.Printf("  Available: %s\n", cli.FormatMoney(st.Summary.Available))
	if st.Summary.NextAction != "" {
		fmt.Printf("  Next:      %s\n", st.Summary.NextAction)
	}
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
