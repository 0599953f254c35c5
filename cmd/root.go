// Package cmd implements the lifeline CLI commands.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/config"
	"github.com/theirongolddev/lifeline/internal/logging"
	"github.com/theirongolddev/lifeline/internal/pipeline"
	"github.com/theirongolddev/lifeline/internal/source"
	"github.com/theirongolddev/lifeline/internal/store"
)

var (
	flagSnapshot  string
	flagNow       string
	flagJSON      bool
	flagQuiet     bool
	flagLogLevel  string
	flagNoHistory bool
)

// Loaded once in PersistentPreRunE.
var (
	appConfig config.Config
	appLog    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lifeline",
	Short: "Household budget protection and bill prioritization",
	Long: "Protect essential living costs first, then decide which bills to pay,\n" +
		"how much, and what to do next when money is short.",
	PersistentPreRunE: initApp,
	RunE:              runStatus,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSnapshot, "snapshot", "s", "", "Household snapshot file or directory (toml, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Evaluate as of this date (YYYY-MM-DD or RFC 3339)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Don't record this evaluation")
}

func initApp(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet {
		appLog = logging.Discard()
	} else {
		appLog = logging.New(level, cfg.Log.Format)
	}

	cli.SetColor(cfg.Appearance.Color && !flagJSON)
	return nil
}

// clock returns the evaluation clock, pinned when --now is set.
func clock() (pipeline.Clock, error) {
	if flagNow == "" {
		return pipeline.RealClock{}, nil
	}
	t, err := source.ParseDate(flagNow, time.Local)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return pipeline.FixedClock{T: t}, nil
}

func newRunner() (*pipeline.Runner, error) {
	c, err := clock()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(appLog, c), nil
}

// snapshotPath picks --snapshot, then the configured default.
func snapshotPath() (string, error) {
	if flagSnapshot != "" {
		return flagSnapshot, nil
	}
	if appConfig.General.Snapshot != "" {
		return appConfig.General.Snapshot, nil
	}
	return "", errors.New("no snapshot given: pass --snapshot or run `lifeline setup`")
}

// evaluateSnapshot is the shared path for single-household commands.
func evaluateSnapshot() (*pipeline.Report, error) {
	path, err := snapshotPath()
	if err != nil {
		return nil, err
	}
	runner, err := newRunner()
	if err != nil {
		return nil, err
	}
	rep, err := runner.EvaluateFile(path)
	if err != nil {
		return nil, err
	}
	recordHistory(rep)
	return rep, nil
}

// recordHistory stores reports when history is on. Failures are logged,
// never fatal.
func recordHistory(reports ...*pipeline.Report) {
	if flagNoHistory || !appConfig.History.Enabled || len(reports) == 0 {
		return
	}

	h, err := store.Open(appConfig.HistoryPath(), appLog)
	if err != nil {
		appLog.WithError(err).Warn("history unavailable")
		return
	}
	defer h.Close()

	for _, rep := range reports {
		e := store.NewEntry(rep.Household, rep.Path, rep.Now, rep.Budget, rep.Plan, rep.Triage, rep.Assessment)
		if _, err := h.Record(e); err != nil {
			appLog.WithError(err).WithField("household", rep.Household).Warn("recording assessment")
		}
	}
	if _, err := h.Prune(appConfig.History.Keep); err != nil {
		appLog.WithError(err).Warn("pruning history")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
