package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/config"
	"github.com/theirongolddev/lifeline/internal/source"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	snapshot := cfg.General.Snapshot
	keep := strconv.Itoa(cfg.History.Keep)
	logLevel := cfg.Log.Level
	schedule := cfg.Watch.Schedule
	history := cfg.History.Enabled
	color := cfg.Appearance.Color

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to lifeline").
				Description("A few settings, then every command works without flags."),
			huh.NewInput().
				Title("Household snapshot").
				Description("A .toml, .json or .yaml file, or a directory of them.").
				Placeholder("~/budget/household.toml").
				Value(&snapshot).
				Validate(validateSnapshotPath),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep a history of assessments?").
				Value(&history),
			huh.NewInput().
				Title("Assessments to keep").
				Value(&keep).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("enter a positive number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Watch schedule").
				Options(
					huh.NewOption("Every minute", "@every 1m"),
					huh.NewOption("Every 15 minutes", "@every 15m"),
					huh.NewOption("Hourly", "@hourly"),
					huh.NewOption("Daily", "@daily"),
				).
				Value(&schedule),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&logLevel),
			huh.NewConfirm().
				Title("Colored output?").
				Value(&color),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.Snapshot = strings.TrimSpace(snapshot)
	cfg.History.Enabled = history
	cfg.History.Keep, _ = strconv.Atoi(strings.TrimSpace(keep))
	cfg.Watch.Schedule = schedule
	cfg.Log.Level = logLevel
	cfg.Appearance.Color = color

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `lifeline setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateSnapshotPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	files, err := source.Resolve(s)
	if err != nil {
		return fmt.Errorf("can't read %s", s)
	}
	if len(files) == 0 {
		return errors.New("no snapshot files found there")
	}
	return nil
}
