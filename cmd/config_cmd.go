package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.Snapshot != "" {
		fmt.Printf("    Snapshot: %s\n", cfg.General.Snapshot)
	} else {
		fmt.Println("    Snapshot: not set")
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Enabled: %v\n", cfg.History.Enabled)
	fmt.Printf("    Path:    %s\n", cfg.HistoryPath())
	fmt.Printf("    Keep:    %d\n", cfg.History.Keep)
	fmt.Println()

	fmt.Println("  [Watch]")
	fmt.Printf("    Address:       %s\n", cfg.Watch.Addr)
	fmt.Printf("    Schedule:      %s\n", cfg.Watch.Schedule)
	fmt.Printf("    Events buffer: %d\n", cfg.Watch.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Color: %v\n", cfg.Appearance.Color)
	fmt.Println()

	fmt.Println("  [Resources]")
	fmt.Printf("    Local entries:   %d\n", len(cfg.Resources.Extra))
	fmt.Printf("    Hide defaults:   %v\n", cfg.Resources.HideDefault)
	fmt.Println()

	fmt.Println("  Run `lifeline setup` to reconfigure.")
	return nil
}
