package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/store"
)

var (
	flagHistoryHousehold string
	flagHistorySort      string
	flagHistoryLimit     int
	flagHistoryAsc       bool
	flagHistoryDays      int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Past assessments and how the household's position changed",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryHousehold, "household", "", "Only this household")
	historyCmd.Flags().StringVar(&flagHistorySort, "sort", "computed", "Sort by computed, household, status, available or outstanding")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum entries (0 for all)")
	historyCmd.Flags().BoolVar(&flagHistoryAsc, "asc", false, "Ascending order")
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 0, "Only the last N days (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	sortBy, err := store.ParseSortField(flagHistorySort)
	if err != nil {
		return err
	}

	h, err := store.Open(appConfig.HistoryPath(), appLog)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer h.Close()

	opts := store.ListOptions{
		Household: flagHistoryHousehold,
		Limit:     flagHistoryLimit,
		SortBy:    sortBy,
		Ascending: flagHistoryAsc,
	}
	if flagHistoryDays > 0 {
		opts.Since = time.Now().AddDate(0, 0, -flagHistoryDays)
	}

	entries, err := h.List(opts)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("\n  No assessments recorded yet.")
		fmt.Println("  Run `lifeline status` to record one.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		// Deltas only make sense against the next-older entry of the same household.
		delta := ""
		if sortBy == store.SortComputed && !flagHistoryAsc {
			for _, older := range entries[i+1:] {
				if older.Household == e.Household {
					delta = cli.FormatDelta(e.Available, older.Available)
					break
				}
			}
		}
		rows = append(rows, []string{
			cli.FormatTime(e.ComputedAt, now),
			e.Household,
			cli.StatusStyle(e.Status).Render(string(e.Status)),
			cli.FormatMoney(e.Available),
			delta,
			cli.FormatMoney(e.Outstanding),
			fmt.Sprintf("%d/%d", e.BillsCurrent, e.TotalBills),
		})
	}

	avail := make([]float64, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		avail = append(avail, entries[i].Available)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ASSESSMENT HISTORY"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"When", "Household", "Status", "Available", "Change", "Outstanding", "Current"},
		Rows:    rows,
	}))
	if flagHistoryHousehold != "" && sortBy == store.SortComputed && len(avail) > 1 {
		if flagHistoryAsc {
			for i, j := 0, len(avail)-1; i < j; i, j = i+1, j-1 {
				avail[i], avail[j] = avail[j], avail[i]
			}
		}
		fmt.Printf("\n  Available over time  %s\n", cli.RenderSparkline(avail))
	}

	total, err := h.Count()
	if err == nil && total > len(entries) {
		fmt.Println(cli.Muted(fmt.Sprintf("\n  Showing %d of %s stored assessments", len(entries), cli.FormatNumber(int64(total)))))
	}
	fmt.Println()
	return nil
}
