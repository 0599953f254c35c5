package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/config"
	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/pipeline"
	"github.com/theirongolddev/lifeline/internal/source"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Crisis dashboard: status, next action and upcoming deadlines",
	Long: "Show the household's overall status, the single most important next\n" +
		"action, the next deadlines and where to get help. When --snapshot is a\n" +
		"directory every household in it is evaluated and listed by severity.",
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	path, err := snapshotPath()
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if info.IsDir() {
		return runStatusBatch(path)
	}

	rep, err := evaluateSnapshot()
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(rep)
	}
	renderDashboard(rep)
	return nil
}

func renderDashboard(rep *pipeline.Report) {
	a := rep.Assessment

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LIFELINE  %s", rep.Household)))
	fmt.Println()

	fmt.Printf("  Status: %s\n", cli.StatusStyle(a.Status).Render(string(a.Status)))
	fmt.Printf("  %s\n", cli.Muted(a.StatusReason))
	if len(a.PrimaryNeeds) > 0 {
		needs := make([]string, len(a.PrimaryNeeds))
		for i, n := range a.PrimaryNeeds {
			needs[i] = cli.FormatKey(strings.ToLower(n))
		}
		fmt.Printf("  Needs:  %s\n", strings.Join(needs, ", "))
	}
	fmt.Println()

	na := a.NextAction
	rows := [][]string{
		{"Do this", na.Action},
		{"Amount", cli.FormatMoney(na.Amount)},
		{"By", cli.FormatDue(na.DeadlineDays)},
	}
	if na.Consequence != "" {
		rows = append(rows, []string{"Otherwise", na.Consequence})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Next Action",
		Headers: []string{"", ""},
		Rows:    rows,
	}))
	fmt.Println()

	if len(a.UpcomingDeadlines) > 0 {
		var rows [][]string
		for _, d := range a.UpcomingDeadlines {
			rows = append(rows, []string{d.BillName, cli.FormatDue(d.DaysUntilDue), cli.FormatMoney(d.Amount), d.Consequence})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Upcoming Deadlines",
			Headers: []string{"Bill", "Due", "Minimum", "If Missed"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	m := a.Milestone
	fmt.Printf("  Progress: %s  %s\n", cli.RenderProgressBar(m.BillsCurrent, m.TotalBills, 24), cli.Muted(m.Description))
	if m.TotalOutstanding > 0 {
		fmt.Printf("  Outstanding: %s, %s\n", cli.Money(m.TotalOutstanding), m.Estimate)
	}

	if len(a.Alerts) > 0 {
		fmt.Println()
		fmt.Println("  " + cli.Header("Alerts"))
		for _, al := range a.Alerts {
			fmt.Printf("    %s %s\n", cli.Warn("!"), al.Message)
		}
	}

	renderResources(rep)
	fmt.Println()
}

func renderResources(rep *pipeline.Report) {
	if rep.Assessment.Status.Severity() < model.StatusCaution.Severity() {
		return
	}
	resources := config.ResourcesFor(rep.Triage.Severity, appConfig.Resources)
	if len(resources) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("  " + cli.Header("Where To Get Help"))
	for _, r := range resources {
		fmt.Printf("    %-28s %s\n", r.Name, cli.Muted(r.Contact))
		fmt.Printf("    %-28s %s\n", "", r.Helps)
	}
}

func runStatusBatch(dir string) error {
	files, err := source.ScanDir(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		fmt.Printf("\n  No snapshot files found in %s\n", dir)
		return nil
	}

	runner, err := newRunner()
	if err != nil {
		return err
	}

	progressFn := func(current, total int) {
		if flagQuiet || flagJSON {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Evaluating [%d/%d]", current, total)
	}

	batch := runner.EvaluateAll(files, progressFn)
	if !flagQuiet && !flagJSON {
		fmt.Fprintf(os.Stderr, "\r  Evaluated %d households    \n", batch.Evaluated)
	}

	reports := batch.Reports()
	recordHistory(reports...)

	if flagJSON {
		return printJSON(reports)
	}

	rows := make([][]string, 0, len(reports))
	for _, rep := range reports {
		a := rep.Assessment
		rows = append(rows, []string{
			rep.Household,
			cli.StatusStyle(a.Status).Render(string(a.Status)),
			cli.FormatMoney(rep.Budget.AvailableForDebt),
			fmt.Sprintf("%d/%d", a.Milestone.BillsCurrent, a.Milestone.TotalBills),
			a.NextAction.Action,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LIFELINE  %d households", len(reports))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Household", "Status", "Available", "Current", "Next Action"},
		Rows:    rows,
	}))

	if batch.Failed > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d snapshots could not be evaluated\n", batch.Failed)
		for _, res := range batch.Results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "    %s: %v\n", res.File.Path, res.Err)
			}
		}
	}
	fmt.Println()
	return nil
}
