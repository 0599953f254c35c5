package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "How to split this month's available money across bills",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	rep, err := evaluateSnapshot()
	if err != nil {
		return err
	}
	plan := rep.Plan
	if flagJSON {
		return printJSON(plan)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYMENT PLAN  %s", rep.Household)))
	fmt.Println()

	fmt.Printf("  Budget:  %s   Planned: %s   Left: %s\n",
		cli.Money(plan.AvailableBudget),
		cli.Money(plan.TotalMonthlyPayment),
		cli.Money(plan.AvailableBudget-plan.TotalMonthlyPayment))
	fmt.Printf("  Safety:  %s\n", cli.SafetyStyle(plan.SafetyLevel).Render(string(plan.SafetyLevel)))
	fmt.Println()

	if len(plan.Recommendations) > 0 {
		rows := make([][]string, 0, len(plan.Recommendations))
		for _, r := range plan.Recommendations {
			pay := cli.FormatMoney(r.RecommendedPayment)
			if r.IsPartial {
				pay += " (partial)"
			}
			rows = append(rows, []string{
				r.BillName,
				strconv.Itoa(r.PriorityScore),
				cli.FormatMoney(r.MinimumPayment),
				pay,
				r.Reason,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Pay",
			Headers: []string{"Bill", "Score", "Minimum", "Pay", "Why"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(plan.UnaffordableBills) > 0 {
		rows := make([][]string, 0, len(plan.UnaffordableBills))
		for _, u := range plan.UnaffordableBills {
			rows = append(rows, []string{
				u.BillName,
				strconv.Itoa(u.PriorityScore),
				cli.FormatMoney(u.MinimumPayment),
				u.Suggestion,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Can't Pay This Month",
			Headers: []string{"Bill", "Score", "Minimum", "Instead"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	for _, a := range plan.EmergencyActions {
		fmt.Printf("  %s %s\n", cli.Warn("!"), a)
	}
	for _, s := range plan.Suggestions {
		fmt.Printf("  %s %s\n", cli.Muted("-"), s)
	}
	if !plan.IsViable {
		fmt.Println()
		fmt.Println("  " + cli.Warn("Not viable: an essential bill does not fit this month's budget."))
	}
	fmt.Println()
	return nil
}
