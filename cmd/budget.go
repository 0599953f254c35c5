package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Protected essentials, emergency cushion and money left for bills",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	rep, err := evaluateSnapshot()
	if err != nil {
		return err
	}
	calc := rep.Budget
	if flagJSON {
		return printJSON(calc)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", rep.Household)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Monthly", "Amount"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(calc.TotalMonthlyIncome)},
			{"Essential expenses", cli.FormatMoney(calc.TotalMonthlyExpenses)},
			{"Emergency cushion", cli.FormatMoney(calc.EmergencyCushion)},
			{"Protected", cli.FormatMoney(calc.ProtectedAmount)},
			{"Available for bills", cli.FormatMoney(calc.AvailableForDebt)},
			{"Income stability", cli.FormatPercent(calc.IncomeStability)},
		},
	}))
	fmt.Println()

	p := calc.Protected
	children := []string{
		fmt.Sprintf("weekly    %s", cli.FormatMoney(p.Weekly)),
		fmt.Sprintf("biweekly  %s", cli.FormatMoney(p.Biweekly)),
		fmt.Sprintf("monthly   %s", cli.FormatMoney(p.Monthly)),
	}
	for _, src := range p.BySource {
		children = append(children, fmt.Sprintf("%s (%s): keep %s from each check, %s of income",
			src.Name, src.Frequency, cli.FormatMoney(src.ProtectedAmount), cli.FormatPercent(src.ShareOfIncome)))
	}
	fmt.Println(cli.RenderTree("Set aside from each paycheck", children...))
	fmt.Println()

	totals := make([]float64, len(calc.MonthlyBreakdown))
	for i, mb := range calc.MonthlyBreakdown {
		totals[i] = mb.Total
	}
	fmt.Printf("  Essentials by month  Jan %s Dec\n", cli.RenderSparkline(totals))
	if len(calc.CriticalMonths) > 0 {
		fmt.Printf("  %s %s\n", cli.Warn("Tight months:"), cli.FormatMonths(calc.CriticalMonths))
	}
	fmt.Println()

	month := calc.Month(calc.CalculatedAt.Month())
	var top float64
	for _, c := range month.Categories {
		top = max(top, c.Amount)
	}
	fmt.Printf("  %s\n", cli.Header(fmt.Sprintf("%s essentials", month.Month)))
	for _, c := range month.Categories {
		fmt.Println(cli.RenderHorizontalBar(cli.FormatKey(c.Key), c.Amount, top, 30))
	}
	fmt.Println()
	return nil
}
