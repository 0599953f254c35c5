package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/model"
)

var flagBillsAll bool

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bills ranked by priority score",
	RunE:  runBills,
}

func init() {
	billsCmd.Flags().BoolVar(&flagBillsAll, "all", false, "Include paid and inactive bills")
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
	rep, err := evaluateSnapshot()
	if err != nil {
		return err
	}

	bills := make([]model.Bill, 0, len(rep.Bills))
	for _, b := range rep.Bills {
		if flagBillsAll || (b.IsActive && !b.IsPaid()) {
			bills = append(bills, b)
		}
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].PriorityScore > bills[j].PriorityScore
	})

	if flagJSON {
		return printJSON(bills)
	}

	if len(bills) == 0 {
		fmt.Println("\n  No unpaid bills. Nothing is due.")
		return nil
	}

	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, []string{
			b.Name,
			strconv.Itoa(b.PriorityScore),
			string(b.PriorityLevel),
			cli.FormatKey(string(b.Type)),
			cli.FormatMoney(b.CurrentBalance),
			cli.FormatMoney(b.MinimumPayment),
			cli.FormatDue(b.DaysUntilDue(rep.Now)),
			riskFlags(b),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  %s", rep.Household)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Score", "Priority", "Type", "Balance", "Minimum", "Due", "Risk"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func riskFlags(b model.Bill) string {
	var flags []string
	if b.IsEssential {
		flags = append(flags, "essential")
	}
	if b.ShutoffRisk {
		flags = append(flags, "shutoff")
	}
	if b.RepossessionRisk {
		flags = append(flags, "repo")
	}
	if b.LateFeeAccruing {
		flags = append(flags, "late fees")
	}
	if b.InterestRate > 0 {
		flags = append(flags, fmt.Sprintf("%.1f%% APR", b.InterestRate))
	}
	return strings.Join(flags, ", ")
}
