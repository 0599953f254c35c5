package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/lifeline/internal/budget"
	"github.com/theirongolddev/lifeline/internal/cli"
	"github.com/theirongolddev/lifeline/internal/model"
)

var (
	flagValidateAmount    float64
	flagValidateFrequency string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a proposed debt payment is safe",
	Long: "Grade a recurring payment against the money left after essentials.\n" +
		"Without --amount the snapshot's proposal is used.",
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Float64Var(&flagValidateAmount, "amount", 0, "Payment amount")
	validateCmd.Flags().StringVar(&flagValidateFrequency, "frequency", "monthly", "Payment frequency (weekly, biweekly, monthly, quarterly, annually)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	rep, err := evaluateSnapshot()
	if err != nil {
		return err
	}

	var res model.PaymentValidationResult
	var proposal model.PaymentProposal
	switch {
	case cmd.Flags().Changed("amount"):
		freq, err := model.ParseFrequency(flagValidateFrequency)
		if err != nil {
			return err
		}
		proposal = model.PaymentProposal{Amount: flagValidateAmount, Frequency: freq}
		res, err = budget.NewValidator().Validate(proposal, rep.Budget)
		if err != nil {
			return err
		}
	case rep.Validation != nil:
		res = *rep.Validation
	default:
		return errors.New("no payment to check: pass --amount or add a [proposal] to the snapshot")
	}

	if flagJSON {
		return printJSON(res)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PAYMENT CHECK"))
	fmt.Println()

	affordable := "no"
	if res.IsAffordable {
		affordable = "yes"
	}
	buffer := "no"
	if res.HasEmergencyBuffer {
		buffer = "yes"
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Monthly payment", cli.FormatMoney(res.MonthlyPayment)},
			{"Available for bills", cli.FormatMoney(rep.Budget.AvailableForDebt)},
			{"Left afterwards", cli.FormatMoney(res.RemainingAfterPayment)},
			{"Largest safe payment", cli.FormatMoney(res.MaxSafePayment)},
			{"Affordable", affordable},
			{"Keeps a buffer", buffer},
		},
	}))
	fmt.Println()
	fmt.Printf("  Safety: %s\n", cli.SafetyStyle(res.SafetyLevel).Render(string(res.SafetyLevel)))

	for _, w := range res.Warnings {
		fmt.Printf("  %s %s\n", cli.Warn("!"), w)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("  %s %s\n", cli.Muted("-"), s)
	}
	fmt.Println()
	return nil
}
