package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vrtu/musharaka/internal/api"
	"github.com/vrtu/musharaka/internal/calculations"
	"github.com/vrtu/musharaka/internal/validators"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print a projection and conventional mortgage comparison",
	Long: `Runs the projection engine locally with the same validation and defaults
as POST /api/calculate.

Examples:
  musharaka project --price 800000 --deposit 200000
  musharaka project --price 650000 --deposit 130000 --term 20 --type apartment --bedrooms 2
  musharaka project --price 800000 --deposit 200000 --additional 10000 --json
  musharaka project --price 800000 --deposit 200000 --income 150000 --expenses 3000 --commitments 6000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := requestFromFlags(cmd)

		in, err := validators.ResolveProjection(cfg, req)
		if err != nil {
			return err
		}

		rate, err := rateFromFlags(cmd, cfg.ConventionalRate)
		if err != nil {
			return err
		}

		result, err := api.Calculate(in, rate)
		if err != nil {
			return fmt.Errorf("calculation failed: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return renderProjection(cmd.OutOrStdout(), result)
	},
}

func init() {
	registerProjectFlags(projectCmd)
}

func registerProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("price", 0, "property price")
	f.Float64("deposit", 0, "deposit amount")
	f.Int("term", validators.DefaultTerm, "term in years")
	f.String("type", string(validators.DefaultPropertyType), "property type (existing, new-construction, apartment)")
	f.Int("bedrooms", validators.DefaultBedroomCount, "bedroom count")
	f.Bool("builder-report", false, "a builder's report is available")
	f.Float64("additional", 0, "additional annual share payment")
	f.Float64("appreciation", validators.DefaultAppreciationRate, "expected annual appreciation, percent")
	f.Float64("rate", 0, "conventional mortgage rate for the comparison as a fraction, e.g. 0.05 (overrides CONVENTIONAL_RATE)")
	f.Float64("income", 0, "annual household income before tax")
	f.Float64("savings", 0, "household savings")
	f.Float64("expenses", 0, "monthly living expenses")
	f.Float64("commitments", 0, "annual repayments on existing debts")
	f.Bool("json", false, "print the full response as JSON")

	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("deposit")
}

// requestFromFlags leaves unset flags nil so validators apply the same defaults as the API
func requestFromFlags(cmd *cobra.Command) validators.ProjectionRequest {
	f := cmd.Flags()
	floatFlag := func(name string) *float64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetFloat64(name)
		return &v
	}
	intFlag := func(name string) *float64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetInt(name)
		fv := float64(v)
		return &fv
	}

	req := validators.ProjectionRequest{
		PropertyPrice:          floatFlag("price"),
		DepositAmount:          floatFlag("deposit"),
		Term:                   intFlag("term"),
		AppreciationRate:       floatFlag("appreciation"),
		BedroomCount:           intFlag("bedrooms"),
		AdditionalSharePayment: floatFlag("additional"),
		Income:                 floatFlag("income"),
		Savings:                floatFlag("savings"),
		Expenses:               floatFlag("expenses"),
		Commitments:            floatFlag("commitments"),
	}
	if f.Changed("type") {
		v, _ := f.GetString("type")
		req.PropertyType = &v
	}
	if f.Changed("builder-report") {
		v, _ := f.GetBool("builder-report")
		req.HasBuilderReport = &v
	}
	return req
}

// rateFromFlags returns the --rate override when given, otherwise fallback
func rateFromFlags(cmd *cobra.Command, fallback float64) (float64, error) {
	if !cmd.Flags().Changed("rate") {
		return fallback, nil
	}
	rate, err := cmd.Flags().GetFloat64("rate")
	if err != nil {
		return 0, err
	}
	if err := validators.CheckConventionalRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func renderProjection(out io.Writer, res *api.CalculateResponse) error {
	d := res.PropertyDetails
	fmt.Fprintf(out, "Property:          %s, %d bedrooms, price %s, deposit %s\n",
		d.PropertyType, d.BedroomCount, money(d.PropertyPrice), money(d.DepositAmount))
	fmt.Fprintf(out, "Applied markup:    %s\n", decimal.NewFromFloat(d.AppliedMarkup).StringFixed(2))
	fmt.Fprintf(out, "Initial ownership: %s%%\n", money(res.InitialOwnershipPercentage))
	fmt.Fprintf(out, "Monthly payment:   %s\n", money(res.MonthlyPayment))
	if res.FullOwnershipReached {
		fmt.Fprintf(out, "Full ownership:    %d years\n", res.FullOwnershipYears)
	} else {
		fmt.Fprintf(out, "Full ownership:    not reached, reporting term of %d years\n", res.FullOwnershipYears)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tOwnership %\tWeekly\tRent\tShare\tRemaining\tMusharaka cost\tConventional cost\t")
	for i, r := range res.YearlyBreakdown {
		var musharaka, conventional string
		if i < len(res.CostComparison) {
			musharaka = money(res.CostComparison[i].MusharakaCost)
			conventional = money(res.CostComparison[i].ConventionalCost)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year,
			money(r.CustomerOwnershipPercentage),
			money(r.WeeklyPayment),
			money(r.RentComponent),
			money(r.ShareComponent),
			money(r.RemainingProviderShare),
			musharaka,
			conventional,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c := res.Conventional
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Conventional mortgage at %s%%: %s monthly, %s total, %s interest\n",
		decimal.NewFromFloat(c.AnnualRate*100).StringFixed(2),
		money(c.MonthlyPayment), money(c.TotalPaid), money(c.TotalInterest))

	label := "Total savings"
	if res.TotalSavings < 0 {
		label = "Total extra cost"
	}
	fmt.Fprintf(out, "%s: %s\n", label, money(math.Abs(res.TotalSavings)))

	if a := res.Affordability; a != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Debt-to-income:     %s (%s affordability)\n", decimal.NewFromFloat(a.DebtToIncomeRatio).StringFixed(2), a.Rating)
		fmt.Fprintf(out, "Loan-to-value:      %s%%\n", money(a.LoanToValueRatio))
		fmt.Fprintf(out, "Monthly surplus:    %s\n", money(a.MonthlySurplus))
		fmt.Fprintf(out, "Financing capacity: %s\n", money(a.FinancingCapacity))
		if a.ExceedsFinancingCapacity {
			fmt.Fprintln(out, "Warning: the property price exceeds the estimated financing capacity")
		}
		if a.DepositBelowRecommended {
			fmt.Fprintf(out, "Warning: the deposit is below %.0f%% of the property price\n", calculations.RecommendedDepositRatio*100)
		}
	}
	return nil
}

