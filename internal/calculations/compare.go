package calculations

import "fmt"

// CompareWithConventional puts the projection side by side with a conventional
// mortgage on the same financed amount and term
func CompareWithConventional(projection *ProjectionResult, term int, annualRate float64) (*ComparisonResult, error) {
	if projection == nil || len(projection.YearlyBreakdown) == 0 {
		return nil, fmt.Errorf("%w: empty projection", ErrDegenerateInput)
	}

	details := projection.PropertyDetails
	principal := details.PropertyPrice - details.DepositAmount

	lastYear := projection.YearlyBreakdown[len(projection.YearlyBreakdown)-1].Year
	horizon := term
	if lastYear > horizon {
		horizon = lastYear
	}

	summary, schedule, err := ConventionalSchedule(principal, annualRate, term, horizon)
	if err != nil {
		return nil, err
	}

	comparison := make([]CostComparisonEntry, 0, len(projection.YearlyBreakdown))
	musharakaCost := 0.0
	musharakaAtFullOwnership := 0.0

	for _, record := range projection.YearlyBreakdown {
		musharakaCost += record.AnnualPayment()

		conventionalCost := 0.0
		if record.Year > 0 {
			conventionalCost = schedule[record.Year-1].TotalPayment
		}

		if record.Year == projection.FullOwnershipYears {
			musharakaAtFullOwnership = musharakaCost
		}

		comparison = append(comparison, CostComparisonEntry{
			Year:             record.Year,
			MusharakaCost:    musharakaCost,
			ConventionalCost: conventionalCost,
			Savings:          conventionalCost - musharakaCost,
		})
	}

	return &ComparisonResult{
		ConventionalRate:     annualRate,
		Conventional:         *summary,
		ConventionalSchedule: schedule,
		CostComparison:       comparison,
		TotalSavings:         summary.TotalPaid - musharakaAtFullOwnership,
	}, nil
}
