package calculations

import (
	"fmt"
	"math"
)

// DefaultConventionalRate is the annual interest rate of the comparison mortgage
const DefaultConventionalRate = 0.05

// ConventionalMonthlyPayment returns the fixed payment of an amortizing loan
func ConventionalMonthlyPayment(principal, annualRate float64, termYears int) float64 {
	n := float64(termYears * MonthsPerYear)
	r := annualRate / MonthsPerYear
	if r == 0.0 {
		return principal / n
	}
	return principal * r / (1.0 - math.Pow(1.0+r, -n))
}

// ConventionalSchedule amortizes principal month by month and reports cumulative
// figures at the end of each year 1..years. Payments stop after termYears.
func ConventionalSchedule(principal, annualRate float64, termYears, years int) (*ConventionalSummary, []ConventionalYear, error) {
	if termYears <= 0 {
		return nil, nil, fmt.Errorf("%w: term must be positive, got %d", ErrDegenerateInput, termYears)
	}
	if principal < 0 {
		return nil, nil, fmt.Errorf("%w: principal must not be negative, got %v", ErrDegenerateInput, principal)
	}

	r := annualRate / MonthsPerYear
	totalMonths := termYears * MonthsPerYear
	monthlyPayment := ConventionalMonthlyPayment(principal, annualRate, termYears)

	schedule := make([]ConventionalYear, 0, years)
	remaining := principal
	cumI := 0.0
	cumP := 0.0
	cumPaid := 0.0
	month := 0

	for i := 0; i < years; i++ {
		limit := (i + 1) * MonthsPerYear
		if limit > totalMonths {
			limit = totalMonths
		}

		for ; month < limit && remaining > 0; month++ {
			interest := remaining * r
			principalComponent := monthlyPayment - interest

			cumI += interest
			cumP += principalComponent
			cumPaid += monthlyPayment
			remaining -= principalComponent
		}

		schedule = append(schedule, ConventionalYear{
			Year:         i + 1,
			TotalPayment: cumPaid,
			Principal:    cumP,
			Interest:     cumI,
			Remaining:    math.Max(0, remaining),
		})
	}

	totalPaid := monthlyPayment * float64(totalMonths)
	summary := &ConventionalSummary{
		Principal:      principal,
		AnnualRate:     annualRate,
		TermYears:      termYears,
		MonthlyPayment: monthlyPayment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - principal,
	}

	return summary, schedule, nil
}
