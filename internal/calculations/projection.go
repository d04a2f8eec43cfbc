package calculations

import (
	"errors"
	"fmt"
)

const (
	// AnnualRentalRate is charged on the provider share not yet bought out
	AnnualRentalRate = 0.04
	// MaxSimulationYears bounds the yearly loop
	MaxSimulationYears = 50
	WeeksPerYear       = 52
	MonthsPerYear      = 12

	// shareTolerance absorbs floating-point residue left after the last scheduled payment
	shareTolerance = 1e-6
)

// ErrDegenerateInput is returned when inputs that validation must reject reach the engine
var ErrDegenerateInput = errors.New("degenerate projection input")

// projectionParams holds the values fixed for the whole simulation
type projectionParams struct {
	propertyPrice      float64
	markup             float64
	annualSharePayment float64
}

// yearState is the accumulator carried from one simulated year to the next
type yearState struct {
	year                 int
	remainingShare       float64
	ownership            float64
	totalRent            float64
	totalShares          float64
	fullOwnershipYear    int
	fullOwnershipReached bool
}

// Project runs the diminishing partnership simulation year by year
func Project(in ProjectionInput) (*ProjectionResult, error) {
	if in.PropertyPrice <= 0 {
		return nil, fmt.Errorf("%w: property price must be positive, got %v", ErrDegenerateInput, in.PropertyPrice)
	}
	if in.Term <= 0 {
		return nil, fmt.Errorf("%w: term must be positive, got %d", ErrDegenerateInput, in.Term)
	}

	initialOwnership := in.DepositAmount / in.PropertyPrice * 100
	financedAmount := in.PropertyPrice - in.DepositAmount
	markup := Markup(in.PropertyType, in.BedroomCount, in.HasBuilderReport)
	providerShare := financedAmount * markup
	standardAnnualShare := providerShare / float64(in.Term)

	params := projectionParams{
		propertyPrice:      in.PropertyPrice,
		markup:             markup,
		annualSharePayment: standardAnnualShare + in.AdditionalSharePayment,
	}

	breakdown := make([]YearRecord, 0, MaxSimulationYears+1)
	breakdown = append(breakdown, YearRecord{
		Year:                        0,
		CustomerOwnershipPercentage: initialOwnership,
		RemainingProviderShare:      providerShare,
	})

	state := yearState{
		remainingShare: providerShare,
		ownership:      initialOwnership,
	}
	if providerShare <= shareTolerance {
		state.remainingShare = 0
		state.fullOwnershipReached = true
		breakdown[0].RemainingProviderShare = 0
	}

	for !state.fullOwnershipReached && state.year < MaxSimulationYears {
		var record YearRecord
		record, state = advanceYear(state, params)
		breakdown = append(breakdown, record)
	}

	fullOwnershipYears := state.fullOwnershipYear
	if !state.fullOwnershipReached {
		fullOwnershipYears = in.Term
	}

	standardMonthlyShare := providerShare / float64(in.Term) / MonthsPerYear
	additionalMonthlyShare := in.AdditionalSharePayment / MonthsPerYear
	initialMonthlyRent := providerShare * AnnualRentalRate * (1 - initialOwnership/100) / MonthsPerYear

	var affordability *Affordability
	if in.Affordability != nil {
		a := AssessAffordability(in.PropertyPrice, in.DepositAmount, *in.Affordability)
		affordability = &a
	}

	return &ProjectionResult{
		MonthlyPayment:             initialMonthlyRent + standardMonthlyShare + additionalMonthlyShare,
		InitialOwnershipPercentage: initialOwnership,
		FullOwnershipYears:         fullOwnershipYears,
		FullOwnershipReached:       state.fullOwnershipReached,
		TotalRentPaid:              state.totalRent,
		TotalSharesPurchased:       state.totalShares,
		YearlyBreakdown:            breakdown,
		PropertyDetails: PropertyDetails{
			PropertyType:     in.PropertyType,
			BedroomCount:     in.BedroomCount,
			HasBuilderReport: in.HasBuilderReport,
			PropertyPrice:    in.PropertyPrice,
			DepositAmount:    in.DepositAmount,
			AppliedMarkup:    markup,
			AppreciationRate: in.AppreciationRate,
		},
		Affordability: affordability,
	}, nil
}

// advanceYear applies one year of rent and share acquisition to prev.
// Rent is charged on the share outstanding at the end of the previous year.
func advanceYear(prev yearState, p projectionParams) (YearRecord, yearState) {
	next := prev
	next.year = prev.year + 1

	weeklyRental := prev.remainingShare * AnnualRentalRate / WeeksPerYear
	weeklyShare := p.annualSharePayment / WeeksPerYear

	next.remainingShare = prev.remainingShare - p.annualSharePayment
	if next.remainingShare <= shareTolerance {
		next.remainingShare = 0
	}

	next.ownership = (p.propertyPrice - next.remainingShare/p.markup) / p.propertyPrice * 100
	if next.ownership > 100 {
		next.ownership = 100
	}

	if next.remainingShare == 0 && !prev.fullOwnershipReached {
		next.fullOwnershipReached = true
		next.fullOwnershipYear = next.year
	}

	next.totalRent = prev.totalRent + weeklyRental*WeeksPerYear
	next.totalShares = prev.totalShares + p.annualSharePayment

	return YearRecord{
		Year:                        next.year,
		CustomerOwnershipPercentage: next.ownership,
		WeeklyPayment:               weeklyRental + weeklyShare,
		RentComponent:               weeklyRental,
		ShareComponent:              weeklyShare,
		RemainingProviderShare:      next.remainingShare,
	}, next
}
