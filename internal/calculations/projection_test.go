package calculations

import (
	"math"
	"reflect"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func baseInput() ProjectionInput {
	return ProjectionInput{
		PropertyPrice:    800000,
		DepositAmount:    200000,
		Term:             25,
		AppreciationRate: 3,
		PropertyType:     PropertyExisting,
		BedroomCount:     3,
	}
}

func TestMarkup(t *testing.T) {
	tests := []struct {
		name       string
		propType   PropertyType
		bedrooms   int
		builder    bool
		wantMarkup float64
	}{
		{name: "existing small home", propType: PropertyExisting, bedrooms: 2, wantMarkup: 1.30},
		{name: "existing family home", propType: PropertyExisting, bedrooms: 3, wantMarkup: 1.29},
		{name: "apartment large", propType: PropertyApartment, bedrooms: 5, wantMarkup: 1.33},
		{name: "new construction with report", propType: PropertyNewConstruction, bedrooms: 4, builder: true, wantMarkup: 1.25},
		{name: "apartment with report", propType: PropertyApartment, bedrooms: 1, builder: true, wantMarkup: 1.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markup(tt.propType, tt.bedrooms, tt.builder)
			if !approxEqual(got, tt.wantMarkup, 1e-9) {
				t.Errorf("Markup() = %v, want %v", got, tt.wantMarkup)
			}
		})
	}
}

func TestMarkupBounds(t *testing.T) {
	types := []PropertyType{PropertyExisting, PropertyNewConstruction, PropertyApartment}
	bedrooms := []int{0, 1, 2, 3, 4, 5, 10}

	for _, pt := range types {
		for _, b := range bedrooms {
			for _, report := range []bool{true, false} {
				m := Markup(pt, b, report)
				if m < MinMarkup || m > MaxMarkup {
					t.Errorf("Markup(%s, %d, %v) = %v out of [%v, %v]", pt, b, report, m, MinMarkup, MaxMarkup)
				}
			}
		}
	}
}

func TestProjectReferenceScenario(t *testing.T) {
	result, err := Project(baseInput())
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if !approxEqual(result.InitialOwnershipPercentage, 25.0, 1e-9) {
		t.Errorf("expected initial ownership 25, got %v", result.InitialOwnershipPercentage)
	}
	if !approxEqual(result.PropertyDetails.AppliedMarkup, 1.29, 1e-9) {
		t.Errorf("expected markup 1.29, got %v", result.PropertyDetails.AppliedMarkup)
	}

	year0 := result.YearlyBreakdown[0]
	if !approxEqual(year0.RemainingProviderShare, 774000, 1e-6) {
		t.Errorf("expected provider share 774000, got %v", year0.RemainingProviderShare)
	}
	if year0.WeeklyPayment != 0 || year0.RentComponent != 0 || year0.ShareComponent != 0 {
		t.Errorf("year 0 should carry no payments, got %+v", year0)
	}

	year1 := result.YearlyBreakdown[1]
	if !approxEqual(year1.RentComponent, 774000*0.04/52, 1e-6) {
		t.Errorf("expected weekly rental %v, got %v", 774000*0.04/52, year1.RentComponent)
	}
	if !approxEqual(year1.ShareComponent, 30960.0/52, 1e-6) {
		t.Errorf("expected weekly share %v, got %v", 30960.0/52, year1.ShareComponent)
	}
	if !approxEqual(year1.RemainingProviderShare, 743040, 1e-6) {
		t.Errorf("expected remaining share 743040, got %v", year1.RemainingProviderShare)
	}

	if !approxEqual(result.MonthlyPayment, 1935+2580, 1e-6) {
		t.Errorf("expected monthly payment 4515, got %v", result.MonthlyPayment)
	}

	if result.FullOwnershipYears != 25 {
		t.Errorf("expected full ownership in 25 years, got %d", result.FullOwnershipYears)
	}
	if !result.FullOwnershipReached {
		t.Error("expected full ownership to be reached")
	}
	if len(result.YearlyBreakdown) != 26 {
		t.Errorf("expected 26 yearly records, got %d", len(result.YearlyBreakdown))
	}
	if !approxEqual(result.TotalSharesPurchased, 774000, 1e-6) {
		t.Errorf("expected shares purchased 774000, got %v", result.TotalSharesPurchased)
	}
}

func TestProjectInvariants(t *testing.T) {
	tests := []struct {
		name  string
		input ProjectionInput
	}{
		{name: "reference", input: baseInput()},
		{name: "low deposit long term", input: ProjectionInput{PropertyPrice: 1200000, DepositAmount: 1000, Term: 30, PropertyType: PropertyApartment, BedroomCount: 6}},
		{name: "accelerated", input: ProjectionInput{PropertyPrice: 650000, DepositAmount: 130000, Term: 20, PropertyType: PropertyNewConstruction, BedroomCount: 2, HasBuilderReport: true, AdditionalSharePayment: 15000}},
		{name: "uneven term", input: ProjectionInput{PropertyPrice: 777777, DepositAmount: 123456, Term: 7, PropertyType: PropertyExisting, BedroomCount: 0}},
		{name: "huge acceleration", input: ProjectionInput{PropertyPrice: 500000, DepositAmount: 100000, Term: 30, PropertyType: PropertyExisting, BedroomCount: 3, AdditionalSharePayment: 1000000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Project(tt.input)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}

			records := result.YearlyBreakdown
			totalRent := 0.0
			for i, r := range records {
				if r.RemainingProviderShare < 0 {
					t.Errorf("year %d: negative remaining share %v", r.Year, r.RemainingProviderShare)
				}
				if r.CustomerOwnershipPercentage > 100 {
					t.Errorf("year %d: ownership above 100: %v", r.Year, r.CustomerOwnershipPercentage)
				}
				if r.Year != i {
					t.Errorf("expected year %d at index %d, got %d", i, i, r.Year)
				}
				if r.Year >= result.FullOwnershipYears && result.FullOwnershipReached && r.RemainingProviderShare != 0 {
					t.Errorf("year %d: expected zero remaining share after full ownership", r.Year)
				}

				annual := r.RentComponent*52 + r.ShareComponent*52
				if math.Abs(r.WeeklyPayment*52-annual) > 1e-6*math.Max(1, annual) {
					t.Errorf("year %d: weekly payment %v inconsistent with annual %v", r.Year, r.WeeklyPayment, annual)
				}
				totalRent += r.RentComponent * 52

				if i == 0 {
					continue
				}
				prev := records[i-1]
				if r.CustomerOwnershipPercentage < prev.CustomerOwnershipPercentage {
					t.Errorf("year %d: ownership decreased %v -> %v", r.Year, prev.CustomerOwnershipPercentage, r.CustomerOwnershipPercentage)
				}
				if r.RemainingProviderShare > prev.RemainingProviderShare {
					t.Errorf("year %d: remaining share increased %v -> %v", r.Year, prev.RemainingProviderShare, r.RemainingProviderShare)
				}
			}

			last := records[len(records)-1]
			if last.Year != result.FullOwnershipYears {
				t.Errorf("expected simulation to stop at year %d, last year %d", result.FullOwnershipYears, last.Year)
			}
			if !approxEqual(result.TotalRentPaid, totalRent, 1e-6*math.Max(1, totalRent)) {
				t.Errorf("total rent %v does not match sum %v", result.TotalRentPaid, totalRent)
			}
			if result.FullOwnershipYears > tt.input.Term {
				t.Errorf("full ownership %d beyond term %d", result.FullOwnershipYears, tt.input.Term)
			}
		})
	}
}

func TestProjectFullDeposit(t *testing.T) {
	in := baseInput()
	in.DepositAmount = in.PropertyPrice

	result, err := Project(in)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if result.InitialOwnershipPercentage != 100 {
		t.Errorf("expected initial ownership 100, got %v", result.InitialOwnershipPercentage)
	}
	if result.FullOwnershipYears != 0 {
		t.Errorf("expected full ownership at year 0, got %d", result.FullOwnershipYears)
	}
	if len(result.YearlyBreakdown) != 1 {
		t.Fatalf("expected only the year 0 record, got %d", len(result.YearlyBreakdown))
	}
	r := result.YearlyBreakdown[0]
	if r.RemainingProviderShare != 0 || r.WeeklyPayment != 0 || r.RentComponent != 0 || r.ShareComponent != 0 {
		t.Errorf("expected zeroed year 0 record, got %+v", r)
	}
	if result.TotalRentPaid != 0 || result.TotalSharesPurchased != 0 {
		t.Errorf("expected no payments, got rent %v shares %v", result.TotalRentPaid, result.TotalSharesPurchased)
	}
}

func TestProjectAccelerationNeverSlower(t *testing.T) {
	in := baseInput()
	in.Term = 30

	previous, err := Project(in)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	for _, extra := range []float64{1000, 5000, 20000, 50000, 1000000} {
		in.AdditionalSharePayment = extra
		result, err := Project(in)
		if err != nil {
			t.Fatalf("Project() error = %v", err)
		}
		if result.FullOwnershipYears > previous.FullOwnershipYears {
			t.Errorf("additional %v: payoff %d years, slower than %d", extra, result.FullOwnershipYears, previous.FullOwnershipYears)
		}
		previous = result
	}

	if previous.FullOwnershipYears != 1 {
		t.Errorf("expected payoff in the first year with a large additional payment, got %d", previous.FullOwnershipYears)
	}
}

func TestProjectIdempotent(t *testing.T) {
	in := baseInput()
	in.AdditionalSharePayment = 7500
	in.HasBuilderReport = true

	first, err := Project(in)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	second, err := Project(in)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for identical input")
	}
}

func TestProjectDegenerateInput(t *testing.T) {
	tests := []struct {
		name  string
		input ProjectionInput
	}{
		{name: "zero price", input: ProjectionInput{PropertyPrice: 0, Term: 25}},
		{name: "zero term", input: ProjectionInput{PropertyPrice: 100000, Term: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAdvanceYearWithoutConvergence(t *testing.T) {
	state := yearState{remainingShare: 1000, ownership: 50}
	params := projectionParams{propertyPrice: 2000, markup: 1.3, annualSharePayment: 10}

	for i := 0; i < MaxSimulationYears; i++ {
		_, state = advanceYear(state, params)
	}

	if state.fullOwnershipReached {
		t.Error("expected share to remain outstanding")
	}
	if !approxEqual(state.remainingShare, 500, 1e-9) {
		t.Errorf("expected remaining share 500, got %v", state.remainingShare)
	}
}
