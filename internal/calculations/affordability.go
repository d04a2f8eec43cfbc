package calculations

const (
	// FinancingCapacityMonths converts a monthly surplus into a rough borrowing capacity
	FinancingCapacityMonths = 300

	HighAffordabilityDTI = 0.3
	LowAffordabilityDTI  = 0.5

	// RecommendedDepositRatio is the smallest deposit, as a share of the price, that avoids a warning
	RecommendedDepositRatio = 0.25
)

// AffordabilityRating grades the debt-to-income ratio
type AffordabilityRating string

const (
	AffordabilityHigh   AffordabilityRating = "high"
	AffordabilityMedium AffordabilityRating = "medium"
	AffordabilityLow    AffordabilityRating = "low"
)

// AffordabilityInput is the household's financial situation.
// Income and commitments are annual, expenses are monthly.
type AffordabilityInput struct {
	Income      float64 `json:"income"`
	Savings     float64 `json:"savings"`
	Expenses    float64 `json:"expenses"`
	Commitments float64 `json:"commitments"`
}

// Affordability summarizes whether the household can carry the financing
type Affordability struct {
	MonthlyIncome            float64             `json:"monthlyIncome"`
	MonthlySurplus           float64             `json:"monthlySurplus"`
	FinancingCapacity        float64             `json:"financingCapacity"`
	DebtToIncomeRatio        float64             `json:"debtToIncomeRatio"`
	Rating                   AffordabilityRating `json:"rating"`
	LoanToValueRatio         float64             `json:"loanToValueRatio"`
	Savings                  float64             `json:"savings"`
	ExceedsFinancingCapacity bool                `json:"exceedsFinancingCapacity"`
	DepositBelowRecommended  bool                `json:"depositBelowRecommended"`
}

// AssessAffordability derives the affordability indicators for a purchase.
// A zero income divides by one so the ratio stays finite.
func AssessAffordability(propertyPrice, depositAmount float64, in AffordabilityInput) Affordability {
	monthlyIncome := in.Income / MonthsPerYear
	surplus := monthlyIncome - in.Expenses - in.Commitments/MonthsPerYear
	capacity := surplus * FinancingCapacityMonths

	income := in.Income
	if income == 0 {
		income = 1
	}
	dti := (in.Expenses*MonthsPerYear + in.Commitments) / income

	rating := AffordabilityMedium
	switch {
	case dti < HighAffordabilityDTI:
		rating = AffordabilityHigh
	case dti > LowAffordabilityDTI:
		rating = AffordabilityLow
	}

	var lvr float64
	if propertyPrice > 0 {
		lvr = (propertyPrice - depositAmount) / propertyPrice * 100
	}

	return Affordability{
		MonthlyIncome:            monthlyIncome,
		MonthlySurplus:           surplus,
		FinancingCapacity:        capacity,
		DebtToIncomeRatio:        dti,
		Rating:                   rating,
		LoanToValueRatio:         lvr,
		Savings:                  in.Savings,
		ExceedsFinancingCapacity: capacity > 0 && propertyPrice > capacity,
		DepositBelowRecommended:  depositAmount < propertyPrice*RecommendedDepositRatio,
	}
}
