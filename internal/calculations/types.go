package calculations

// PropertyType classifies the property for risk markup purposes
type PropertyType string

const (
	PropertyExisting        PropertyType = "existing"
	PropertyNewConstruction PropertyType = "new-construction"
	PropertyApartment       PropertyType = "apartment"
)

// Valid reports whether the property type is one of the known values
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyExisting, PropertyNewConstruction, PropertyApartment:
		return true
	}
	return false
}

// ProjectionInput is the fully resolved input of the projection engine.
// Optional fields are already defaulted by the validators package.
type ProjectionInput struct {
	PropertyPrice          float64      `json:"propertyPrice"`
	DepositAmount          float64      `json:"depositAmount"`
	Term                   int          `json:"term"`
	AppreciationRate       float64      `json:"appreciationRate"`
	PropertyType           PropertyType `json:"propertyType"`
	BedroomCount           int          `json:"bedroomCount"`
	HasBuilderReport       bool         `json:"hasBuilderReport"`
	AdditionalSharePayment float64      `json:"additionalSharePayment"`

	// Affordability is nil when no household figures were supplied
	Affordability *AffordabilityInput `json:"affordability,omitempty"`
}

// YearRecord represents one simulated year of the partnership
type YearRecord struct {
	Year                        int     `json:"year"`
	CustomerOwnershipPercentage float64 `json:"customerOwnershipPercentage"`
	WeeklyPayment               float64 `json:"weeklyPayment"`
	RentComponent               float64 `json:"rentComponent"`
	ShareComponent              float64 `json:"shareComponent"`
	RemainingProviderShare      float64 `json:"remainingProviderShare"`
}

// AnnualPayment returns the total paid during the year (rent + share)
func (r YearRecord) AnnualPayment() float64 {
	return r.WeeklyPayment * WeeksPerYear
}

// PropertyDetails echoes the property attributes and the markup applied
type PropertyDetails struct {
	PropertyType     PropertyType `json:"propertyType"`
	BedroomCount     int          `json:"bedroomCount"`
	HasBuilderReport bool         `json:"hasBuilderReport"`
	PropertyPrice    float64      `json:"propertyPrice"`
	DepositAmount    float64      `json:"depositAmount"`
	AppliedMarkup    float64      `json:"appliedMarkup"`
	AppreciationRate float64      `json:"appreciationRate"`
}

// ProjectionResult is the output of Project. It is never mutated after construction.
type ProjectionResult struct {
	MonthlyPayment             float64         `json:"monthlyPayment"`
	InitialOwnershipPercentage float64         `json:"initialOwnershipPercentage"`
	FullOwnershipYears         int             `json:"fullOwnershipYears"`
	FullOwnershipReached       bool            `json:"fullOwnershipReached"`
	TotalRentPaid              float64         `json:"totalRentPaid"`
	TotalSharesPurchased       float64         `json:"totalSharesPurchased"`
	YearlyBreakdown            []YearRecord    `json:"yearlyBreakdown"`
	PropertyDetails            PropertyDetails `json:"propertyDetails"`
	Affordability              *Affordability  `json:"affordability,omitempty"`
}

// ConventionalYear represents cumulative figures of a conventional mortgage
// at the end of a given year
type ConventionalYear struct {
	Year         int     `json:"year"`
	TotalPayment float64 `json:"totalPayment"`
	Principal    float64 `json:"principal"`
	Interest     float64 `json:"interest"`
	Remaining    float64 `json:"remaining"`
}

// ConventionalSummary describes the conventional mortgage used for comparison
type ConventionalSummary struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annualRate"`
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
}

// CostComparisonEntry compares cumulative costs of both plans at the end of a year
type CostComparisonEntry struct {
	Year             int     `json:"year"`
	MusharakaCost    float64 `json:"musharakaCost"`
	ConventionalCost float64 `json:"conventionalCost"`
	Savings          float64 `json:"savings"`
}

// ComparisonResult is the side-by-side view of the projection and a conventional mortgage
type ComparisonResult struct {
	ConventionalRate     float64               `json:"conventionalRate"`
	Conventional         ConventionalSummary   `json:"conventionalSummary"`
	ConventionalSchedule []ConventionalYear    `json:"conventionalMortgage"`
	CostComparison       []CostComparisonEntry `json:"costComparison"`
	TotalSavings         float64               `json:"totalSavings"`
}
