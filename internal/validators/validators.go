package validators

import (
	"fmt"
	"strings"

	"github.com/vrtu/musharaka/internal/calculations"
	"github.com/vrtu/musharaka/internal/config"
	"github.com/vrtu/musharaka/pkg/utils"
)

const (
	DefaultTerm             = 25
	DefaultAppreciationRate = 3.0
	DefaultPropertyType     = calculations.PropertyExisting
	DefaultBedroomCount     = 3

	MinTerm             = 5
	MaxTerm             = 30
	MaxAppreciationRate = 10.0

	// MaxConventionalRate is an annual rate of 100%
	MaxConventionalRate = 1.0
)

// FieldViolation describes one rejected request field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidInputError is returned when a request fails schema checks
type InvalidInputError struct {
	Violations []FieldViolation
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

type violations []FieldViolation

func (v *violations) add(fv *FieldViolation) {
	if fv != nil {
		*v = append(*v, *fv)
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &InvalidInputError{Violations: v}
}

// ValidateNumber checks that the value is finite and within [minInclusive; maxInclusive]
func ValidateNumber(name string, value, minInclusive, maxInclusive float64) *FieldViolation {
	if !utils.IsFinite(value) {
		return &FieldViolation{Field: name, Message: "value is not a finite number"}
	}
	if value < minInclusive {
		return &FieldViolation{Field: name, Message: fmt.Sprintf("value must be ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &FieldViolation{Field: name, Message: fmt.Sprintf("value is too large (>%g)", maxInclusive)}
	}
	return nil
}

// ValidateIntRange checks that the value is a whole number within [minInclusive; maxInclusive]
func ValidateIntRange(name string, value float64, minInclusive, maxInclusive int) *FieldViolation {
	if !utils.IsWhole(value) {
		return &FieldViolation{Field: name, Message: "value must be an integer"}
	}
	if value < float64(minInclusive) || value > float64(maxInclusive) {
		return &FieldViolation{Field: name, Message: fmt.Sprintf("value must be in range [%d; %d]", minInclusive, maxInclusive)}
	}
	return nil
}

// ProjectionRequest is the raw calculator submission. Nil fields were not sent.
type ProjectionRequest struct {
	PropertyPrice          *float64 `json:"propertyPrice"`
	DepositAmount          *float64 `json:"depositAmount"`
	Term                   *float64 `json:"term,omitempty"`
	AppreciationRate       *float64 `json:"appreciationRate,omitempty"`
	PropertyType           *string  `json:"propertyType,omitempty"`
	BedroomCount           *float64 `json:"bedroomCount,omitempty"`
	HasBuilderReport       *bool    `json:"hasBuilderReport,omitempty"`
	AdditionalSharePayment *float64 `json:"additionalSharePayment,omitempty"`

	// Household figures; income and commitments are annual, expenses monthly
	Income      *float64 `json:"income,omitempty"`
	Savings     *float64 `json:"savings,omitempty"`
	Expenses    *float64 `json:"expenses,omitempty"`
	Commitments *float64 `json:"commitments,omitempty"`
}

// ResolveProjection validates the request and fills in defaults, producing
// the input the projection engine runs on
func ResolveProjection(cfg *config.Config, req ProjectionRequest) (calculations.ProjectionInput, error) {
	var v violations

	in := calculations.ProjectionInput{
		Term:             DefaultTerm,
		AppreciationRate: DefaultAppreciationRate,
		PropertyType:     DefaultPropertyType,
		BedroomCount:     DefaultBedroomCount,
	}

	if req.PropertyPrice == nil {
		v.add(&FieldViolation{Field: "propertyPrice", Message: "required"})
	} else {
		in.PropertyPrice = *req.PropertyPrice
		if *req.PropertyPrice <= 0 {
			v.add(&FieldViolation{Field: "propertyPrice", Message: "value must be > 0"})
		} else {
			v.add(ValidateNumber("propertyPrice", *req.PropertyPrice, 0, cfg.MaxPropertyPrice))
		}
	}

	if req.DepositAmount == nil {
		v.add(&FieldViolation{Field: "depositAmount", Message: "required"})
	} else {
		in.DepositAmount = *req.DepositAmount
		fv := ValidateNumber("depositAmount", *req.DepositAmount, 0, cfg.MaxPropertyPrice)
		if fv == nil && req.PropertyPrice != nil && *req.DepositAmount > *req.PropertyPrice {
			fv = &FieldViolation{Field: "depositAmount", Message: "deposit cannot exceed property price"}
		}
		v.add(fv)
	}

	if req.Term != nil {
		if fv := ValidateIntRange("term", *req.Term, MinTerm, MaxTerm); fv != nil {
			v.add(fv)
		} else {
			in.Term = int(*req.Term)
		}
	}

	if req.AppreciationRate != nil {
		in.AppreciationRate = *req.AppreciationRate
		v.add(ValidateNumber("appreciationRate", *req.AppreciationRate, 0, MaxAppreciationRate))
	}

	if req.PropertyType != nil {
		pt := calculations.PropertyType(*req.PropertyType)
		if !pt.Valid() {
			v.add(&FieldViolation{Field: "propertyType", Message: "must be one of existing, new-construction, apartment"})
		} else {
			in.PropertyType = pt
		}
	}

	if req.BedroomCount != nil {
		if fv := ValidateIntRange("bedroomCount", *req.BedroomCount, 0, cfg.MaxBedrooms); fv != nil {
			v.add(fv)
		} else {
			in.BedroomCount = int(*req.BedroomCount)
		}
	}

	if req.HasBuilderReport != nil {
		in.HasBuilderReport = *req.HasBuilderReport
	}

	if req.AdditionalSharePayment != nil {
		in.AdditionalSharePayment = *req.AdditionalSharePayment
		v.add(ValidateNumber("additionalSharePayment", *req.AdditionalSharePayment, 0, cfg.MaxAdditionalPayment))
	}

	in.Affordability = resolveAffordability(cfg, req, &v)

	if err := v.err(); err != nil {
		return calculations.ProjectionInput{}, err
	}
	return in, nil
}

// resolveAffordability returns nil unless at least one household figure was sent
func resolveAffordability(cfg *config.Config, req ProjectionRequest, v *violations) *calculations.AffordabilityInput {
	fields := []struct {
		name  string
		value *float64
		dst   func(*calculations.AffordabilityInput, float64)
	}{
		{"income", req.Income, func(a *calculations.AffordabilityInput, x float64) { a.Income = x }},
		{"savings", req.Savings, func(a *calculations.AffordabilityInput, x float64) { a.Savings = x }},
		{"expenses", req.Expenses, func(a *calculations.AffordabilityInput, x float64) { a.Expenses = x }},
		{"commitments", req.Commitments, func(a *calculations.AffordabilityInput, x float64) { a.Commitments = x }},
	}

	var out *calculations.AffordabilityInput
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		if out == nil {
			out = &calculations.AffordabilityInput{}
		}
		v.add(ValidateNumber(field.name, *field.value, 0, cfg.MaxPropertyPrice))
		field.dst(out, *field.value)
	}
	return out
}

// CheckConventionalRate validates an annual comparison rate given as a fraction
func CheckConventionalRate(rate float64) error {
	var v violations
	v.add(ValidateNumber("conventionalRate", rate, 0, MaxConventionalRate))
	return v.err()
}
