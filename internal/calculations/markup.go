package calculations

import "math"

const (
	BaseMarkup = 1.30
	MinMarkup  = 1.20
	MaxMarkup  = 1.40
)

// Markup returns the provider profit multiplier for the property.
// Adjustments are cumulative and the sum is clamped to [MinMarkup, MaxMarkup].
func Markup(propertyType PropertyType, bedroomCount int, hasBuilderReport bool) float64 {
	markup := BaseMarkup

	switch propertyType {
	case PropertyApartment:
		markup += 0.02
	case PropertyNewConstruction:
		markup -= 0.02
	}

	if bedroomCount >= 3 && bedroomCount <= 4 {
		markup -= 0.01
	} else if bedroomCount > 4 {
		markup += 0.01
	}

	if hasBuilderReport {
		markup -= 0.02
	}

	return math.Max(MinMarkup, math.Min(MaxMarkup, markup))
}
