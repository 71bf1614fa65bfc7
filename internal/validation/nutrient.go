package validation

import (
	"fmt"
	"math"
)

// ValidateAmount checks a nutrient amount or target: finite and not negative.
// A nil amount is treated as absent and always passes.
func ValidateAmount(name string, v *float64) error {
	if v == nil {
		return nil
	}

	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}

	if *v < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}

	return nil
}
