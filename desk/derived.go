package desk

import (
	"strconv"
	"strings"
)

// IvaRate is the fixed ticket tax rate.
const IvaRate = 0.19

// Tax is the raw product value * IvaRate; no rounding is applied.
func Tax(value float64) float64 {
	return value * IvaRate
}

// DerivedField computes Target from Source whenever Source is edited. The
// result is written straight into the form values and is never edited by
// the operator.
type DerivedField struct {
	Source  string
	Target  string
	Compute func(float64) float64
}

var TaxField = DerivedField{Source: "value", Target: "ivaTiquete", Compute: Tax}

// Derive returns the target value for raw source text, or nil when the text
// is not a number.
func (d DerivedField) Derive(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	out := d.Compute(v)
	return &out
}
