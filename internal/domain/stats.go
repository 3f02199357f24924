package domain

import (
	"math"
	"strconv"
)

// Stat is a derived figure that may be unavailable when its denominator is
// zero (for example strike rate before a ball has been faced). Unavailable
// stats render as "N/A" rather than dividing by zero.
type Stat struct {
	Value float64
	OK    bool
}

// StatOf returns num/den rounded to 2 decimals, or a not-available Stat when
// the denominator is zero.
func StatOf(num, den float64) Stat {
	if den == 0 {
		return Stat{}
	}
	return Stat{Value: round2(num / den), OK: true}
}

// String renders the 2-decimal display form, or "N/A" when unavailable.
func (s Stat) String() string {
	if !s.OK {
		return "N/A"
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// figure formats num/den to 2 decimals for persisted records, where the stored
// shape uses "0.00" as the divide-by-zero guard instead of a sentinel.
func figure(num, den float64) string {
	if den == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(round2(num/den), 'f', 2, 64)
}
