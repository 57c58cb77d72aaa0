package prediction

import (
	"math"
	"strconv"
)

// All rounding in this package is half-to-even, so 2.5 → 2 and 3.5 → 4.
// Decimal rounding works on the exact binary value, so 0.855 (stored just
// below the tie) rounds to 0.85.

func roundInt(x float64) int {
	return int(math.RoundToEven(x))
}

func roundTo(x float64, decimals int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', decimals, 64), 64)
	if err != nil {
		return x
	}
	return v
}
