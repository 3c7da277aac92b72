package util

import "strconv"

// ToCenti converts a decimal quantity (hours, money) to integer hundredths,
// rounding half up. 2.505 -> 251.
func ToCenti(f float64) int64 {
	if f < 0 {
		return -int64(-f*100 + 0.5)
	}
	return int64(f*100 + 0.5)
}

// FormatCenti renders integer hundredths as a two-decimal string.
func FormatCenti(centi int64) string {
	return strconv.FormatFloat(float64(centi)/100.0, 'f', 2, 64)
}

// CostCent computes the cost snapshot in cents from a rate (cents per hour)
// and worked centi-hours, rounding half up.
func CostCent(rateCent, hoursCenti int64) int64 {
	return (rateCent*hoursCenti + 50) / 100
}
