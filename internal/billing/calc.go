// Package billing holds the measurement-to-billing computation rules:
// line amounts, section totals, and the GST-inclusive project total.
//
// All computation is full-precision float64; rounding happens only at
// presentation time (see FormatAmount).
package billing

import "math"

// ItemAmount computes a line item amount as size * qty * rate.
// Non-finite or negative factors are treated as 0 so that unparsable
// editor input never propagates into stored totals.
func ItemAmount(size, qty, rate float64) float64 {
	return sanitize(size) * sanitize(qty) * sanitize(rate)
}

// SectionTotal sums the given item amounts. An empty section totals 0.
func SectionTotal(amounts []float64) float64 {
	var total float64
	for _, a := range amounts {
		total += sanitize(a)
	}
	return total
}

// ProjectTotals derives the subtotal over all section totals, the GST
// amount, and the final GST-inclusive total.
func ProjectTotals(sectionTotals []float64, gstPercent float64) (subtotal, gstAmount, finalTotal float64) {
	subtotal = SectionTotal(sectionTotals)
	gstAmount = subtotal * sanitize(gstPercent) / 100
	finalTotal = subtotal + gstAmount
	return
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
