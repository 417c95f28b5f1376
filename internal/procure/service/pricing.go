package service

import "math"

// PaymentTolerance cumulative payments may deviate from the invoice total by
// at most one cent.
const PaymentTolerance = 0.01

// Round2 rounds a monetary amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineTotal prices a line item: discount is applied to the gross amount
// first, CGST/SGST on the discounted base. Every pipeline stage uses this one
// formula.
func LineTotal(unitPrice, quantity, discountPercent, cgstPercent, sgstPercent float64) float64 {
	gross := unitPrice * quantity
	discounted := gross * (1 - discountPercent/100)
	return Round2(discounted * (1 + (cgstPercent+sgstPercent)/100))
}

func validPercent(p float64) bool {
	return p >= 0 && p <= 100
}
