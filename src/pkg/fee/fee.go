package fee

import "math"

// Breakdown is the platform fee split for a payment amount.
type Breakdown struct {
	FeeAmount      float64 `json:"feeAmount"`
	AmountAfterFee float64 `json:"amountAfterFee"`
}

// Calculate splits amount into the platform fee and the remainder, both
// rounded to 2 decimal places.
func Calculate(amount, percentage float64) Breakdown {
	feeAmount := round2(amount * percentage)
	return Breakdown{
		FeeAmount:      feeAmount,
		AmountAfterFee: round2(amount - feeAmount),
	}
}

// RequiredPayment is the inverse of Calculate: the gross payment needed so
// that after the fee is deducted the payer is credited desiredCredit.
// Exact only up to cent-level rounding.
func RequiredPayment(desiredCredit, percentage float64) float64 {
	if percentage >= 1 {
		return 0
	}
	return round2(desiredCredit / (1 - percentage))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
