package level

// MaxLevel is the terminal rank tier. Progress display is suppressed once
// reached.
const MaxLevel = 250

// valuePerLevel is the cumulative transaction value each tier spans.
const valuePerLevel = 500.0

// Progress describes where a cumulative transaction value sits on the tier
// ladder.
type Progress struct {
	Level   int     `json:"level"`
	Percent float64 `json:"percent"`
	AtMax   bool    `json:"atMax"`
}

// threshold is the cumulative value at which tier t begins.
func threshold(t int) float64 {
	return float64(t-1) * valuePerLevel
}

// FromValue maps a cumulative transaction value to its tier and the
// percentage toward the next tier, clamped to [0,100].
func FromValue(totalValue float64) Progress {
	if totalValue < 0 {
		totalValue = 0
	}

	lvl := int(totalValue/valuePerLevel) + 1
	if lvl >= MaxLevel {
		return Progress{Level: MaxLevel, Percent: 0, AtMax: true}
	}

	lower := threshold(lvl)
	upper := threshold(lvl + 1)
	percent := (totalValue - lower) / (upper - lower) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Progress{Level: lvl, Percent: percent}
}
