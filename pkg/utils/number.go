package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ClampScore mantém uma pontuação no intervalo 0..100
func ClampScore(f float64) float64 {
	return math.Max(0, math.Min(100, RoundWithTwoDecimalPlace(f)))
}
