package snapshot

import (
	"github.com/shopspring/decimal"
)

// Decimal places used when publishing
const (
	scorePlaces       = 1
	winPctPlaces      = 3
	probabilityPlaces = 4
)

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func roundScore(v float64) float64 {
	return round(v, scorePlaces)
}

func roundWinPct(v float64) float64 {
	return round(v, winPctPlaces)
}

func roundProbability(v float64) float64 {
	return round(v, probabilityPlaces)
}
