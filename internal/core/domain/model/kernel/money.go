package kernel

import "math"

// moneyPrecision is the number of decimal places carried by monetary
// amounts. Amounts are plain float64 values; every derived amount must be
// rounded through RoundMoney before it is stored or compared.
const moneyPrecision = 2

// RoundMoney rounds a monetary amount to the platform's money precision
// (two decimal places, half away from zero).
func RoundMoney(amount float64) float64 {
	shift := math.Pow(10, moneyPrecision)
	return math.Round(amount*shift) / shift
}
