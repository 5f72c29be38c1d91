package commission

import (
	"fmt"
	"math"
)

// DefaultRatePercent は設定が省略された場合の手数料率 (%) です。
const DefaultRatePercent = 8.0

// Compute は年収と手数料率 (%) から手数料額を算出します。
func Compute(salary, ratePercent float64) (float64, error) {
	if !isFinite(salary) || salary < 0 {
		return 0, fmt.Errorf("salary %v: %w", salary, ErrInvalidInput)
	}
	if !isFinite(ratePercent) || ratePercent < 0 {
		return 0, fmt.Errorf("rate %v: %w", ratePercent, ErrInvalidRate)
	}
	return salary * ratePercent / 100, nil
}

// Calculator は設定済みの手数料率で手数料を算出します。
type Calculator struct {
	ratePercent float64
}

// NewCalculator は Calculator を生成します。
func NewCalculator(ratePercent float64) (Calculator, error) {
	if !isFinite(ratePercent) || ratePercent < 0 {
		return Calculator{}, fmt.Errorf("rate %v: %w", ratePercent, ErrInvalidRate)
	}
	return Calculator{ratePercent: ratePercent}, nil
}

// RatePercent は設定されている手数料率を返します。
func (c Calculator) RatePercent() float64 {
	return c.ratePercent
}

// Commission は設定済みの手数料率で手数料を算出します。
func (c Calculator) Commission(salary float64) (float64, error) {
	return Compute(salary, c.ratePercent)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
