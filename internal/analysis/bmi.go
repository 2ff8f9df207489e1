package analysis

import "math"

// ComputeBMI derives body-mass index from height in cm and weight in kg,
// rounded to one decimal place. It returns nil when either value is absent
// or the computation does not yield a finite number.
func ComputeBMI(heightCm, weightKg *float64) *float64 {
	if heightCm == nil || weightKg == nil {
		return nil
	}
	m := *heightCm / 100
	if m == 0 {
		return nil
	}
	bmi := *weightKg / (m * m)
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return nil
	}
	rounded := math.Round(bmi*10) / 10
	return &rounded
}
