package model

// JVCurve is a single-junction current-voltage characteristic with its
// derived photovoltaic parameters.
// Units:
// - Voltage: V, ascending from 0 to Voc on a fixed grid
// - Current: A/m2, non-decreasing from -Jsc to ~0
// - Jsc: A/m2 (positive magnitude)
// - Voc: V
// - FF: fraction 0..1
// - Vm, Jm: max-power point (V, A/m2)
// - Efficiency: percent of incident power
type JVCurve struct {
	Voltage []float64
	Current []float64

	Jsc        float64
	Voc        float64
	FF         float64
	Vm         float64
	Jm         float64
	Efficiency float64
}

// Len returns the number of J-V samples.
func (c *JVCurve) Len() int { return len(c.Voltage) }
