package main

import (
	"flag"
	"fmt"

	"sq-limit/internal/model"
	"sq-limit/internal/spectrum"
	"sq-limit/internal/stack"
	"sq-limit/internal/sweep"
)

// Demo:
// - Build a synthetic flat spectrum (1 W/m2/nm over 300-1000 nm)
// - Sweep it for the single-junction efficiency limit
// - Series-combine a two-junction stack on the same spectrum
func main() {
	temperature := flag.Float64("temperature", model.DefaultTemperature, "Cell temperature in K")
	concentration := flag.Float64("concentration", model.DefaultConcentration, "Solar concentration in suns")
	flag.Parse()

	const n = 701
	wavelength := make([]float64, n)
	irradiance := make([]float64, n)
	for i := 0; i < n; i++ {
		wavelength[i] = 300.0 + float64(i)
		irradiance[i] = 1.0
	}
	curve, err := spectrum.New(wavelength, irradiance)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Synthetic spectrum: %d samples, %.1f W/m2, bandgap domain [%.3f, %.3f] eV\n",
		curve.Len(), curve.Power, curve.BandgapMin, curve.BandgapMax)

	engine := sweep.New(curve)
	params := model.DefaultRunParams()
	// The synthetic spectrum's bandgap domain starts above the 1.1 eV default.
	params.TargetBandgap = 1.5
	params.Temperature = *temperature
	params.Concentration = *concentration

	run, err := engine.Run(params)
	if err != nil {
		panic(err)
	}
	best := run.Sweep.Best
	fmt.Printf("Max Efficiency: %05.2f %% for bandgap = %.3f eV (Voc=%.3f V, Jsc=%.1f A/m2, FF=%.3f)\n",
		best.JV.Efficiency, best.Bandgap, best.JV.Voc, best.JV.Jsc, best.JV.FF)
	fmt.Printf("Target Efficiency: %05.2f %% for bandgap = %.3f eV\n",
		run.Target.Efficiency, params.TargetBandgap)

	gaps := []float64{2.1, 1.4}
	res, err := stack.CombineSeries(curve, gaps, params.Temperature, params.Concentration)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Two-junction stack (%.1f / %.1f eV) efficiency = %.3f %%\n", gaps[0], gaps[1], res.Efficiency)
}
