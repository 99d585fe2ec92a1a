package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sq-limit/internal/config"
	"sq-limit/internal/model"
	"sq-limit/internal/output"
	"sq-limit/internal/spectrum"
	"sq-limit/internal/stack"
	"sq-limit/internal/sweep"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "limit":
		cmdLimit(os.Args[2:])
	case "stack":
		cmdStack(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli limit --spectrum SolarSpectrum_AM15G.txt --bandgap 1.1 --out results/sq")
	fmt.Println("  cli limit --config examples/run.yaml")
	fmt.Println("  cli stack --spectrum SolarSpectrum_AM15G.txt --bandgaps 1.9,1.4,0.9")
	fmt.Println("  cli stack --spectrum SolarSpectrum_AM15G.txt --optimize")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - limit sweeps the bandgap domain, reports the Shockley-Queisser optimum")
	fmt.Println("    and the target-bandgap cell, and writes three delimited text files")
	fmt.Println("  - stack series-combines the listed junctions (top to bottom)")
	fmt.Println("  - out-of-range parameters fall back to documented defaults")
}

func cmdLimit(args []string) {
	fs := flag.NewFlagSet("limit", flag.ExitOnError)
	spectrumPath := fs.String("spectrum", "", "Path to two-column spectrum table")
	delimiter := fs.String("delimiter", "", "Column delimiter (default TAB)")
	cfgPath := fs.String("config", "", "Path to YAML config (flags override it)")
	bandgap := fs.Float64("bandgap", 0, "Target bandgap in eV [0.2, 6.0]")
	topBandgap := fs.Float64("top", 0, "Target top bandgap in eV (0 = no stacking)")
	temperature := fs.Float64("temperature", 0, "Cell temperature in K [100, 700]")
	concentration := fs.Float64("concentration", 0, "Solar concentration in suns [1, 1000]")
	resolution := fs.Int("resolution", 0, "Number of sweep samples (default 500)")
	outBase := fs.String("out", "", "Output base path (empty = no files)")
	_ = fs.Parse(args)

	cfg := config.Config{}
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	}
	cfg = config.Merge(cfg, config.Config{
		Spectrum: config.SpectrumConfig{File: *spectrumPath, Delimiter: *delimiter},
		Run: config.RunConfig{
			TargetBandgapEV:    *bandgap,
			TargetTopBandgapEV: *topBandgap,
			TemperatureK:       *temperature,
			ConcentrationSuns:  *concentration,
			Resolution:         *resolution,
		},
		Output: config.OutputConfig{Base: *outBase},
	})
	if cfg.Spectrum.File == "" {
		fmt.Println("--spectrum (or a config with spectrum.file) is required")
		os.Exit(2)
	}

	delim := cfg.Spectrum.ResolveDelimiter()
	curve, err := spectrum.Load(cfg.Spectrum.File, delim)
	if err != nil {
		// No usable computation is possible without a valid spectrum.
		panic(err)
	}

	engine := sweep.New(curve)
	run, err := engine.Run(cfg.Run.ToRunParams())
	if err != nil {
		panic(err)
	}
	for _, w := range run.Clamped {
		fmt.Printf("warning: %v\n", w)
	}

	best := run.Sweep.Best
	fmt.Printf("Spectrum: %d samples, %.1f W/m2, bandgap domain [%.3f, %.3f] eV\n",
		curve.Len(), curve.Power, curve.BandgapMin, curve.BandgapMax)
	fmt.Printf("Max Efficiency: %05.2f %% for bandgap = %.3f eV (Voc=%.3f V, Jsc=%.1f A/m2, FF=%.3f)\n",
		best.JV.Efficiency, best.Bandgap, best.JV.Voc, best.JV.Jsc, best.JV.FF)
	fmt.Printf("Target Efficiency: %05.2f %% for bandgap = %.3f eV (Voc=%.3f V, Jsc=%.1f A/m2, FF=%.3f)\n",
		run.Target.Efficiency, run.Params.TargetBandgap, run.Target.Voc, run.Target.Jsc, run.Target.FF)
	if run.Sweep.Failed > 0 {
		fmt.Printf("warning: %d sweep samples failed to solve and were skipped\n", run.Sweep.Failed)
	}

	if cfg.Output.Base != "" {
		if dir := filepath.Dir(cfg.Output.Base); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				panic(err)
			}
		}
		if err := output.WriteResults(cfg.Output.Base, delim, run); err != nil {
			// Output failure does not invalidate the computed results.
			fmt.Printf("warning: cannot save output data: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s_{Efficiency,JV_Max,JV_Target}.txt\n", cfg.Output.Base)
	}
}

func cmdStack(args []string) {
	fs := flag.NewFlagSet("stack", flag.ExitOnError)
	spectrumPath := fs.String("spectrum", "", "Path to two-column spectrum table")
	delimiter := fs.String("delimiter", "", "Column delimiter (default TAB)")
	bandgaps := fs.String("bandgaps", "1.9,1.4,0.9", "Comma-separated bandgaps in eV, top to bottom")
	temperature := fs.Float64("temperature", model.DefaultTemperature, "Cell temperature in K [100, 700]")
	concentration := fs.Float64("concentration", model.DefaultConcentration, "Solar concentration in suns [1, 1000]")
	optimize := fs.Bool("optimize", false, "Scan double-junction bandgap pairs for the best efficiency")
	_ = fs.Parse(args)

	if *spectrumPath == "" {
		fmt.Println("--spectrum is required")
		os.Exit(2)
	}
	curve, err := spectrum.Load(*spectrumPath, *delimiter)
	if err != nil {
		panic(err)
	}

	if *optimize {
		opt, err := stack.OptimizePair(curve, *temperature, *concentration)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Double junction max efficiency = %.2f %% obtained for bandgaps = (%.3f ; %.3f) eV\n",
			opt.Efficiency, opt.Top, opt.Bottom)
		fmt.Printf("(%d pairs evaluated, %d skipped outside the spectrum domain)\n", opt.Evaluated, opt.Skipped)
		return
	}

	gaps := parseBandgaps(*bandgaps)
	if len(gaps) < 2 {
		fmt.Println("--bandgaps needs at least two comma-separated values")
		os.Exit(2)
	}

	res, err := stack.CombineSeries(curve, gaps, *temperature, *concentration)
	if err != nil {
		panic(err)
	}

	for i, cell := range res.Cells {
		fmt.Printf("cell %d: bandgap=%.3f eV Jsc=%.1f A/m2 Voc=%.3f V FF=%.3f eff=%05.2f %%\n",
			i+1, gaps[i], cell.Jsc, cell.Voc, cell.FF, cell.Efficiency)
	}
	fmt.Printf("%d-junction solar cell efficiency = %.3f %%\n", len(gaps), res.Efficiency)
}

func parseBandgaps(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			fmt.Printf("bad bandgap %q\n", p)
			os.Exit(2)
		}
		out = append(out, v)
	}
	return out
}
