// Package output writes the three delimited text artifacts of a run:
// the efficiency-vs-bandgap curve, the J-V curve at the optimal bandgap, and
// the J-V curve at the target bandgap.
package output

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sq-limit/internal/model"
	"sq-limit/internal/sweep"
)

// Output currents are converted from A/m2 to mA/cm2.
const currentScale = 0.1

// WriteResults writes <base>_Efficiency.txt, <base>_JV_Max.txt and
// <base>_JV_Target.txt. The delimiter matches the input spectrum convention
// (empty means TAB). An error here leaves the in-memory results untouched.
func WriteResults(base, delimiter string, run *sweep.RunResult) error {
	if delimiter == "" {
		delimiter = "\t"
	}
	s := run.Sweep

	if err := writeEfficiency(base+"_Efficiency.txt", delimiter, s); err != nil {
		return err
	}

	maxHeader := fmt.Sprintf("Max Efficiency: %05.2f %% for bandgap = %.3f eV", s.Best.JV.Efficiency, s.Best.Bandgap)
	if err := writeJV(base+"_JV_Max.txt", delimiter, s.Best.JV, maxHeader); err != nil {
		return err
	}

	targetHeader := fmt.Sprintf("Target Efficiency: %05.2f %% for bandgap = %.3f eV", run.Target.Efficiency, run.Params.TargetBandgap)
	return writeJV(base+"_JV_Target.txt", delimiter, run.Target, targetHeader, maxHeader)
}

func writeEfficiency(path, delimiter string, s *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# Bandgap (eV)%sEfficiency (%%)\n", delimiter)
	for i := range s.Bandgap {
		fmt.Fprintf(w, "%s%s%s\n",
			strconv.FormatFloat(s.Bandgap[i], 'f', 4, 64),
			delimiter,
			strconv.FormatFloat(s.Efficiency[i], 'f', 6, 64))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func writeJV(path, delimiter string, jv *model.JVCurve, headers ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, h := range headers {
		fmt.Fprintf(w, "# %s\n", h)
	}
	fmt.Fprintf(w, "# Voltage (V)%sCurrent (mA/cm2)\n", delimiter)
	for i := range jv.Voltage {
		fmt.Fprintf(w, "%s%s%s\n",
			strconv.FormatFloat(jv.Voltage[i], 'f', 4, 64),
			delimiter,
			strconv.FormatFloat(jv.Current[i]*currentScale, 'f', 6, 64))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ReadColumns reads back a two-column file written by this package, skipping
// "#" header lines.
func ReadColumns(path, delimiter string) (col1, col2 []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if delimiter == "" {
		delimiter = "\t"
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, delimiter)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%s: expected 2 columns, got %d", path, len(fields))
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, nil, err
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, nil, err
		}
		col1 = append(col1, a)
		col2 = append(col2, b)
	}

	return col1, col2, sc.Err()
}
