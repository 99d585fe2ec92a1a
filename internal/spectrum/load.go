package spectrum

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// headerRows is the fixed number of leading rows skipped in the input table
// (title + column names in the ASTM G-173 style files).
const headerRows = 2

// Load reads a two-column delimited spectrum table: column 1 wavelength (nm,
// ascending), column 2 spectral irradiance (W/m2/nm). The first two rows are
// skipped. A failure here is unrecoverable for the caller.
func Load(path, delimiter string) (*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	if delimiter == "" {
		delimiter = "\t"
	}

	var wavelength, irradiance []float64
	sc := bufio.NewScanner(f)
	row := 0
	for sc.Scan() {
		row++
		if row <= headerRows {
			continue
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, delimiter)
		if len(fields) < 2 {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("row %d: expected 2 columns, got %d", row, len(fields))}
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("row %d: bad wavelength %q", row, fields[0])}
		}
		e, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("row %d: bad irradiance %q", row, fields[1])}
		}
		wavelength = append(wavelength, w)
		irradiance = append(irradiance, e)
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}

	c, err := New(wavelength, irradiance)
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return nil, err
	}
	return c, nil
}
