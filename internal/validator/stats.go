package validator

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/segmentio/ksuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Tolerances bounds the accepted round-trip error per quantity.
type Tolerances struct {
	RangeM      float64 `yaml:"range_m"`
	AzimuthDeg  float64 `yaml:"azimuth_deg"`
	TimeS       float64 `yaml:"time_s"`
	PositionDeg float64 `yaml:"position_deg"`
	AltitudeFt  float64 `yaml:"altitude_ft"`
}

// DefaultTolerances returns the nominal tolerances
func DefaultTolerances() Tolerances {
	return Tolerances{
		RangeM:      500,
		AzimuthDeg:  0.5,
		TimeS:       0.01,
		PositionDeg: 1e-4,
		AltitudeFt:  25,
	}
}

// WithDefaults fills the fields of a partially built Tolerances that were left
// at zero with their nominal value. It is not applied implicitly: a zero
// tolerance passed to a validator requires an exact match.
func (t Tolerances) WithDefaults() Tolerances {
	d := DefaultTolerances()
	if t.RangeM == 0 {
		t.RangeM = d.RangeM
	}
	if t.AzimuthDeg == 0 {
		t.AzimuthDeg = d.AzimuthDeg
	}
	if t.TimeS == 0 {
		t.TimeS = d.TimeS
	}
	if t.PositionDeg == 0 {
		t.PositionDeg = d.PositionDeg
	}
	if t.AltitudeFt == 0 {
		t.AltitudeFt = d.AltitudeFt
	}
	return t
}

// Validate rejects negative tolerances
func (t Tolerances) Validate() error {
	for name, v := range map[string]float64{
		"range_m":      t.RangeM,
		"azimuth_deg":  t.AzimuthDeg,
		"time_s":       t.TimeS,
		"position_deg": t.PositionDeg,
		"altitude_ft":  t.AltitudeFt,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("tolerance %s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// Stats accumulates the results of one validation run.
type Stats struct {
	RunID    ksuid.KSUID
	Category uint8

	Total      int
	Successful int
	Failed     int

	RangeErrors    []float64 // m
	AzimuthErrors  []float64 // deg
	LatErrors      []float64 // deg
	LonErrors      []float64 // deg
	AltitudeErrors []float64 // ft
	TimeErrors     []float64 // s

	CodeMismatches int // discrete codes and addresses
	Missing        map[string]int
	Errors         []string
}

// NewStats creates an empty run
func NewStats(category uint8) *Stats {
	return &Stats{
		RunID:    ksuid.New(),
		Category: category,
		Missing:  make(map[string]int),
	}
}

// Success reports whether every record passed. An empty run fails.
func (s *Stats) Success() bool {
	return s.Failed == 0 && s.Total > 0
}

// SuccessRate returns successful/total, zero for an empty run.
func (s *Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Total)
}

func (s *Stats) missing(id, msg string) {
	s.Missing[id]++
	if msg != "" {
		s.Errors = append(s.Errors, msg)
	}
}

func (s *Stats) errorf(format string, args ...interface{}) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Mean returns the mean of an error list, zero when empty
func Mean(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	return stat.Mean(errs, nil)
}

// StdDev returns the sample standard deviation, zero below two samples
func StdDev(errs []float64) float64 {
	if len(errs) < 2 {
		return 0
	}
	return stat.StdDev(errs, nil)
}

// Min returns the smallest error, zero when empty
func Min(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	return floats.Min(errs)
}

// Max returns the largest error, zero when empty
func Max(errs []float64) float64 {
	if len(errs) == 0 {
		return 0
	}
	return floats.Max(errs)
}

const maxReportedErrors = 20

// WriteReport writes a human readable summary of the run. Detailed errors are
// listed only when verbose is set.
func (s *Stats) WriteReport(w io.Writer, verbose bool) error {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "ASTERIX CAT%03d Round-Trip Validation Report\n", s.Category)
	fmt.Fprintf(&b, "Run: %s\n", s.RunID)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	if s.Success() {
		fmt.Fprintln(&b, "VALIDATION PASSED")
	} else {
		fmt.Fprintln(&b, "VALIDATION FAILED")
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total records:    %d\n", s.Total)
	fmt.Fprintf(&b, "Successful:       %d\n", s.Successful)
	fmt.Fprintf(&b, "Failed:           %d\n", s.Failed)
	fmt.Fprintf(&b, "Success rate:     %.1f%%\n", s.SuccessRate()*100)
	fmt.Fprintln(&b)

	writeErrors(&b, "Range Errors", s.RangeErrors, "%10.2f m")
	writeErrors(&b, "Azimuth Errors", s.AzimuthErrors, "%10.4f deg")
	writeErrors(&b, "Latitude Errors", s.LatErrors, "%10.7f deg")
	writeErrors(&b, "Longitude Errors", s.LonErrors, "%10.7f deg")
	writeErrors(&b, "Altitude Errors", s.AltitudeErrors, "%10.2f ft")
	writeErrors(&b, "Time Errors", s.TimeErrors, "%10.6f s")

	if s.CodeMismatches > 0 {
		fmt.Fprintf(&b, "Code mismatches:  %d\n\n", s.CodeMismatches)
	}

	if len(s.Missing) > 0 {
		fmt.Fprintln(&b, "Missing Data Items:")
		ids := make([]string, 0, len(s.Missing))
		for id := range s.Missing {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "  %s: %d records\n", id, s.Missing[id])
		}
	} else {
		fmt.Fprintln(&b, "All required data items present")
	}
	fmt.Fprintln(&b)

	if verbose && len(s.Errors) > 0 {
		fmt.Fprintln(&b, "Detailed Errors:")
		for i, e := range s.Errors {
			if i == maxReportedErrors {
				fmt.Fprintf(&b, "  ... and %d more errors\n", len(s.Errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, e)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeErrors(b *strings.Builder, title string, errs []float64, format string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "  Mean:   "+format+"\n", Mean(errs))
	fmt.Fprintf(b, "  StdDev: "+format+"\n", StdDev(errs))
	fmt.Fprintf(b, "  Max:    "+format+"\n", Max(errs))
	fmt.Fprintf(b, "  Min:    "+format+"\n", Min(errs))
	fmt.Fprintln(b)
}
