// Package sim generates synthetic surveillance scenarios for round-trip runs.
package sim

import (
	"math"
	"math/rand"
	"time"
)

// Sensor defaults
const (
	DefaultMinRangeM  = 1e3
	DefaultMaxRangeM  = 200e3
	DefaultNoiseStd   = 0.05
	RangeResolutionM  = 100.0
	AzimuthResolution = 1.0 // deg
	RotationPeriod    = 4 * time.Second

	earthRadiusM  = 6371000.0
	dopplerPerMS  = 8.67 // Hz per m/s of radial speed, L band
	referenceSNR  = 40.0 // dB at 10 km
	referenceDist = 10e3
)

// Config describes the simulated radar site.
type Config struct {
	SAC       uint8   `yaml:"sac"`
	SIC       uint8   `yaml:"sic"`
	LatDeg    float64 `yaml:"lat_deg"`
	LonDeg    float64 `yaml:"lon_deg"`
	AltM      float64 `yaml:"alt_m"`
	MinRangeM float64 `yaml:"min_range_m"`
	MaxRangeM float64 `yaml:"max_range_m"`
	NoiseStd  float64 `yaml:"noise_std"`
	Seed      int64   `yaml:"seed"`
}

// Plot is one synthetic detection.
type Plot struct {
	Target       int // aircraft index, -1 for random plots
	Time         time.Time
	RangeM       float64
	AzimuthDeg   float64
	ElevationDeg float64
	SNR          float64 // dB
	DopplerHz    float64
	VX, VY       float64 // ground velocity, m/s east and north
	AltitudeFt   float64
}

// Radar is a rotating surveillance radar with measurement noise.
type Radar struct {
	cfg Config
	rng *rand.Rand
}

// NewRadar creates a radar. The same seed always yields the same scenario.
func NewRadar(cfg Config) *Radar {
	if cfg.MinRangeM <= 0 {
		cfg.MinRangeM = DefaultMinRangeM
	}
	if cfg.MaxRangeM <= cfg.MinRangeM {
		cfg.MaxRangeM = DefaultMaxRangeM
	}
	if cfg.NoiseStd < 0 {
		cfg.NoiseStd = DefaultNoiseStd
	}
	return &Radar{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Config returns the effective radar configuration
func (r *Radar) Config() Config { return r.cfg }

func (r *Radar) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// GeneratePlots returns n independent detections at time t, quantized to the
// sensor resolution.
func (r *Radar) GeneratePlots(n int, t time.Time) []Plot {
	plots := make([]Plot, 0, n)
	for i := 0; i < n; i++ {
		rangeM := r.uniform(r.cfg.MinRangeM, r.cfg.MaxRangeM)
		az := r.uniform(0, 360)
		elev := r.uniform(-2, 15)
		snr := clamp(snrAt(rangeM)+r.rng.NormFloat64()*3, 10, 50)

		rangeM += r.rng.NormFloat64() * RangeResolutionM * r.cfg.NoiseStd
		az += r.rng.NormFloat64() * AzimuthResolution * r.cfg.NoiseStd
		elev += r.rng.NormFloat64() * 0.1 * r.cfg.NoiseStd

		rangeM = math.Round(rangeM/RangeResolutionM) * RangeResolutionM
		rangeM = clamp(rangeM, r.cfg.MinRangeM, r.cfg.MaxRangeM)
		az = math.Mod(math.Round(az/AzimuthResolution)*AzimuthResolution+360, 360)

		plots = append(plots, Plot{
			Target:       -1,
			Time:         t,
			RangeM:       rangeM,
			AzimuthDeg:   az,
			ElevationDeg: elev,
			SNR:          snr,
			DopplerHz:    r.uniform(-500, 500),
		})
	}
	return plots
}

// GenerateTrack moves one target in a straight line and returns a detection per
// update interval, stopping when the target leaves the coverage.
func (r *Radar) GenerateTrack(startRangeM, startAzDeg, speedMS, headingDeg float64, duration, dt time.Duration, t0 time.Time) []Plot {
	if dt <= 0 {
		dt = RotationPeriod
	}

	x := startRangeM * math.Sin(radians(startAzDeg))
	y := startRangeM * math.Cos(radians(startAzDeg))
	vx := speedMS * math.Sin(radians(headingDeg))
	vy := speedMS * math.Cos(radians(headingDeg))
	step := dt.Seconds()

	updates := int(duration / dt)
	plots := make([]Plot, 0, updates)
	for i := 0; i < updates; i++ {
		x += vx * step
		y += vy * step

		rangeM := math.Hypot(x, y)
		if rangeM < r.cfg.MinRangeM || rangeM > r.cfg.MaxRangeM {
			break
		}
		az := math.Mod(degrees(math.Atan2(x, y))+360, 360)
		radial := (vx*x + vy*y) / rangeM

		plots = append(plots, Plot{
			Target:       -1,
			Time:         t0.Add(time.Duration(i) * dt),
			RangeM:       rangeM,
			AzimuthDeg:   az,
			ElevationDeg: r.uniform(2, 10),
			SNR:          snrAt(rangeM),
			DopplerHz:    radial * dopplerPerMS,
			VX:           vx,
			VY:           vy,
		})
	}
	return plots
}

// AircraftScenario flies n aircraft with random start points, speeds, headings
// and flight levels for the given duration.
func (r *Radar) AircraftScenario(n int, duration time.Duration, t0 time.Time) []Plot {
	var all []Plot
	for i := 0; i < n; i++ {
		startRange := r.uniform(20e3, 150e3)
		startAz := r.uniform(0, 360)
		speed := r.uniform(150, 250)
		heading := r.uniform(0, 360)
		altitude := math.Round(r.uniform(100, 400)) * 100

		track := r.GenerateTrack(startRange, startAz, speed, heading, duration, RotationPeriod, t0)
		for j := range track {
			track[j].Target = i
			track[j].AltitudeFt = altitude
		}
		all = append(all, track...)
	}
	return all
}

// Position projects a plot onto WGS-84 around the radar site using a flat
// earth approximation.
func (r *Radar) Position(p Plot) (latDeg, lonDeg float64) {
	east := p.RangeM * math.Sin(radians(p.AzimuthDeg))
	north := p.RangeM * math.Cos(radians(p.AzimuthDeg))

	latDeg = r.cfg.LatDeg + degrees(north/earthRadiusM)
	lonDeg = r.cfg.LonDeg + degrees(east/(earthRadiusM*math.Cos(radians(r.cfg.LatDeg))))
	return latDeg, lonDeg
}

func snrAt(rangeM float64) float64 {
	return referenceSNR - 40*math.Log10(rangeM/referenceDist)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
