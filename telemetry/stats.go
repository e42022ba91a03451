package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Fireworks     int `csv:"fireworks"`
	Particles     int `csv:"particles"`
	PeakParticles int `csv:"peak_particles"`

	// Events during window
	AutoLaunches     int `csv:"auto_launches"`
	ManualLaunches   int `csv:"manual_launches"`
	Detonations      int `csv:"detonations"`
	ParticlesSpawned int `csv:"particles_spawned"`
	ParticlesExpired int `csv:"particles_expired"`

	// Ticks from launch to detonation
	FlightMean float64 `csv:"flight_mean"`
	FlightP50  float64 `csv:"flight_p50"`
	FlightP90  float64 `csv:"flight_p90"`

	// Ticks from burst to fade-out
	LifetimeMean float64 `csv:"lifetime_mean"`
	LifetimeStd  float64 `csv:"lifetime_std"`
	LifetimeP10  float64 `csv:"lifetime_p10"`
	LifetimeP50  float64 `csv:"lifetime_p50"`
	LifetimeP90  float64 `csv:"lifetime_p90"`
}

// Summary holds the distribution of a sample.
type Summary struct {
	N             int
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, standard deviation and empirical percentiles.
// Returns the zero Summary for an empty sample; Std is 0 for a single value.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fireworks", s.Fireworks),
		slog.Int("particles", s.Particles),
		slog.Int("peak_particles", s.PeakParticles),
		slog.Int("auto_launches", s.AutoLaunches),
		slog.Int("manual_launches", s.ManualLaunches),
		slog.Int("detonations", s.Detonations),
		slog.Int("particles_spawned", s.ParticlesSpawned),
		slog.Int("particles_expired", s.ParticlesExpired),
		slog.Float64("flight_mean", s.FlightMean),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Float64("lifetime_p90", s.LifetimeP90),
	)
}
