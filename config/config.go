// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Firework   FireworkConfig   `yaml:"firework"`
	Particle   ParticleConfig   `yaml:"particle"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Input      InputConfig      `yaml:"input"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Audio      AudioConfig      `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SimulationConfig holds tick driver parameters.
type SimulationConfig struct {
	Seed           int64   `yaml:"seed"`             // 0 = time-based
	DT             float64 `yaml:"dt"`               // Seconds per tick, only used for tick-to-time conversion
	StepsPerUpdate int     `yaml:"steps_per_update"` // Ticks per frame
}

// FireworkConfig holds firework creation and flight parameters.
type FireworkConfig struct {
	TrailLength      int     `yaml:"trail_length"`
	InitialSpeed     float64 `yaml:"initial_speed"`
	Acceleration     float64 `yaml:"acceleration"` // Multiplicative per tick, >= 1
	HueSwing         float64 `yaml:"hue_swing"`    // Firework hue is sampled within +- this of the ambient hue
	BrightnessMin    float64 `yaml:"brightness_min"`
	BrightnessMax    float64 `yaml:"brightness_max"`
	TargetRadiusMin  float64 `yaml:"target_radius_min"`  // Indicator reset value
	TargetRadiusMax  float64 `yaml:"target_radius_max"`  // Indicator upper bound
	TargetRadiusStep float64 `yaml:"target_radius_step"` // Indicator growth per tick
	BurstSize        int     `yaml:"burst_size"`         // Particles created on detonation
}

// ParticleConfig holds burst particle parameters.
type ParticleConfig struct {
	TrailLength   int     `yaml:"trail_length"`
	SpeedMin      float64 `yaml:"speed_min"`
	SpeedMax      float64 `yaml:"speed_max"`
	Friction      float64 `yaml:"friction"` // Multiplicative per tick, in (0, 1)
	Gravity       float64 `yaml:"gravity"`  // Constant downward pull per tick
	HueSwing      float64 `yaml:"hue_swing"`
	BrightnessMin float64 `yaml:"brightness_min"`
	BrightnessMax float64 `yaml:"brightness_max"`
	DecayMin      float64 `yaml:"decay_min"`
	DecayMax      float64 `yaml:"decay_max"`
}

// SpawnerConfig holds automatic launch parameters.
type SpawnerConfig struct {
	Cadence    int     `yaml:"cadence"`     // Counter threshold between automatic launches
	TargetBand float64 `yaml:"target_band"` // Fraction of viewport width (centered) for target x
	TargetTop  float64 `yaml:"target_top"`  // Fraction of viewport height (from top) for target y
}

// ClickMode selects what a primary click creates.
type ClickMode string

const (
	ClickFirework ClickMode = "firework"
	ClickBurst    ClickMode = "burst"
)

// InputConfig holds host input mapping.
type InputConfig struct {
	ClickMode ClickMode `yaml:"click_mode"`
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	FadeAlpha   float64 `yaml:"fade_alpha"` // Opacity of the black overdraw each frame
	LineWidth   float64 `yaml:"line_width"`
	ShowTargets bool    `yaml:"show_targets"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulation time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds sound effect parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Simulation.DT as float32
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	WindowTicks int32   // Telemetry.StatsWindow in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range parameter as a joined error.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen: size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Simulation.DT > 0, "simulation.dt must be positive, got %v", c.Simulation.DT)
	check(c.Simulation.StepsPerUpdate >= 1, "simulation.steps_per_update must be >= 1, got %d", c.Simulation.StepsPerUpdate)

	fw := c.Firework
	check(fw.TrailLength >= 1, "firework.trail_length must be >= 1, got %d", fw.TrailLength)
	check(fw.Acceleration >= 1, "firework.acceleration must be >= 1, got %v", fw.Acceleration)
	check(fw.InitialSpeed > 0, "firework.initial_speed must be positive, got %v", fw.InitialSpeed)
	check(fw.BrightnessMin <= fw.BrightnessMax, "firework: brightness_min %v > brightness_max %v", fw.BrightnessMin, fw.BrightnessMax)
	check(fw.TargetRadiusMin <= fw.TargetRadiusMax, "firework: target_radius_min %v > target_radius_max %v", fw.TargetRadiusMin, fw.TargetRadiusMax)
	check(fw.BurstSize >= 0, "firework.burst_size must be >= 0, got %d", fw.BurstSize)
	check(fw.HueSwing >= 0, "firework.hue_swing must be >= 0, got %v", fw.HueSwing)

	p := c.Particle
	check(p.TrailLength >= 1, "particle.trail_length must be >= 1, got %d", p.TrailLength)
	check(p.Friction > 0 && p.Friction < 1, "particle.friction must be in (0, 1), got %v", p.Friction)
	check(p.SpeedMin <= p.SpeedMax, "particle: speed_min %v > speed_max %v", p.SpeedMin, p.SpeedMax)
	check(p.BrightnessMin <= p.BrightnessMax, "particle: brightness_min %v > brightness_max %v", p.BrightnessMin, p.BrightnessMax)
	check(p.DecayMin > 0 && p.DecayMin <= p.DecayMax, "particle: decay range [%v, %v] invalid", p.DecayMin, p.DecayMax)
	check(p.HueSwing >= 0, "particle.hue_swing must be >= 0, got %v", p.HueSwing)

	check(c.Spawner.Cadence >= 0, "spawner.cadence must be >= 0, got %d", c.Spawner.Cadence)
	check(c.Spawner.TargetBand >= 0 && c.Spawner.TargetBand <= 1, "spawner.target_band must be in [0, 1], got %v", c.Spawner.TargetBand)
	check(c.Spawner.TargetTop >= 0 && c.Spawner.TargetTop <= 1, "spawner.target_top must be in [0, 1], got %v", c.Spawner.TargetTop)

	switch c.Input.ClickMode {
	case ClickFirework, ClickBurst:
	default:
		errs = append(errs, fmt.Errorf("input.click_mode: unknown mode %q", c.Input.ClickMode))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	ticks := int32(math.Round(c.Telemetry.StatsWindow / c.Simulation.DT))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.WindowTicks = ticks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
