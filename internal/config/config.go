// Package config loads arm and simulation descriptions from YAML.
//
// Link fields accept the short aliases used by existing robot files
// (l/length, m/mass, i/inertia, com vs rgx/rgy, limits vs qmin/qmax).
// Aliases are resolved once at ingestion; the core model only ever
// sees [arm.LinkProperty].
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/armsim/internal/arm"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultKp       = 10.0
	DefaultKi       = 0.1
	DefaultKd       = 5.0
)

// Config is the full simulation description.
type Config struct {
	Links            []LinkSpec       `yaml:"links"`
	Gravity          []float64        `yaml:"gravity"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Controller       string           `yaml:"controller"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
	InitState        InitStateConfig  `yaml:"init_state"`
}

// LinkSpec is one link as written in a config file, aliases included.
type LinkSpec struct {
	Length  *float64  `yaml:"length"`
	L       *float64  `yaml:"l"`
	Mass    *float64  `yaml:"mass"`
	M       *float64  `yaml:"m"`
	Inertia *float64  `yaml:"inertia"`
	I       *float64  `yaml:"i"`
	RGx     *float64  `yaml:"rgx"`
	RGy     *float64  `yaml:"rgy"`
	COM     []float64 `yaml:"com"`
	QMin    *float64  `yaml:"qmin"`
	QMax    *float64  `yaml:"qmax"`
	Limits  []float64 `yaml:"limits"`
}

type ControllerConfig struct {
	Kp      float64   `yaml:"kp"`
	Ki      float64   `yaml:"ki"`
	Kd      float64   `yaml:"kd"`
	Targets []float64 `yaml:"targets"`
}

type InitStateConfig struct {
	Q  []float64 `yaml:"q"`
	DQ []float64 `yaml:"dq"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:    []float64{0, -9.81},
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Controller: "none",
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

// Load reads and parses a config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize resolves a link spec's aliases into a LinkProperty.
// Canonical names win over aliases when both are present.
func (s LinkSpec) Normalize() (arm.LinkProperty, error) {
	p := arm.LinkProperty{
		QMin: -math.Pi,
		QMax: math.Pi,
	}

	switch {
	case s.Length != nil:
		p.Length = *s.Length
	case s.L != nil:
		p.Length = *s.L
	default:
		return p, fmt.Errorf("config: link is missing length")
	}

	if s.Mass != nil {
		p.Mass = *s.Mass
	} else if s.M != nil {
		p.Mass = *s.M
	}
	if s.Inertia != nil {
		p.Inertia = *s.Inertia
	} else if s.I != nil {
		p.Inertia = *s.I
	}

	switch {
	case s.RGx != nil || s.RGy != nil:
		if s.RGx != nil {
			p.RGx = *s.RGx
		}
		if s.RGy != nil {
			p.RGy = *s.RGy
		}
	case s.COM != nil:
		if len(s.COM) != 2 {
			return p, fmt.Errorf("config: com wants [rgx, rgy], got %d values", len(s.COM))
		}
		p.RGx, p.RGy = s.COM[0], s.COM[1]
	}

	switch {
	case s.QMin != nil || s.QMax != nil:
		if s.QMin != nil {
			p.QMin = *s.QMin
		}
		if s.QMax != nil {
			p.QMax = *s.QMax
		}
	case s.Limits != nil:
		if len(s.Limits) != 2 {
			return p, fmt.Errorf("config: limits wants [qmin, qmax], got %d values", len(s.Limits))
		}
		p.QMin, p.QMax = s.Limits[0], s.Limits[1]
	}

	return p, nil
}

// LinkProperties normalizes every link spec.
func (c *Config) LinkProperties() ([]arm.LinkProperty, error) {
	props := make([]arm.LinkProperty, len(c.Links))
	for i, s := range c.Links {
		p, err := s.Normalize()
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		props[i] = p
	}
	return props, nil
}

// BuildChain constructs the chain with the configured initial state.
func (c *Config) BuildChain() (*arm.Chain, error) {
	props, err := c.LinkProperties()
	if err != nil {
		return nil, err
	}
	chain, err := arm.NewChain(props)
	if err != nil {
		return nil, err
	}
	if c.InitState.Q != nil {
		if err := chain.SetQ(c.InitState.Q); err != nil {
			return nil, err
		}
	}
	if c.InitState.DQ != nil {
		if err := chain.SetDQ(c.InitState.DQ); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

// GravityVec returns the configured gravity as a vector.
func (c *Config) GravityVec() (arm.Vec2, error) {
	if c.Gravity == nil {
		return arm.Vec2{X: 0, Y: -9.81}, nil
	}
	if len(c.Gravity) != 2 {
		return arm.Vec2{}, fmt.Errorf("config: gravity wants [gx, gy], got %d values", len(c.Gravity))
	}
	return arm.Vec2{X: c.Gravity[0], Y: c.Gravity[1]}, nil
}
