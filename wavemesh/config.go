package wavemesh

import (
	"encoding/json"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// An RHField selects one of a sounding's relative height percentiles.
type RHField int

const (
	RH98 RHField = iota
	RH50
	RH2
)

func ParseRHField(s string) (RHField, error) {
	switch strings.ToLower(s) {
	case "rh2":
		return RH2, nil
	case "rh50":
		return RH50, nil
	case "rh98", "":
		return RH98, nil
	}
	return 0, errors.Errorf("unknown relative height field: %q", s)
}

func (r RHField) String() string {
	switch r {
	case RH2:
		return "rh2"
	case RH50:
		return "rh50"
	default:
		return "rh98"
	}
}

func (r RHField) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RHField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	f, err := ParseRHField(s)
	if err != nil {
		return err
	}
	*r = f
	return nil
}

// Reference is a geodetic anchor for the local frame.
type Reference struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation"`
}

// Config holds every parameter of scene construction.
type Config struct {
	RingResolution      int     `json:"ring_resolution"`
	GroundFraction      float64 `json:"ground_fraction"`
	TotalPhysicalHeight float64 `json:"total_physical_height"`
	HeightScale         float64 `json:"height_scale"`

	HorizontalAmplification float64 `json:"horizontal_amplification"`
	PositionScale           float64 `json:"position_scale"`
	ElevationScale          float64 `json:"elevation_scale"`

	RadiusScale float64 `json:"radius_scale"`
	RadiusCap   float64 `json:"radius_cap"`

	// TextureGeoBounds is [west, east, south, north].
	TextureGeoBounds [4]float64 `json:"texture_geo_bounds"`

	RegistryCellSize float64 `json:"registry_cell_size"`

	EnergyThreshold float64 `json:"energy_threshold"`
	TargetSum       float64 `json:"target_sum"`
	RHField         RHField `json:"rh_field"`
	MinHeight       float64 `json:"min_height"`

	// BoundingStrategy is "margin" or "disk".
	BoundingStrategy string  `json:"bounding_strategy"`
	BoundingMargin   float64 `json:"bounding_margin"`

	// Reference anchors the local frame. If nil, the first sounding is
	// used.
	Reference *Reference `json:"reference,omitempty"`

	// Verbose enables a log line for every skipped sounding.
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns the default parameters.
func DefaultConfig() *Config {
	return &Config{
		RingResolution:          DefaultRingResolution,
		GroundFraction:          DefaultGroundFraction,
		TotalPhysicalHeight:     DefaultPhysicalHeight,
		HeightScale:             0.4,
		HorizontalAmplification: DefaultSlantAmplification,
		PositionScale:           0.01,
		ElevationScale:          0.01,
		RadiusScale:             0.003,
		RadiusCap:               1.2,
		TextureGeoBounds:        [4]float64{-71.5, -71.4, -46.6, -46.5},
		EnergyThreshold:         5,
		TargetSum:               25,
		RHField:                 RH98,
		MinHeight:               5,
		BoundingStrategy:        "margin",
		BoundingMargin:          DefaultBoundingMargin,
	}
}

// LoadConfig reads a JSON config file.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return cfg, nil
}

// Validate checks that the parameters can produce a scene.
func (c *Config) Validate() error {
	if c.RingResolution < 3 {
		return errors.Wrapf(ErrRingResolution, "ring_resolution is %d", c.RingResolution)
	}
	if !(c.GroundFraction >= 0 && c.GroundFraction < 1) {
		return errors.Errorf("ground_fraction must be in [0, 1), got %f", c.GroundFraction)
	}
	if !positiveFinite(c.TotalPhysicalHeight) || !positiveFinite(c.HeightScale) {
		return errors.New("total_physical_height and height_scale must be positive and finite")
	}
	if !positiveFinite(c.PositionScale) || !positiveFinite(c.ElevationScale) {
		return errors.New("position_scale and elevation_scale must be positive and finite")
	}
	if c.RadiusScale < 0 {
		return errors.New("radius_scale must not be negative")
	}
	if err := c.GeoBounds().validate(); err != nil {
		return err
	}
	if _, err := c.Bounds(); err != nil {
		return err
	}
	return nil
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// GeoBounds returns TextureGeoBounds as a GeoBounds.
func (c *Config) GeoBounds() GeoBounds {
	b := c.TextureGeoBounds
	return GeoBounds{West: b[0], East: b[1], South: b[2], North: b[3]}
}

// Bounds creates the BoundingStrategy named by the config.
func (c *Config) Bounds() (BoundingStrategy, error) {
	switch c.BoundingStrategy {
	case "", "margin":
		return MarginStrategy{Margin: c.BoundingMargin}, nil
	case "disk":
		return DiskStrategy{Scale: c.BoundingMargin}, nil
	}
	return nil, errors.Errorf("unknown bounding strategy: %q", c.BoundingStrategy)
}

// TubeBuilder creates the TubeBuilder described by the config.
func (c *Config) TubeBuilder() *TubeBuilder {
	return &TubeBuilder{
		RingResolution: c.RingResolution,
		GroundFraction: c.GroundFraction,
		TotalHeight:    c.TotalPhysicalHeight * c.HeightScale,
		PhysicalHeight: c.TotalPhysicalHeight,
		RadiusCap:      c.RadiusCap,
	}
}

// Projector creates a Projector anchored at ref.
func (c *Config) Projector(ref Reference) *Projector {
	return &Projector{
		RefLat:         ref.Lat,
		RefLon:         ref.Lon,
		RefElevation:   ref.Elevation,
		PositionScale:  c.PositionScale,
		ElevationScale: c.ElevationScale,
	}
}
