package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackLocation is used for cameras with no configured coordinates.
var FallbackLocation = Location{Latitude: 40.7128, Longitude: -74.0060}

type Location struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// CameraConfig describes one camera in the risk profile.
type CameraConfig struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	URL      string   `yaml:"url" json:"url"`
	Location Location `yaml:"location" json:"location"`
	Enabled  bool     `yaml:"enabled" json:"enabled"`
}

// Profile is the YAML document pointed at by RISK_PROFILE_PATH. Scoring keys
// that are present override the env/defaults; absent keys keep them.
type Profile struct {
	Scoring         yaml.Node          `yaml:"scoring"`
	HazardOverrides map[string]float64 `yaml:"hazards"`
	DefaultLocation *Location          `yaml:"default_location"`
	Cameras         []CameraConfig     `yaml:"cameras"`
}

// ApplyProfile reads the profile at path and merges it into c.
func (c *Config) ApplyProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read risk profile: %w", err)
	}
	return c.applyProfileBytes(data)
}

func (c *Config) applyProfileBytes(data []byte) error {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse risk profile: %w", err)
	}

	next := c.Scoring
	next.HazardMultipliers = copyMultipliers(c.Scoring.HazardMultipliers)
	if !p.Scoring.IsZero() {
		if err := p.Scoring.Decode(&next); err != nil {
			return fmt.Errorf("failed to decode scoring section: %w", err)
		}
	}
	for label, m := range p.HazardOverrides {
		if next.HazardMultipliers == nil {
			next.HazardMultipliers = map[string]float64{}
		}
		next.HazardMultipliers[strings.ToLower(strings.TrimSpace(label))] = m
	}
	if err := next.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Cameras))
	for i, cam := range p.Cameras {
		if cam.ID == "" {
			return fmt.Errorf("camera %d in risk profile has no id", i)
		}
		if seen[cam.ID] {
			return fmt.Errorf("camera %q listed twice in risk profile", cam.ID)
		}
		seen[cam.ID] = true
	}

	c.Scoring = next
	if p.DefaultLocation != nil {
		c.DefaultLocation = *p.DefaultLocation
	}
	if len(p.Cameras) > 0 {
		c.Cameras = p.Cameras
	}
	return nil
}

// Camera returns the configured camera with the given id.
func (c *Config) Camera(id string) (CameraConfig, bool) {
	for _, cam := range c.Cameras {
		if cam.ID == id {
			return cam, true
		}
	}
	return CameraConfig{}, false
}

// LocationFor resolves a camera's coordinates, falling back to the default location.
func (c *Config) LocationFor(id string) Location {
	if cam, ok := c.Camera(id); ok && (cam.Location != Location{}) {
		return cam.Location
	}
	if (c.DefaultLocation != Location{}) {
		return c.DefaultLocation
	}
	return FallbackLocation
}

// CameraName returns the display name of a camera, or "Unknown".
func (c *Config) CameraName(id string) string {
	if cam, ok := c.Camera(id); ok && cam.Name != "" {
		return cam.Name
	}
	return "Unknown"
}

func copyMultipliers(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
