// Package config loads the YAML configuration used by the monosprite
// command.
package config

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/bodgit/monosprite/bitmap"
	"gopkg.in/yaml.v3"
)

// Point is an x, y pair.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Image returns p as an image.Point.
func (p Point) Image() image.Point {
	return image.Pt(p.X, p.Y)
}

// Config is the complete configuration.
type Config struct {
	Display struct {
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
		Backend string `yaml:"backend"`
		Scale   int    `yaml:"scale"`
		Listen  string `yaml:"listen"`
	} `yaml:"display"`
	Wrap struct {
		Low  Point `yaml:"low"`
		High Point `yaml:"high"`
	} `yaml:"wrap"`
	Tick     time.Duration `yaml:"tick"`
	Database string        `yaml:"database"`
	Bundle   string        `yaml:"bundle"`
	LogLevel string        `yaml:"log_level"`
}

// Backends lists the recognised display backends.
var Backends = []string{"term", "ws", "window", "none"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := new(Config)
	c.Display.Width = 128
	c.Display.Height = 64
	c.Display.Backend = "term"
	c.Display.Scale = 4
	c.Display.Listen = "localhost:8080"
	c.Wrap.High = Point{128, 64}
	c.Tick = 16 * time.Millisecond
	c.Database = "monosprite.db"
	c.LogLevel = "info"
	return c
}

// Load reads YAML from r on top of the defaults.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads the YAML file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks c is usable.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.New("config: display size must be positive")
	}
	if bitmap.PackedSize(c.Display.Width, c.Display.Height) > bitmap.Capacity {
		return fmt.Errorf("config: display larger than %d bytes", bitmap.Capacity)
	}
	if c.Wrap.High.X <= c.Wrap.Low.X || c.Wrap.High.Y <= c.Wrap.Low.Y {
		return errors.New("config: wrap high bound must exceed low bound")
	}
	if c.Tick <= 0 {
		return errors.New("config: tick must be positive")
	}
	for _, b := range Backends {
		if b == c.Display.Backend {
			return nil
		}
	}
	return fmt.Errorf("config: unknown display backend %q", c.Display.Backend)
}
