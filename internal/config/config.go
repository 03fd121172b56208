// Package config loads renderer settings from YAML and command-line flags.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all renderer settings
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// RenderConfig holds image size and scheduling settings
type RenderConfig struct {
	Width              int   `yaml:"width"`
	Height             int   `yaml:"height"`
	Workers            int   `yaml:"workers"`   // 0 = one per CPU
	TileSize           int   `yaml:"tile_size"` // Edge length of square tiles in pixels
	Seed               int64 `yaml:"seed"`
	TransparentShadows bool  `yaml:"transparent_shadows"`
}

// OutputConfig controls where rendered images go
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png, jpg, bmp or tiff
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

// Default returns the settings used when no file or flag overrides them
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:    500,
			Height:   500,
			Workers:  0,
			TileSize: 64,
			Seed:     42,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Port:      8080,
			StaticDir: "static",
		},
	}
}

// Validate reports every out-of-range setting
func (c *Config) Validate() error {
	var err error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers must be >= 0, got %d", c.Render.Workers))
	}
	if c.Render.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("tile size must be positive, got %d", c.Render.TileSize))
	}
	switch c.Output.Format {
	case "png", "jpg", "jpeg", "bmp", "tif", "tiff":
	default:
		err = multierr.Append(err, fmt.Errorf("unsupported output format %q", c.Output.Format))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("server port out of range: %d", c.Server.Port))
	}
	return err
}
