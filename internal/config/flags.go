package config

import "flag"

// Flags holds command-line overrides. Only flags the user actually passed
// override the config file.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string

	Width              int
	Height             int
	Workers            int
	TileSize           int
	Seed               int64
	TransparentShadows bool

	// CLI only
	Scene string
	List  bool

	// Server only
	Port int

	fs *flag.FlagSet
}

// CLIFlags registers the command-line renderer's flags on fs
func CLIFlags(fs *flag.FlagSet) *Flags {
	f := registerCommon(fs)
	fs.StringVar(&f.Scene, "scene", "", "Built-in scene name or file:<name> (see -list)")
	fs.IntVar(&f.Width, "width", 0, "Image width in pixels")
	fs.IntVar(&f.Height, "height", 0, "Image height in pixels")
	fs.BoolVar(&f.List, "list", false, "List available scenes and exit")
	return f
}

// ServerFlags registers the web server's flags on fs
func ServerFlags(fs *flag.FlagSet) *Flags {
	f := registerCommon(fs)
	fs.IntVar(&f.Port, "port", 0, "Port to serve on")
	return f
}

func registerCommon(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.IntVar(&f.Workers, "workers", 0, "Number of parallel tile workers (0 = one per CPU)")
	fs.IntVar(&f.TileSize, "tile", 0, "Tile edge length in pixels")
	fs.Int64Var(&f.Seed, "seed", 0, "Base seed for soft-shadow sampling")
	fs.BoolVar(&f.TransparentShadows, "t", false, "Let transparent surfaces attenuate shadows")
	return f
}

// isSet reports whether the named flag appeared on the command line
func (f *Flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// apply copies explicitly passed flags over cfg
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.isSet("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.isSet("width") {
		cfg.Render.Width = f.Width
	}
	if f.isSet("height") {
		cfg.Render.Height = f.Height
	}
	if f.isSet("workers") {
		cfg.Render.Workers = f.Workers
	}
	if f.isSet("tile") {
		cfg.Render.TileSize = f.TileSize
	}
	if f.isSet("seed") {
		cfg.Render.Seed = f.Seed
	}
	if f.TransparentShadows {
		cfg.Render.TransparentShadows = true
	}
	if f.isSet("port") {
		cfg.Server.Port = f.Port
	}
}
