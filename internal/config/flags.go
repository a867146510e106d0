package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagTileSize   = flag.Float64("tile-size", 0, "Navmesh tile size in world units")
	flagPolyOffset = flag.Float64("poly-offset", -1, "Hull inflation applied to committed volumes")
	flagLogFile    = flag.String("log-file", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTileSize > 0 {
		cfg.Mesh.TileSize = float32(*flagTileSize)
	}
	if *flagPolyOffset >= 0 {
		cfg.Editor.PolyOffset = float32(*flagPolyOffset)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
