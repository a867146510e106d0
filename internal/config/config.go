// Package config handles meshgen configuration loading and
// management.
package config

// Config holds all meshgen settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig describes the navmesh tile grid.
type MeshConfig struct {
	// Origin is the world-space corner of tile (0, 0).
	OriginX float32 `yaml:"origin_x"`
	OriginY float32 `yaml:"origin_y"`
	OriginZ float32 `yaml:"origin_z"`

	// TileSize is the edge length of a grid tile in world units.
	TileSize float32 `yaml:"tile_size"`

	// InvalidAreaCost is the traversal cost used for volumes whose
	// area type no longer exists in the registry. 1.0 keeps them
	// traversable at default cost; 0 treats them as unwalkable.
	InvalidAreaCost float32 `yaml:"invalid_area_cost"`
}

// EditorConfig holds the volume editor defaults.
type EditorConfig struct {
	// BoxHeight is the vertical size of newly created volumes.
	BoxHeight float32 `yaml:"box_height"`
	// BoxDescent lowers a new volume's base below the lowest clicked
	// point.
	BoxDescent float32 `yaml:"box_descent"`
	// PolyOffset inflates the committed hull outward; 0 disables.
	PolyOffset float32 `yaml:"poly_offset"`
	// SnapDistance: clicking within this distance of the last placed
	// point finishes the shape.
	SnapDistance float32 `yaml:"snap_distance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			TileSize:        128,
			InvalidAreaCost: 1.0,
		},
		Editor: EditorConfig{
			BoxHeight:    6.0,
			BoxDescent:   1.0,
			PolyOffset:   0.0,
			SnapDistance: 0.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
