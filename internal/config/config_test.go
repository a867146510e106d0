package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test mesh defaults
	if cfg.Mesh.TileSize != 128 {
		t.Errorf("expected tile size 128, got %f", cfg.Mesh.TileSize)
	}
	if cfg.Mesh.InvalidAreaCost != 1.0 {
		t.Errorf("expected invalid area cost 1.0, got %f", cfg.Mesh.InvalidAreaCost)
	}

	// Test editor defaults
	if cfg.Editor.BoxHeight != 6.0 {
		t.Errorf("expected box height 6.0, got %f", cfg.Editor.BoxHeight)
	}
	if cfg.Editor.BoxDescent != 1.0 {
		t.Errorf("expected box descent 1.0, got %f", cfg.Editor.BoxDescent)
	}
	if cfg.Editor.PolyOffset != 0 {
		t.Errorf("expected poly offset 0, got %f", cfg.Editor.PolyOffset)
	}
	if cfg.Editor.SnapDistance != 0.2 {
		t.Errorf("expected snap distance 0.2, got %f", cfg.Editor.SnapDistance)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshgen.yaml")

	yamlContent := `
mesh:
  origin_x: -1024
  origin_z: -1024
  tile_size: 64
  invalid_area_cost: 0

editor:
  box_height: 12
  box_descent: 2.5
  poly_offset: 1.5
  snap_distance: 0.5

logging:
  level: "debug"
  log_file: "meshgen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesh.OriginX != -1024 {
		t.Errorf("expected origin_x -1024, got %f", cfg.Mesh.OriginX)
	}
	if cfg.Mesh.TileSize != 64 {
		t.Errorf("expected tile size 64, got %f", cfg.Mesh.TileSize)
	}
	if cfg.Mesh.InvalidAreaCost != 0 {
		t.Errorf("expected invalid area cost 0, got %f", cfg.Mesh.InvalidAreaCost)
	}

	if cfg.Editor.BoxHeight != 12 {
		t.Errorf("expected box height 12, got %f", cfg.Editor.BoxHeight)
	}
	if cfg.Editor.BoxDescent != 2.5 {
		t.Errorf("expected box descent 2.5, got %f", cfg.Editor.BoxDescent)
	}
	if cfg.Editor.PolyOffset != 1.5 {
		t.Errorf("expected poly offset 1.5, got %f", cfg.Editor.PolyOffset)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshgen.log" {
		t.Errorf("expected log file 'meshgen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
mesh:
  tile_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshgen.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "tile size flag",
			setup: func() {
				*flagTileSize = 256
			},
			verify: func(cfg *Config) {
				if cfg.Mesh.TileSize != 256 {
					t.Errorf("expected tile size 256, got %f", cfg.Mesh.TileSize)
				}
			},
			teardown: func() {
				*flagTileSize = 0
			},
		},
		{
			name: "poly offset flag",
			setup: func() {
				*flagPolyOffset = 2.0
			},
			verify: func(cfg *Config) {
				if cfg.Editor.PolyOffset != 2.0 {
					t.Errorf("expected poly offset 2.0, got %f", cfg.Editor.PolyOffset)
				}
			},
			teardown: func() {
				*flagPolyOffset = -1
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "override.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "override.log" {
					t.Errorf("expected log file 'override.log', got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshgen.yaml")

	yamlContent := `
mesh:
  tile_size: 64
editor:
  box_height: 20
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagTileSize = 256
	defer func() {
		*flagConfig = ""
		*flagTileSize = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Tile size should come from the flag, not the file.
	if cfg.Mesh.TileSize != 256 {
		t.Errorf("expected tile size 256 from flag, got %f", cfg.Mesh.TileSize)
	}

	// Box height should come from the file since no flag overrides it.
	if cfg.Editor.BoxHeight != 20 {
		t.Errorf("expected box height 20 from file, got %f", cfg.Editor.BoxHeight)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "meshgen.yaml")

	cfg := Default()
	cfg.Mesh.TileSize = 42
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Mesh.TileSize != 42 {
		t.Errorf("expected tile size 42 after round-trip, got %f", loaded.Mesh.TileSize)
	}
}
