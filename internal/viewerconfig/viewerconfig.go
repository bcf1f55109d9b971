// Package viewerconfig holds viewer preferences persisted across runs:
// window size, backdrop grid, HUD overlays, accent color, cache location,
// and the overlay font. Values load from a YAML file and can be overridden
// from the environment.
package viewerconfig

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the viewer config file, relative to the process
// working directory.
const ConfigPath = "config/viewer.yaml"

// Prefs holds viewer-only preferences. Content playlists are runtime input
// and are not persisted here.
type Prefs struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	TargetFPS    int    `yaml:"target_fps"`
	GridVisible  bool   `yaml:"grid_visible"`
	ShowFPS      bool   `yaml:"show_fps"`
	ShowMemAlloc bool   `yaml:"show_memalloc"`
	CacheDir     string `yaml:"cache_dir"`
	FontFamily   string `yaml:"font_family,omitempty"`
	AccentColor  string `yaml:"accent_color,omitempty"` // hex RRGGBB
}

// Default returns default preferences: 1280x720 window, grid on, HUD off.
func Default() Prefs {
	return Prefs{
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
		GridVisible:  true,
		ShowFPS:      false,
		ShowMemAlloc: false,
		CacheDir:     "cache",
		AccentColor:  "1f6feb",
	}
}

// Load reads preferences from ConfigPath and applies environment overrides.
// A missing or invalid file yields Default() (with overrides) and no error;
// the file is not created.
func Load() (Prefs, error) {
	p := Default()
	if data, err := os.ReadFile(ConfigPath); err == nil {
		if err := yaml.Unmarshal(data, &p); err != nil {
			p = Default()
		}
	}
	applyEnv(&p)
	return p, nil
}

// Save writes preferences to ConfigPath, creating the config directory if
// needed.
func Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(ConfigPath), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}

// Environment variables recognized by applyEnv.
const (
	EnvCacheDir    = "VIEWER_CACHE_DIR"
	EnvTargetFPS   = "VIEWER_TARGET_FPS"
	EnvGridVisible = "VIEWER_GRID"
	EnvFontFamily  = "VIEWER_FONT_FAMILY"
)

func applyEnv(p *Prefs) {
	if v := os.Getenv(EnvCacheDir); v != "" {
		p.CacheDir = v
	}
	if v := os.Getenv(EnvTargetFPS); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.TargetFPS = n
		}
	}
	if v := os.Getenv(EnvGridVisible); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.GridVisible = b
		}
	}
	if v := os.Getenv(EnvFontFamily); v != "" {
		p.FontFamily = v
	}
}

// LoadEnvFile reads the given file (e.g. ".env") and sets environment
// variables for each KEY=VALUE line. Empty lines and lines starting with #
// are skipped. A missing file is not an error.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}
