// Package config provides TOML configuration loading and path helpers.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration. Every field has a default;
// the TOML file only overrides what it names.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Camera    CameraConfig    `toml:"camera"`
	Detection DetectionConfig `toml:"detection"`
	Stability StabilityConfig `toml:"stability"`
	Engine    EngineConfig    `toml:"engine"`
	Paths     PathsConfig     `toml:"paths"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CameraConfig maps local camera pipeline settings.
type CameraConfig struct {
	Device          int     `toml:"device"`
	MotionThreshold float64 `toml:"motion-threshold"`
}

// DetectionConfig maps hand detector settings.
type DetectionConfig struct {
	MaxHands      int     `toml:"max-hands"`
	MinConfidence float64 `toml:"min-confidence"`
}

// StabilityConfig maps the dwell thresholds of the stability tracker.
type StabilityConfig struct {
	MinConfidence   float64 `toml:"min-confidence"`
	ZoneStabilityMs int64   `toml:"zone-stability-ms"`
	SyaddahHoldMs   int64   `toml:"syaddah-hold-ms"`
}

// EngineConfig maps progression engine settings.
type EngineConfig struct {
	CooldownMs int64 `toml:"cooldown-ms"`
}

// PathsConfig maps filesystem locations. Empty values select the
// defaults under the XDG directories.
type PathsConfig struct {
	Database   string `toml:"database"`
	AudioDir   string `toml:"audio-dir"`
	WebDir     string `toml:"web-dir"`
	Curriculum string `toml:"curriculum"`
	HookDir    string `toml:"hook-dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Camera: CameraConfig{
			Device:          0,
			MotionThreshold: 1.0,
		},
		Detection: DetectionConfig{
			MaxHands:      2,
			MinConfidence: 0.5,
		},
		Stability: StabilityConfig{
			MinConfidence:   0.55,
			ZoneStabilityMs: 700,
			SyaddahHoldMs:   1200,
		},
		Engine: EngineConfig{
			CooldownMs: 500,
		},
		Paths: PathsConfig{
			Database: DefaultDBPath(),
			AudioDir: DefaultAudioDir(),
			HookDir:  DefaultHookDir(),
		},
	}
}

// Load reads a TOML config from the given path over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
