package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the optional TOML configuration loaded from
// ~/.config/sunburst/config.toml. Flags always win over file values.
type fileConfig struct {
	Render renderConfig `toml:"render"`
	Serve  serveConfig  `toml:"serve"`
}

type renderConfig struct {
	InitialRadius float64  `toml:"initial_radius"`
	LevelStep     float64  `toml:"level_step"`
	Colors        []string `toml:"colors"`
	Stroke        string   `toml:"stroke"`
	StrokeWidth   float64  `toml:"stroke_width"`
	Wrap          bool     `toml:"wrap"`
}

type serveConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
	MongoDB   string `toml:"mongo_db"`
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadFileConfig reads the config file. A missing file is not an error.
func loadFileConfig() (fileConfig, error) {
	var cfg fileConfig
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
