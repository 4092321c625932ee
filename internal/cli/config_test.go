package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func setConfigHome(t *testing.T, dir string) {
	t.Helper()
	old, had := os.LookupEnv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", dir)
	t.Cleanup(func() {
		if had {
			os.Setenv("XDG_CONFIG_HOME", old)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	})
}

func TestConfigPathXDG(t *testing.T) {
	setConfigHome(t, "/tmp/custom-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() = %q, want %q", path, expected)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	setConfigHome(t, t.TempDir())

	cfg, err := loadFileConfig()
	if err != nil {
		t.Fatalf("loadFileConfig() with no file should not error, got: %v", err)
	}
	if cfg.Render.InitialRadius != 0 {
		t.Errorf("missing config should be zero value, got InitialRadius = %v", cfg.Render.InitialRadius)
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	setConfigHome(t, dir)

	content := `
[render]
initial_radius = 50.0
level_step = 30.0
colors = ["#ff0000", "#00ff00"]
stroke = "#ffffff"
wrap = true

[serve]
addr = ":9090"
redis_addr = "localhost:6379"
mongo_db = "diagrams"
`
	cfgDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFileConfig()
	if err != nil {
		t.Fatalf("loadFileConfig() error: %v", err)
	}

	if cfg.Render.InitialRadius != 50.0 {
		t.Errorf("InitialRadius = %v, want 50.0", cfg.Render.InitialRadius)
	}
	if cfg.Render.LevelStep != 30.0 {
		t.Errorf("LevelStep = %v, want 30.0", cfg.Render.LevelStep)
	}
	if len(cfg.Render.Colors) != 2 {
		t.Errorf("Colors length = %d, want 2", len(cfg.Render.Colors))
	}
	if !cfg.Render.Wrap {
		t.Error("Wrap should be true")
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9090")
	}
	if cfg.Serve.RedisAddr != "localhost:6379" {
		t.Errorf("Serve.RedisAddr = %q, want %q", cfg.Serve.RedisAddr, "localhost:6379")
	}
	if cfg.Serve.MongoDB != "diagrams" {
		t.Errorf("Serve.MongoDB = %q, want %q", cfg.Serve.MongoDB, "diagrams")
	}
}

func TestLoadFileConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	setConfigHome(t, dir)

	cfgDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFileConfig(); err == nil {
		t.Error("loadFileConfig() with malformed file should error")
	}
}
