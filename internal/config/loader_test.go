package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	bounce, err := decode(GetDefaultYAML("bounce"), DefaultBounceConfig)
	if err != nil {
		t.Fatalf("decode(bounce) failed: %v", err)
	}
	if bounce != DefaultBounceConfig() {
		t.Errorf("embedded bounce = %+v, expected %+v", bounce, DefaultBounceConfig())
	}

	pong, err := decode(GetDefaultYAML("pong"), DefaultPongConfig)
	if err != nil {
		t.Fatalf("decode(pong) failed: %v", err)
	}
	if pong != DefaultPongConfig() {
		t.Errorf("embedded pong = %+v, expected %+v", pong, DefaultPongConfig())
	}

	pillars, err := decode(GetDefaultYAML("pillars"), DefaultPillarsConfig)
	if err != nil {
		t.Fatalf("decode(pillars) failed: %v", err)
	}
	if pillars != DefaultPillarsConfig() {
		t.Errorf("embedded pillars = %+v, expected %+v", pillars, DefaultPillarsConfig())
	}

	if GetDefaultYAML("unknown") != nil {
		t.Error("GetDefaultYAML(unknown) should be nil")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	for name, cfg := range map[string]validator{
		"bounce":  DefaultBounceConfig(),
		"pong":    DefaultPongConfig(),
		"pillars": DefaultPillarsConfig(),
	} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s defaults: Validate() = %v", name, err)
		}
	}
}

func TestLoadCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounce.yaml")
	writeFile(t, path, "bodies:\n  count: 3\nengine:\n  resolver: simple\n")

	cfg, err := LoadBounce(path)
	if err != nil {
		t.Fatalf("LoadBounce() failed: %v", err)
	}

	if cfg.Bodies.Count != 3 {
		t.Errorf("Bodies.Count = %d, expected 3", cfg.Bodies.Count)
	}
	if !cfg.Engine.Simple() {
		t.Errorf("Engine.Resolver = %q, expected simple", cfg.Engine.Resolver)
	}
	if cfg.Bodies.MaxSize != DefaultBounceConfig().Bodies.MaxSize {
		t.Errorf("Bodies.MaxSize = %v, expected default %v", cfg.Bodies.MaxSize, DefaultBounceConfig().Bodies.MaxSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPong(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadPong() with missing file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "ball: [not, a, map\n")
	if _, err := LoadPong(broken); err == nil {
		t.Error("LoadPong() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "engine:\n  resolver: verlet\n")
	_, err := LoadPillars(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadPillars() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong() failed: %v", err)
	}
	if cfg != DefaultPongConfig() {
		t.Errorf("LoadPong() = %+v, expected defaults", cfg)
	}

	// Local ./configs wins over the embedded default.
	writeFile(t, filepath.Join(work, "configs", "pong.yaml"), "gameplay:\n  win_score: 9\n")
	cfg, _ = LoadPong("")
	if cfg.Gameplay.WinScore != 9 {
		t.Errorf("WinScore = %d, expected 9 from ./configs", cfg.Gameplay.WinScore)
	}

	// User config wins over ./configs.
	writeFile(t, filepath.Join(home, ".boxsim", "configs", "pong.yaml"), "gameplay:\n  win_score: 2\n")
	cfg, _ = LoadPong("")
	if cfg.Gameplay.WinScore != 2 {
		t.Errorf("WinScore = %d, expected 2 from ~/.boxsim", cfg.Gameplay.WinScore)
	}

	// A broken user config is skipped.
	writeFile(t, filepath.Join(home, ".boxsim", "configs", "pong.yaml"), "gameplay:\n  win_score: 0\n")
	cfg, _ = LoadPong("")
	if cfg.Gameplay.WinScore != 9 {
		t.Errorf("WinScore = %d, expected 9 after skipping invalid user config", cfg.Gameplay.WinScore)
	}
}

func TestParseResolverPreset(t *testing.T) {
	tests := []struct {
		in       string
		expected ResolverPreset
		wantErr  bool
	}{
		{"", "", false},
		{"impulse", ResolverImpulse, false},
		{"simple", ResolverSimple, false},
		{"Simple", "", true},
		{"verlet", "", true},
	}

	for _, tc := range tests {
		got, err := ParseResolverPreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseResolverPreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParseResolverPreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestApplyResolverPreset(t *testing.T) {
	cfg := DefaultPongConfig().Engine
	if !cfg.Simple() {
		t.Fatal("pong defaults to the simple resolver")
	}

	ApplyResolverPreset(&cfg, "")
	if !cfg.Simple() {
		t.Error("empty preset should keep the config's resolver")
	}

	ApplyResolverPreset(&cfg, ResolverImpulse)
	if cfg.Simple() || cfg.Resolver != "impulse" {
		t.Errorf("Resolver = %q, expected impulse", cfg.Resolver)
	}
}
