package scenes

import (
	"testing"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/physics"
)

func TestWorld(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		expected physics.Rect
	}{
		{"default terminal", 80, 24, physics.NewRect(0, 1, 80, 23)},
		{"grown to minimum", 10, 5, physics.NewRect(0, 1, MinWidth, MinHeight-1)},
		{"zero size", 0, 0, physics.NewRect(0, 1, MinWidth, MinHeight-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := World(core.RuntimeConfig{ScreenW: tt.w, ScreenH: tt.h})
			if got != tt.expected {
				t.Errorf("World() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestMustEngineAppliesResolverOverride(t *testing.T) {
	world := World(core.DefaultConfig())
	ec := config.EngineConfig{Resolver: string(config.ResolverImpulse)}

	if e := MustEngine(world, ec); e.Simple() {
		t.Error("MustEngine() picked the simple resolver without an override")
	}

	SetResolverPreset(config.ResolverSimple)
	defer SetResolverPreset("")

	e := MustEngine(world, ec)
	if !e.Simple() {
		t.Error("MustEngine() ignored the simple override")
	}
	if ResolverLabel(e) != "simple" {
		t.Errorf("ResolverLabel() = %q, expected simple", ResolverLabel(e))
	}
}

func TestConfigPath(t *testing.T) {
	SetConfigPath("test-scene", "/tmp/custom.yaml")
	defer SetConfigPath("test-scene", "")

	if got := ConfigPath("test-scene"); got != "/tmp/custom.yaml" {
		t.Errorf("ConfigPath() = %q, expected /tmp/custom.yaml", got)
	}
	if got := ConfigPath("other"); got != "" {
		t.Errorf("ConfigPath(other) = %q, expected empty", got)
	}
}

func TestDrawBodyAndHUD(t *testing.T) {
	screen := core.NewScreen(20, 5)
	p := physics.NewProxy(physics.NewRect(2, 2, 3, 2), physics.Vector2D{}, nil)

	DrawBody(screen, p, '#', core.ColorRed)
	DrawHUD(screen, "left", "right")

	if screen.Get(2, 2) != '#' || screen.Get(4, 3) != '#' {
		t.Error("DrawBody() did not fill the body cells")
	}
	if screen.Get(5, 2) != ' ' {
		t.Error("DrawBody() drew past the body")
	}
	if cell := screen.GetCell(3, 3); cell.Color != core.ColorRed {
		t.Errorf("GetCell().Color = %v, expected red", cell.Color)
	}

	expected := " left         right "
	if got := screen.Row(0); got != expected {
		t.Errorf("Row(0) = %q, expected %q", got, expected)
	}
}
