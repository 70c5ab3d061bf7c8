// Package scenes holds the pieces shared by every simulation scene: the
// CLI-provided options, world sizing and body rendering.
package scenes

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/physics"
)

// HUDRows is the number of screen rows above the world reserved for status text.
const HUDRows = 1

// Smallest world the scenes lay themselves out in. Smaller terminals see a
// clipped view of it.
const (
	MinWidth  = 40
	MinHeight = 12
)

var (
	optsMu      sync.RWMutex
	configPaths = make(map[string]string)
	resolver    config.ResolverPreset
)

// SetConfigPath sets the custom config path a scene loads on Reset.
func SetConfigPath(sceneID, path string) {
	optsMu.Lock()
	defer optsMu.Unlock()
	configPaths[sceneID] = path
}

// ConfigPath returns the custom config path set for sceneID, if any.
func ConfigPath(sceneID string) string {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return configPaths[sceneID]
}

// SetResolverPreset overrides the resolver of every scene config. An empty
// preset keeps what the config files say.
func SetResolverPreset(p config.ResolverPreset) {
	optsMu.Lock()
	defer optsMu.Unlock()
	resolver = p
}

// ResolverPreset returns the current resolver override.
func ResolverPreset() config.ResolverPreset {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return resolver
}

// World returns the physics region for a runtime config: the screen below
// the HUD, grown to the minimum scene size.
func World(cfg core.RuntimeConfig) physics.Rect {
	w := max(cfg.ScreenW, MinWidth)
	h := max(cfg.ScreenH, MinHeight) - HUDRows
	return physics.NewRect(0, HUDRows, float64(w), float64(h))
}

// MustEngine builds an engine over world using the configured resolver,
// with the CLI override applied. It panics if world is degenerate, which
// cannot happen for a region returned by World.
func MustEngine(world physics.Rect, ec config.EngineConfig) *physics.Engine {
	config.ApplyResolverPreset(&ec, ResolverPreset())
	e, err := physics.NewEngine(world, ec.Simple())
	if err != nil {
		panic(fmt.Sprintf("scenes: %v", err))
	}
	return e
}

// Cells maps a body box to the screen cells it covers.
func Cells(r physics.Rect) core.Rect {
	return core.CellRect(r.Left(), r.Top(), r.Width(), r.Height())
}

// DrawBody fills the cells covered by p with glyph.
func DrawBody(dst *core.Screen, p *physics.Proxy, glyph rune, c core.Color) {
	dst.DrawRectColored(Cells(p.OuterBox), glyph, c)
}

// DrawHUD writes left-aligned and right-aligned status text on the top row.
func DrawHUD(dst *core.Screen, left, right string) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')
	dst.DrawText(1, 0, left)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

// ResolverLabel names the engine's active resolver for the HUD.
func ResolverLabel(e *physics.Engine) string {
	if e != nil && e.Simple() {
		return string(config.ResolverSimple)
	}
	return string(config.ResolverImpulse)
}
