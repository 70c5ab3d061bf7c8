package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ProxyState is the recorded state of one proxy.
type ProxyState struct {
	ID       int
	Center   Vector2D
	Size     Vector2D
	Velocity Vector2D
	Static   bool
}

// Snapshot captures the engine state for replay comparison and storage.
// Uses primitive values only so it can be compared and hashed stably.
type Snapshot struct {
	Tick    int
	Stats   Stats
	Proxies []ProxyState
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    e.stats.Ticks,
		Stats:   e.stats,
		Proxies: make([]ProxyState, len(e.proxies)),
	}
	for i, p := range e.proxies {
		snap.Proxies[i] = ProxyState{
			ID:       p.ID,
			Center:   p.OuterBox.Center,
			Size:     p.OuterBox.Size,
			Velocity: p.Velocity,
			Static:   p.Static,
		}
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot.
// Floats are hashed by their bit patterns, so two runs hash equal only if they
// are bit-for-bit identical.
func (s Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- hash computation
		d.Write(buf[:])                                   //nolint:errcheck // xxhash never fails
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		d.Write(buf[:]) //nolint:errcheck // xxhash never fails
	}

	writeInt(s.Tick)
	writeInt(s.Stats.Collisions)
	writeInt(s.Stats.WorldCollisions)
	writeInt(len(s.Proxies))
	for _, p := range s.Proxies {
		writeInt(p.ID)
		writeFloat(p.Center.X)
		writeFloat(p.Center.Y)
		writeFloat(p.Size.X)
		writeFloat(p.Size.Y)
		writeFloat(p.Velocity.X)
		writeFloat(p.Velocity.Y)
		if p.Static {
			writeInt(1)
		} else {
			writeInt(0)
		}
	}
	return d.Sum64()
}

// KineticEnergy returns the total 0.5*m*v² of the dynamic proxies, with mass
// equal to box area.
func (s Snapshot) KineticEnergy() float64 {
	var total float64
	for _, p := range s.Proxies {
		if p.Static {
			continue
		}
		total += 0.5 * p.Size.X * p.Size.Y * p.Velocity.LengthSq()
	}
	return total
}
