package runtime

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/scene"
)

// spinEntry rotates one node at a fixed rate, in degrees per second per axis.
type spinEntry struct {
	node *scene.Node
	rate math32.Vector3
}

// Spinner owns the per-frame rotation effects, keyed by object name. Like the
// rest of the scene state it is touched only from the frame-loop goroutine.
type Spinner struct {
	entries map[string]*spinEntry
}

// NewSpinner creates an empty effect table.
func NewSpinner() *Spinner {
	return &Spinner{entries: map[string]*spinEntry{}}
}

// Start registers node under name, replacing any existing entry for it.
func (s *Spinner) Start(name string, node *scene.Node, rate math32.Vector3) {
	s.entries[name] = &spinEntry{node: node, rate: rate}
}

// Stop removes the entry for name, reporting whether one existed.
func (s *Spinner) Stop(name string) bool {
	_, ok := s.entries[name]
	delete(s.entries, name)
	return ok
}

// Active returns the number of registered effects.
func (s *Spinner) Active() int {
	return len(s.entries)
}

// Advance rotates every registered node by rate*dt and reports whether
// anything moved.
func (s *Spinner) Advance(dt time.Duration) bool {
	if len(s.entries) == 0 {
		return false
	}
	secs := float32(dt.Seconds())
	for _, e := range s.entries {
		e.node.Rotation = e.node.Rotation.Add(e.rate.MulScalar(secs))
	}
	return true
}
