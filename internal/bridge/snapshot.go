package bridge

import (
	"encoding/json"
	"sync"
	"time"
)

// LastState holds the most recent unsolicited scene push from the runtime.
// It is the fallback answer for query-class requests that time out: a stale
// scene beats no scene for read-only questions.
type LastState struct {
	mu    sync.RWMutex
	scene json.RawMessage
	at    time.Time
}

// Update replaces the cached scene payload.
func (l *LastState) Update(scene json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scene = scene
	l.at = time.Now()
}

// Value returns the cached scene payload and when it arrived. ok is false
// when no push has been received yet; the payload is then nil, the
// well-defined "no state yet" value.
func (l *LastState) Value() (scene json.RawMessage, at time.Time, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scene, l.at, l.scene != nil
}
