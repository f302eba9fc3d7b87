package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/louisbranch/scenebridge/internal/errors"
	"github.com/louisbranch/scenebridge/internal/protocol"
)

// outcome is the single resolution of one pending request: a matched
// response, a fallback answer, or an error.
type outcome struct {
	resp *protocol.Response
	err  error
}

// pendingRequest exists from the moment a correlated command is sent until
// it is resolved, rejected, or purged. Owned exclusively by the Correlator.
type pendingRequest struct {
	action string
	ch     chan outcome
	timer  *time.Timer
}

// Correlator matches runtime responses to their originating requests. Each
// pending entry owns an independent deadline timer; timer firing and
// response arrival race, and whichever removes the table entry first wins —
// the loser's effect is a no-op.
//
// One time.AfterFunc per request is a documented scaling boundary: fine for
// a single connection with tens of in-flight requests, replace with a
// deadline heap before multiplexing thousands.
type Correlator struct {
	last *LastState

	mu    sync.Mutex
	table map[string]*pendingRequest
	next  atomic.Uint64
}

// NewCorrelator creates a correlator using last as the query-timeout
// fallback source.
func NewCorrelator(last *LastState) *Correlator {
	return &Correlator{last: last, table: make(map[string]*pendingRequest)}
}

// NextID returns a fresh request identifier, unique and monotonically
// distinguishable for the lifetime of this correlator.
func (c *Correlator) NextID() string {
	return fmt.Sprintf("req-%d", c.next.Add(1))
}

// Track registers a pending entry for id with a deadline. The returned
// channel delivers exactly one outcome.
func (c *Correlator) Track(id, action string, timeout time.Duration) <-chan outcome {
	p := &pendingRequest{action: action, ch: make(chan outcome, 1)}
	c.mu.Lock()
	// Arm the timer under the lock so an immediate firing blocks on expire
	// until the entry is visible with its timer set.
	p.timer = time.AfterFunc(timeout, func() { c.expire(id) })
	c.table[id] = p
	c.mu.Unlock()
	return p.ch
}

// Resolve delivers a response to the pending entry sharing its identifier.
// First match wins; a duplicate or late response for an already-resolved id
// is discarded.
func (c *Correlator) Resolve(resp *protocol.Response) {
	p := c.take(resp.RequestID)
	if p == nil {
		return
	}
	p.timer.Stop()
	p.ch <- outcome{resp: resp}
}

// expire handles a deadline firing: query-class actions fall back to the
// last scene push, everything else rejects with a timeout.
func (c *Correlator) expire(id string) {
	p := c.take(id)
	if p == nil {
		return
	}
	if protocol.IsQueryAction(p.action) {
		scene, _, _ := c.last.Value()
		p.ch <- outcome{resp: &protocol.Response{Success: true, Data: scene, Stale: true}}
		return
	}
	p.ch <- outcome{err: errors.New(errors.CodeTimeout, "no response for %s (%s)", id, p.action)}
}

// Cancel drops a pending entry without resolving it, for requests whose
// transmission failed or whose caller gave up.
func (c *Correlator) Cancel(id string) {
	if p := c.take(id); p != nil {
		p.timer.Stop()
	}
}

// FailAll rejects every pending entry with the given reason and clears the
// table. Connection loss is the single cancellation signal in this system.
func (c *Correlator) FailAll(reason error) {
	c.mu.Lock()
	drained := c.table
	c.table = make(map[string]*pendingRequest)
	c.mu.Unlock()
	for _, p := range drained {
		if p.timer != nil {
			p.timer.Stop()
		}
		p.ch <- outcome{err: reason}
	}
}

// PendingCount returns the number of in-flight requests.
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table)
}

// take atomically removes and returns the entry for id, or nil when it was
// already resolved.
func (c *Correlator) take(id string) *pendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.table[id]
	if !ok {
		return nil
	}
	delete(c.table, id)
	return p
}
