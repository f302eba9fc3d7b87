// Package bridge is the control-plane half of the command-correlation core:
// it owns the single runtime connection, assigns request identifiers,
// matches responses to in-flight requests, and serves stale scene state when
// read-only queries outlive their deadline.
package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/louisbranch/scenebridge/internal/errors"
	"github.com/louisbranch/scenebridge/internal/protocol"
)

// Bridge is the explicit handle threaded through the control surface; it is
// constructed once per process, never retrieved through a global.
type Bridge struct {
	manager    *Manager
	correlator *Correlator
	last       *LastState
	timeout    time.Duration
}

// New creates a bridge with the given default per-request timeout.
func New(timeout time.Duration) *Bridge {
	last := &LastState{}
	correlator := NewCorrelator(last)
	return &Bridge{
		manager:    NewManager(correlator, last),
		correlator: correlator,
		last:       last,
		timeout:    timeout,
	}
}

// Manager exposes the connection manager for the accept endpoint.
func (b *Bridge) Manager() *Manager {
	return b.manager
}

// LastState exposes the scene cache for read-only consumers.
func (b *Bridge) LastState() *LastState {
	return b.last
}

// Send issues one correlated command and waits for its outcome: the matched
// response, a stale-scene fallback for timed-out queries, or an error. It
// fails immediately with NOT_CONNECTED while no runtime is attached.
func (b *Bridge) Send(ctx context.Context, action string, payload any) (*protocol.Response, error) {
	if !b.manager.Connected() {
		return nil, errors.New(errors.CodeNotConnected, "runtime is not connected")
	}

	id := b.correlator.NextID()
	data, err := (protocol.Command{Action: action, RequestID: id, Payload: payload}).Encode()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, err, "encode %s", action)
	}

	ch := b.correlator.Track(id, action, b.timeout)
	if err := b.manager.Send(data); err != nil {
		b.correlator.Cancel(id)
		return nil, err
	}

	select {
	case out := <-ch:
		return out.resp, out.err
	case <-ctx.Done():
		b.correlator.Cancel(id)
		return nil, ctx.Err()
	}
}

// Notify transmits an uncorrelated command: no identifier, no pending entry,
// no response expected.
func (b *Bridge) Notify(action string, payload any) error {
	data, err := (protocol.Command{Action: action, Payload: payload}).Encode()
	if err != nil {
		return errors.Wrap(errors.CodeInvalidArgument, err, "encode %s", action)
	}
	return b.manager.Send(data)
}

// Status describes the connection state for the control surface.
type Status struct {
	Connected  bool      `json:"connected"`
	Pending    int       `json:"pending"`
	LastError  string    `json:"lastError,omitempty"`
	LastSeenAt time.Time `json:"lastSceneAt,omitzero"`
	HasScene   bool      `json:"hasScene"`
}

// Status reports connection and cache state.
func (b *Bridge) Status() Status {
	var sceneAt time.Time
	_, at, ok := b.last.Value()
	if ok {
		sceneAt = at
	}
	st := Status{
		Connected:  b.manager.Connected(),
		Pending:    b.correlator.PendingCount(),
		LastSeenAt: sceneAt,
		HasScene:   ok,
	}
	if err := b.manager.LastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

// Scene returns the cached scene payload, decoded, when one exists.
func (b *Bridge) Scene() (protocol.SceneState, bool) {
	raw, _, ok := b.last.Value()
	if !ok {
		return protocol.SceneState{}, false
	}
	var state protocol.SceneState
	if err := json.Unmarshal(raw, &state); err != nil {
		return protocol.SceneState{}, false
	}
	return state, true
}

// Close shuts the bridge down, failing every in-flight request first.
func (b *Bridge) Close() error {
	return b.manager.Close()
}
