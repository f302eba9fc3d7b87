package bridge

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/louisbranch/scenebridge/internal/errors"
	"github.com/louisbranch/scenebridge/internal/protocol"
)

// Manager owns the single inbound runtime connection. A second inbound
// connection silently replaces the first; pending requests are not purged by
// the replacement itself — requests stranded on the old connection resolve
// by timeout, and a purge fires only when the current connection closes.
type Manager struct {
	correlator *Correlator
	last       *LastState

	mu        sync.Mutex
	conn      *websocket.Conn
	connectCh chan struct{}
	lastErr   error
	closed    bool

	writeMu sync.Mutex
}

// NewManager creates a manager resolving frames through correlator and
// caching pushes in last.
func NewManager(correlator *Correlator, last *LastState) *Manager {
	return &Manager{
		correlator: correlator,
		last:       last,
		connectCh:  make(chan struct{}),
	}
}

// Attach adopts a freshly accepted connection, replacing and closing any
// previous one, and starts its read pump.
func (m *Manager) Attach(conn *websocket.Conn) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	prev := m.conn
	m.conn = conn
	m.lastErr = nil
	if prev == nil {
		// Signal waiters; while connected the channel stays closed.
		close(m.connectCh)
	}
	m.mu.Unlock()

	if prev != nil {
		log.Printf("bridge: runtime reconnected, replacing previous connection")
		prev.Close()
	} else {
		log.Printf("bridge: runtime connected from %s", conn.RemoteAddr())
	}
	go m.readPump(conn)
}

// readPump drains one connection until it fails, classifying each frame as
// a correlated response or an unsolicited scene push.
func (m *Manager) readPump(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.dropped(conn, err)
			return
		}
		resp, scene, err := protocol.ClassifyInbound(data)
		if err != nil {
			log.Printf("bridge: dropping malformed frame: %v", err)
			continue
		}
		switch {
		case resp != nil:
			m.correlator.Resolve(resp)
		case scene != nil:
			m.last.Update(scene)
		}
	}
}

// dropped handles a read-pump exit. Only the closure of the connection that
// is still current disconnects the bridge and fails pending requests; a
// replaced connection's exit is not a cancellation signal.
func (m *Manager) dropped(conn *websocket.Conn, cause error) {
	m.mu.Lock()
	if m.conn != conn {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.lastErr = cause
	m.connectCh = make(chan struct{})
	m.mu.Unlock()

	log.Printf("bridge: runtime disconnected: %v", cause)
	m.correlator.FailAll(errors.Wrap(errors.CodeConnectionClosed, cause, "runtime connection closed"))
}

// Connected reports whether a runtime connection is currently held.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// LastError returns the error that ended the previous connection, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// WaitForClient blocks until a runtime connection is held or the timeout
// elapses. Connection is signaled, not polled.
func (m *Manager) WaitForClient(timeout time.Duration) error {
	m.mu.Lock()
	if m.conn != nil {
		m.mu.Unlock()
		return nil
	}
	ch := m.connectCh
	m.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-time.After(timeout):
		return errors.New(errors.CodeNotConnected, "no client connected within %s", timeout)
	}
}

// Send transmits one text frame to the runtime. It fails immediately while
// disconnected: commands are never queued for a future connection.
func (m *Manager) Send(data []byte) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return errors.New(errors.CodeNotConnected, "runtime is not connected")
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(errors.CodeConnectionClosed, err, "write to runtime")
	}
	return nil
}

// Close synchronously fails every pending request, then drops the
// connection. The manager accepts no further connections afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	m.correlator.FailAll(errors.New(errors.CodeConnectionClosed, "bridge shutting down"))
	if conn != nil {
		return conn.Close()
	}
	return nil
}
