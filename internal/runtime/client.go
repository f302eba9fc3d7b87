package runtime

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/louisbranch/scenebridge/internal/errors"
)

const (
	reconnectMin = 500 * time.Millisecond
	reconnectMax = 10 * time.Second
)

// Client maintains the single outbound link to the bridge, redialing with
// backoff whenever it drops. It implements Sender for the frame loop; frames
// sent while disconnected are dropped, the bridge resolves them by timeout.
type Client struct {
	url  string
	loop *Loop

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a client dialing url and feeding inbound frames to loop.
func NewClient(url string, loop *Loop) *Client {
	return &Client{url: url, loop: loop}
}

// Send writes one frame on the current connection.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New(errors.CodeNotConnected, "bridge link is down")
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Run dials and reads until the context ends, reconnecting with exponential
// backoff after every failure.
func (c *Client) Run(ctx context.Context) error {
	backoff := reconnectMin
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			log.Printf("runtime: dial %s: %v", c.url, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, reconnectMax)
			continue
		}

		log.Printf("runtime: connected to %s", c.url)
		backoff = reconnectMin
		c.setConn(conn)
		c.readLoop(ctx, conn)
		c.setConn(nil)
		conn.Close()

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// readLoop feeds inbound frames to the frame loop until the connection or
// the context dies.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("runtime: bridge link lost: %v", err)
			return
		}
		c.loop.Submit(data)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}
