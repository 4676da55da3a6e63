package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dtroode/attendance-server/internal/realtime"
)

// maxFrameSize bounds inbound client frames. Clients only send heartbeats.
const maxFrameSize = 4096

var _ realtime.FrameConn = (*conn)(nil)

// conn adapts a gorilla connection to realtime.FrameConn. Writes are
// serialized; reads happen on the single goroutine running Serve.
type conn struct {
	id           string
	ws           *websocket.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn, writeTimeout time.Duration) *conn {
	ws.SetReadLimit(maxFrameSize)
	return &conn{
		id:           uuid.NewString(),
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

func (c *conn) ID() string {
	return c.id
}

func (c *conn) Send(ctx context.Context, msg realtime.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return realtime.ErrConnectionClosed
	}

	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.ws.WriteJSON(msg)
}

func (c *conn) ReadFrame() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

// Close sends a close frame and releases the socket. It is safe to call more
// than once.
func (c *conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(c.writeTimeout))
	return c.ws.Close()
}
