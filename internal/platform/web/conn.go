package web

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4 << 10
)

// ClientConn is a thin wrapper that writes queued messages to the client.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
	log  *zap.SugaredLogger
}

// NewClientConn wraps an upgraded websocket.
func NewClientConn(ws *websocket.Conn, log *zap.SugaredLogger) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
		log:  log,
	}
}

// Enqueue queues a message without blocking. When the client falls behind
// the frame is dropped; the next one supersedes it anyway.
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

// Close ends the write pump. It must be called by the goroutine that
// calls Enqueue, once it is done sending.
func (c *ClientConn) Close() {
	close(c.send)
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes client messages into the session until the connection
// fails, then calls done.
func (c *ClientConn) readPump(session *Session, done func()) {
	defer done()
	c.ws.SetReadLimit(maxMessage)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debugw("read", "error", err)
			}
			return
		}
		msg, err := DecodeClientMessage(payload)
		if err != nil {
			c.log.Debugw("ignoring message", "error", err)
			continue
		}
		if !session.Push(msg) {
			c.log.Warnw("input queue full, dropping message", "type", msg.Type)
		}
	}
}
