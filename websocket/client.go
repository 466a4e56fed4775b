package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Client wraps a browser connection with a buffered write pump so concurrent
// senders never interleave frames.
type Client struct {
	conn *websocket.Conn
	send chan interface{}

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan interface{}, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues a JSON payload for delivery. Returns an error when the client
// is gone or its buffer is full.
func (c *Client) Send(v interface{}) error {
	select {
	case <-c.done:
		return errors.New("client closed")
	case c.send <- v:
		return nil
	default:
		return errors.New("client send buffer full")
	}
}

// WritePump drains the send queue onto the socket. Run it on its own
// goroutine; it exits when the client closes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadJSON reads the next inbound message into v.
func (c *Client) ReadJSON(v interface{}) error {
	return c.conn.ReadJSON(v)
}

// Close shuts the write pump down. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
