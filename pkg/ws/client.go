package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	UserID string

	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, userID string) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, 128),
		done:   make(chan struct{}),
	}

	go c.runWriter()
	return c
}

// Wait blocks until the peer closes the connection. Incoming frames are
// discarded; the hub is push-only.
func (c *Client) Wait() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.Close()
			return
		}
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) runWriter() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
