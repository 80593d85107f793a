package session

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client is the server side of one connection. The identity fields and log are
// owned by the client's read loop.
type Client struct {
	ConnID string

	conn    LineConn
	send    chan string
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	log     *zap.Logger

	playerID   string
	playerName string
	roomID     string
}

func newClient(connID string, conn LineConn, buffer int, limiter *rate.Limiter) *Client {
	return &Client{
		ConnID:  connID,
		conn:    conn,
		send:    make(chan string, buffer),
		done:    make(chan struct{}),
		limiter: limiter,
		log:     zap.L().With(zap.String("conn_id", connID), zap.String("remote_addr", conn.RemoteAddr())),
	}
}

func (c *Client) loggedIn() bool { return c.playerID != "" }

// enqueue queues a line without blocking.
func (c *Client) enqueue(line string) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- line:
		return true
	default:
		return false
	}
}

// reply queues a response to this client.
func (c *Client) reply(line string) {
	if !c.enqueue(line) {
		c.log.Warn("Client send buffer full, dropping reply")
	}
}

// close stops the write pump and releases the transport.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump drains the send buffer onto the transport until the client closes.
func (c *Client) writePump() {
	defer c.close()
	log := zap.L().With(zap.String("conn_id", c.ConnID))

	for {
		select {
		case line := <-c.send:
			if err := c.conn.WriteLine(line); err != nil {
				log.Debug("Client write failed", zap.Error(err))
				return
			}
		case <-c.done:
			return
		}
	}
}
