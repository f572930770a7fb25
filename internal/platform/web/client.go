package web

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
)

// client bridges one websocket connection and its session.
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	session *session.Session
	logger  *log.Logger
}

func newClient(id string, conn *websocket.Conn, logger *log.Logger) *client {
	return &client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger.With("session", id),
	}
}

// queue enqueues a message without blocking the session goroutine.
// Messages are dropped when the browser cannot keep up.
func (c *client) queue(msg []byte) {
	select {
	case <-c.session.Done():
	case c.send <- msg:
	default:
		c.logger.Debug("outgoing message dropped")
	}
}

func (c *client) sendState(s snake.Snapshot) {
	msg, err := encodeState(s)
	if err != nil {
		c.logger.Error("cannot encode state", "err", err)
		return
	}
	c.queue(msg)
}

// readPump forwards browser messages to the session until the connection
// fails, then stops the session.
func (c *client) readPump() {
	defer c.session.Stop()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "err", err)
			}
			return
		}

		action, err := parseClientMessage(data)
		if err != nil {
			c.queue(encodeError(err))
			continue
		}
		c.session.Send(action)
	}
}

// writePump writes queued messages and pings until the session ends.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("write failed", "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.session.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
