package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inkframe/inkframe/backend-go/internal/command"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1 << 20
)

// Client is one websocket connection driving a session. Every message is a
// command.Command and gets exactly one command.Result carrying the same id.
type Client struct {
	conn    *websocket.Conn
	session *session.Session
	send    chan []byte
	ConnID  string
}

func NewClient(conn *websocket.Conn, s *session.Session, connID string) *Client {
	return &Client{
		conn:    conn,
		session: s,
		send:    make(chan []byte, 256),
		ConnID:  connID,
	}
}

// ReadPump handles commands until the connection closes. It is the only
// sender on the send channel and closes it on return.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "conn", c.ConnID)
			return
		}

		var cmd command.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			slog.Warn("invalid message", "error", err, "conn", c.ConnID)
			c.Send(command.Result{Type: command.TypeError, Error: "invalid message"})
			continue
		}

		c.Send(c.handle(cmd))
	}
}

func (c *Client) handle(cmd command.Command) command.Result {
	var res command.Result
	err := c.session.Do(func(e *engine.Editor) error {
		var err error
		res, err = command.Dispatch(e, cmd)
		return err
	})
	if err != nil {
		slog.Debug("command rejected", "type", cmd.Type, "error", err, "conn", c.ConnID)
		return command.Result{ID: cmd.ID, Type: command.TypeError, Error: err.Error()}
	}
	return res
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "conn", c.ConnID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(res command.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		slog.Error("marshal result", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping result", "conn", c.ConnID)
	}
}
