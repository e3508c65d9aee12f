package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"eventhub/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// CloseEventUnavailable is the close code sent when the target event does
// not exist or is not approved.
const CloseEventUnavailable = 4404

// inboundFrame is the only frame clients may send.
type inboundFrame struct {
	Content string `json:"content"`
}

// chatFrame is broadcast to the room for every persisted message.
type chatFrame struct {
	SenderID string             `json:"senderId"`
	Type     domain.MessageType `json:"type"`
	Content  string             `json:"content"`
}

// noticeFrame signals joins and leaves.
type noticeFrame struct {
	System  bool   `json:"system"`
	Message string `json:"message"`
}

// errorFrame is sent to a single client, never broadcast.
type errorFrame struct {
	Error string `json:"error"`
}

// Client is one websocket connection subscribed to one event's room. Its
// lifecycle is: validated by the HTTP handler, registered with the hub
// (which starts the pumps), then torn down when either pump exits.
type Client struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	eventID  string
	senderID string
	role     domain.Role
	messages domain.MessageService
	logger   *slog.Logger

	// closed is written only by the hub goroutine once the client has been
	// removed from its room.
	closed bool
}

// NewClient creates a Client for the given connection. conn may be nil in
// tests; the hub then skips starting the pumps.
func NewClient(hub *Hub, conn *websocket.Conn, eventID, senderID string, role domain.Role, messages domain.MessageService, logger *slog.Logger) *Client {
	if conn != nil {
		conn.SetReadLimit(maxMessageSize)
	}
	return &Client{
		id:       uuid.NewString(),
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		eventID:  eventID,
		senderID: senderID,
		role:     role,
		messages: messages,
		logger:   logger,
	}
}

// readPump processes inbound frames in arrival order until the connection
// drops, then deregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.logger.Warn("chat read failed", "clientID", c.id, "err", err)
			}
			return
		}

		content := strings.TrimSpace(frame.Content)
		if content == "" {
			continue
		}

		msg, err := c.messages.Post(context.Background(), c.eventID, c.senderID, c.role, content)
		if err != nil {
			if errors.Is(err, domain.ErrMessageLimit) {
				c.reply(errorFrame{Error: fmt.Sprintf("Message limit reached for students (%d).", domain.StudentMessageLimit)})
				continue
			}
			c.logger.Error("persist chat message", "clientID", c.id, "eventID", c.eventID, "err", err)
			continue
		}

		payload, err := encodeFrame(chatFrame{SenderID: msg.SenderID, Type: msg.MessageType, Content: msg.Content})
		if err != nil {
			c.logger.Error("encode chat frame", "clientID", c.id, "err", err)
			continue
		}
		c.hub.Broadcast(c.eventID, payload)
	}
}

// writePump drains the send channel onto the connection and keeps the peer
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub removed this client.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues a frame for this client only.
func (c *Client) reply(frame any) {
	// The send channel is closed by the hub when the client is pruned;
	// recover covers the race between that and a reply in flight.
	defer func() { _ = recover() }()
	payload, err := encodeFrame(frame)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func encodeFrame(frame any) ([]byte, error) {
	return json.Marshal(frame)
}
