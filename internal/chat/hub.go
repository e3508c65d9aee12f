// Package chat implements the per-event chat subsystem: a hub that owns the
// room registry and fans out broadcasts, and a client per websocket
// connection.
package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Hub owns the mapping from event ID to the set of live chat clients. All
// registry mutations and broadcasts happen inside Run's goroutine, so the
// rooms map needs no lock; Join, Leave, and Broadcast hand work to that
// goroutine through channels.
type Hub struct {
	logger     *slog.Logger
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastRequest
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

type broadcastRequest struct {
	eventID string
	payload []byte
}

// NewHub creates a Hub. Call Run in its own goroutine before joining clients.
func NewHub(logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		logger:     logger,
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastRequest),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Join adds the client to its event's room and announces it. The room is
// created on first join.
func (h *Hub) Join(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
	}
}

// Leave removes the client from its room and announces the departure to the
// remaining members. A no-op if the client was already removed.
func (h *Hub) Leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Broadcast sends payload to every client currently in the event's room.
func (h *Hub) Broadcast(eventID string, payload []byte) {
	select {
	case h.broadcast <- broadcastRequest{eventID: eventID, payload: payload}:
	case <-h.ctx.Done():
	}
}

// Run is the hub's event loop. It should be called in a separate goroutine
// and runs until Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			room := h.rooms[c.eventID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[c.eventID] = room
			}
			room[c] = true
			h.logger.Info("chat client joined",
				"eventID", c.eventID, "senderID", c.senderID, "clientID", c.id, "roomSize", len(room))
			if c.conn != nil {
				h.wg.Add(2)
				go func() {
					defer h.wg.Done()
					c.writePump()
				}()
				go func() {
					defer h.wg.Done()
					c.readPump()
				}()
			}
			h.deliver(c.eventID, systemNotice(c.senderID+" joined"))

		case c := <-h.unregister:
			if h.remove(c) {
				h.logger.Info("chat client left",
					"eventID", c.eventID, "senderID", c.senderID, "clientID", c.id)
				h.deliver(c.eventID, systemNotice(c.senderID+" left"))
			}

		case req := <-h.broadcast:
			h.deliver(req.eventID, req.payload)
		}
	}
}

// remove deletes c from its room, closes its send channel, and drops the room
// once empty. Returns false if c was already gone.
func (h *Hub) remove(c *Client) bool {
	room, ok := h.rooms[c.eventID]
	if !ok || !room[c] {
		return false
	}
	delete(room, c)
	c.closed = true
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.eventID)
	}
	return true
}

// deliver sends payload to a snapshot of the room. A member that cannot
// accept the payload is treated as dead: it is pruned and announced as left,
// and delivery to the remaining members continues regardless.
func (h *Hub) deliver(eventID string, payload []byte) {
	room := h.rooms[eventID]
	if len(room) == 0 {
		return
	}
	members := make([]*Client, 0, len(room))
	for c := range room {
		members = append(members, c)
	}

	var dead []*Client
	for _, c := range members {
		if c.closed {
			dead = append(dead, c)
			continue
		}
		select {
		case c.send <- payload:
		default:
			dead = append(dead, c)
		}
	}

	for _, c := range dead {
		if h.remove(c) {
			h.logger.Warn("chat client pruned",
				"eventID", c.eventID, "senderID", c.senderID, "clientID", c.id)
			h.deliver(eventID, systemNotice(c.senderID+" left"))
		}
	}
}

// closeAll closes every client connection so the pumps unwind.
func (h *Hub) closeAll() {
	count := 0
	for _, room := range h.rooms {
		for c := range room {
			if c.conn != nil {
				_ = c.conn.Close()
			}
			count++
		}
	}
	h.rooms = make(map[string]map[*Client]bool)
	h.logger.Info("closed chat clients on shutdown", "count", count)
}

// Shutdown stops the hub and waits for client goroutines to finish, up to
// the timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-time.After(timeout):
		h.logger.Warn("chat hub shutdown timed out")
		return context.DeadlineExceeded
	}
}

// systemNotice encodes a join/leave payload not authored by any participant.
func systemNotice(message string) []byte {
	payload, _ := json.Marshal(noticeFrame{System: true, Message: message})
	return payload
}
