package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"eventhub/internal/chat"
	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// ListMessagesSuccessResponse is the success response envelope for GET /events/{eventID}/messages (200).
type ListMessagesSuccessResponse struct {
	Data  []*domain.Message `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ChatController handles the websocket chat endpoint and message history.
type ChatController struct {
	Logger   *slog.Logger
	Hub      *chat.Hub
	Events   domain.EventService
	Messages domain.MessageService
	upgrader websocket.Upgrader
}

// NewChatController creates a ChatController. checkOrigin decides whether a
// websocket handshake origin is acceptable; nil allows all origins.
func NewChatController(logger *slog.Logger, hub *chat.Hub, events domain.EventService, messages domain.MessageService, checkOrigin func(r *http.Request) bool) *ChatController {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &ChatController{
		Logger:   logger,
		Hub:      hub,
		Events:   events,
		Messages: messages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeWS godoc
// @Summary Join an event's chat room
// @Description Upgrades the connection to a websocket and joins the event's chat room. The connection is closed with code 4404 when the event does not exist or is not approved.
// @Tags chat
// @Param eventID path string true "Event ID"
// @Param sender_id query string true "Sender ID"
// @Param role query string false "Sender role (default student)"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /ws/events/{eventID} [get]
func (c *ChatController) ServeWS(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	senderID := r.URL.Query().Get("sender_id")
	if senderID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "sender_id is required")
		return
	}
	role := domain.Role(r.URL.Query().Get("role"))
	if role == "" {
		role = domain.RoleStudent
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		c.Logger.Warn("websocket upgrade failed", "eventID", eventID, "err", err)
		return
	}

	event, err := c.Events.GetByID(r.Context(), eventID)
	if err != nil || event.Status != domain.EventApproved {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			c.Logger.Error("chat event lookup failed", "eventID", eventID, "err", err)
		}
		msg := websocket.FormatCloseMessage(chat.CloseEventUnavailable, "event not found or not approved")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	client := chat.NewClient(c.Hub, conn, eventID, senderID, role, c.Messages, c.Logger)
	c.Hub.Join(client)
}

// ListMessages godoc
// @Summary List an event's chat history
// @Description Returns the event's persisted messages, oldest first.
// @Tags chat
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListMessagesSuccessResponse "data contains the messages"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/messages [get]
func (c *ChatController) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := c.Messages.ListByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msgs)
}
