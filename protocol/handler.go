package protocol

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/franklenny258/pictionary-game/domain"
)

// Handler validates inbound envelopes and routes them per the broadcast
// rules: stroke events go to the sender's room excluding the sender, clear
// and chat include the sender, join gets a private ack plus a room notice.
// Malformed payloads are dropped without a reply; the relay never answers
// a bad frame with an error.
type Handler struct {
	relay domain.Relay
	now   func() time.Time
}

func NewHandler(relay domain.Relay) *Handler {
	return &Handler{relay: relay, now: time.Now}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("invalid frame", "sessionId", conn.ID(), "error", err)
		return
	}

	switch env.Event {
	case domain.EventRoomJoin:
		h.handleJoin(conn, env.Data)
	case domain.EventStrokeStart, domain.EventStrokeChunk, domain.EventStrokeEnd:
		h.relayStroke(conn, env, data)
	case domain.EventBoardClear:
		h.handleClear(conn, env.Data, data)
	case domain.EventChatMessage:
		h.handleChat(conn, env.Data)
	default:
		slog.Debug("unknown event", "sessionId", conn.ID(), "event", env.Event)
	}
}

// Disconnect cleans up the session and tells its room it left.
func (h *Handler) Disconnect(conn domain.Connection) {
	room, name, ok := h.relay.Unregister(conn)
	if !ok || room == "" {
		return
	}
	h.notify(room, fmt.Sprintf("%s left", name), "")
}

func (h *Handler) handleJoin(conn domain.Connection, data []byte) {
	var req domain.RoomJoin
	if err := json.Unmarshal(data, &req); err != nil || !domain.ValidRoom(req.Room) {
		slog.Warn("dropping malformed join", "sessionId", conn.ID())
		return
	}

	name := domain.SanitizeName(req.Name)
	if name == "" {
		name = domain.FallbackName(conn.ID())
	}

	// The departure notice uses the name the old room knew the session by
	// and excludes the subject: on a same-room rejoin the session is
	// already a member again and must not see its own notice.
	prevRoom, prevName, switched := h.relay.Join(conn, req.Room, name)
	if switched {
		h.notify(prevRoom, fmt.Sprintf("%s left", prevName), conn.ID())
	}

	if ack, err := domain.Marshal(domain.EventRoomJoined, domain.RoomJoined{Room: req.Room, Name: name}); err == nil {
		conn.Send(ack)
	}
	h.notify(req.Room, fmt.Sprintf("%s joined %s", name, req.Room), conn.ID())
}

// relayStroke forwards stroke envelopes verbatim to the rest of the room.
// The relay keeps no stroke state; consumers reconstruct paths themselves.
func (h *Handler) relayStroke(conn domain.Connection, env domain.Envelope, raw []byte) {
	room, ok := roomOf(env.Data)
	if !ok {
		slog.Warn("dropping stroke without room", "sessionId", conn.ID(), "event", env.Event)
		return
	}
	h.relay.BroadcastRoom(room, raw, conn.ID())
}

func (h *Handler) handleClear(conn domain.Connection, data, raw []byte) {
	room, ok := roomOf(data)
	if !ok {
		slog.Warn("dropping clear without room", "sessionId", conn.ID())
		return
	}
	// Includes the sender so its own board resets too.
	h.relay.BroadcastRoom(room, raw, "")
	slog.Info("board cleared", "room", room)
}

func (h *Handler) handleChat(conn domain.Connection, data []byte) {
	var req domain.ChatSend
	if err := json.Unmarshal(data, &req); err != nil || !domain.ValidRoom(req.Room) {
		slog.Warn("dropping malformed chat", "sessionId", conn.ID())
		return
	}
	text := domain.SanitizeMessage(req.Text)
	if text == "" {
		return
	}

	name, _, ok := h.relay.Session(conn.ID())
	if !ok || name == "" {
		name = "Anonymous"
	}

	frame, err := domain.Marshal(domain.EventChatMessage, domain.ChatMessage{
		Room: req.Room,
		Name: name,
		Text: text,
		TS:   h.now().UnixMilli(),
	})
	if err != nil {
		return
	}
	// Includes the sender: it sees its own message with the relay timestamp.
	h.relay.BroadcastRoom(req.Room, frame, "")
	slog.Info("chat message", "room", req.Room, "name", name)
}

// notify sends a system notice to a room, excluding the subject session.
func (h *Handler) notify(room, message, excludeID string) {
	frame, err := domain.Marshal(domain.EventSystem, domain.SystemNotice{Message: message})
	if err != nil {
		return
	}
	h.relay.BroadcastRoom(room, frame, excludeID)
}

// roomOf pulls the room field out of a payload without decoding the rest.
func roomOf(data []byte) (string, bool) {
	var probe struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || !domain.ValidRoom(probe.Room) {
		return "", false
	}
	return probe.Room, true
}
