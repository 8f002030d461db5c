package hub

import (
	"log/slog"
	"sync"

	"github.com/franklenny258/pictionary-game/domain"
)

type session struct {
	conn domain.Connection
	name string
	room string
}

// Hub is the authoritative session and room registry. All membership state
// lives in one table guarded by mu, and broadcast enumeration holds the
// same lock, so routing for one event is atomic with respect to another.
// Rooms are created lazily on first join and pruned when they empty.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	rooms    map[string]map[string]*session
}

func New() *Hub {
	return &Hub{
		sessions: make(map[string]*session),
		rooms:    make(map[string]map[string]*session),
	}
}

// Register adds a connected session with no room membership yet.
func (h *Hub) Register(conn domain.Connection) {
	h.mu.Lock()
	h.sessions[conn.ID()] = &session{conn: conn}
	count := len(h.sessions)
	h.mu.Unlock()

	slog.Info("session connected", "sessionId", conn.ID(), "sessions", count)
}

// Unregister removes a session entirely and reports the room it occupied so
// the protocol layer can emit a departure notice.
func (h *Hub) Unregister(conn domain.Connection) (room, name string, ok bool) {
	h.mu.Lock()
	s, exists := h.sessions[conn.ID()]
	if !exists {
		h.mu.Unlock()
		return "", "", false
	}
	delete(h.sessions, conn.ID())
	room, name = s.room, s.name
	if room != "" {
		h.leaveLocked(conn.ID(), room)
	}
	h.mu.Unlock()

	slog.Info("session disconnected", "sessionId", conn.ID(), "room", room)
	return room, name, true
}

// Join moves a session into a room, creating the room on first use. The
// previous room, if any, is left first; switched reports whether that
// happened so the caller can notify the old room's remaining members,
// using the name they knew the session by.
func (h *Hub) Join(conn domain.Connection, room, name string) (prevRoom, prevName string, switched bool) {
	h.mu.Lock()
	s, exists := h.sessions[conn.ID()]
	if !exists {
		s = &session{conn: conn}
		h.sessions[conn.ID()] = s
	}
	prevRoom, prevName = s.room, s.name
	if prevRoom != "" {
		h.leaveLocked(conn.ID(), prevRoom)
		switched = true
	}
	s.name = name
	s.room = room

	r, exists := h.rooms[room]
	if !exists {
		r = make(map[string]*session)
		h.rooms[room] = r
	}
	r[conn.ID()] = s
	count := len(r)
	h.mu.Unlock()

	slog.Info("session joined room", "sessionId", conn.ID(), "room", room, "name", name, "members", count)
	return prevRoom, prevName, switched
}

// Session returns the display name and current room for a session id.
func (h *Hub) Session(id string) (name, room string, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s, exists := h.sessions[id]
	if !exists {
		return "", "", false
	}
	return s.name, s.room, true
}

// BroadcastRoom sends data to every member of room except excludeID. An
// empty excludeID reaches every member. Sends that fail are dropped; dead
// connections clean themselves up when their reader exits.
func (h *Hub) BroadcastRoom(room string, data []byte, excludeID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, exists := h.rooms[room]
	if !exists {
		return
	}
	for id, s := range r {
		if id == excludeID {
			continue
		}
		if err := s.conn.Send(data); err != nil {
			slog.Warn("send failed, frame dropped", "sessionId", id, "room", room, "error", err)
		}
	}
}

// Stats reports the number of active rooms and connected sessions.
func (h *Hub) Stats() (rooms, clients int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms), len(h.sessions)
}

// Close tears down every connection, for shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, s := range h.sessions {
		s.conn.Close()
		delete(h.sessions, id)
	}
	for room := range h.rooms {
		delete(h.rooms, room)
	}
}

// leaveLocked removes a session from a room's member set and prunes the
// room when it empties. The caller holds mu.
func (h *Hub) leaveLocked(id, room string) {
	r, exists := h.rooms[room]
	if !exists {
		return
	}
	delete(r, id)
	if len(r) == 0 {
		delete(h.rooms, room)
		slog.Info("room pruned", "room", room)
	}
}
