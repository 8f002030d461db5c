package domain

import "encoding/json"

// Event names exchanged over the wire.
const (
	EventRoomJoin    = "room:join"
	EventRoomJoined  = "room:joined"
	EventSystem      = "system"
	EventStrokeStart = "stroke:start"
	EventStrokeChunk = "stroke:chunk"
	EventStrokeEnd   = "stroke:end"
	EventBoardClear  = "board:clear"
	EventChatMessage = "chat:message"
)

// Envelope frames every message on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RoomJoin is a client's request for room membership.
type RoomJoin struct {
	Room string `json:"room"`
	Name string `json:"name,omitempty"`
}

// RoomJoined acknowledges a join with the resolved room and display name.
type RoomJoined struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// SystemNotice is an informational message for a room (arrivals, departures).
type SystemNotice struct {
	Message string `json:"message"`
}

// StrokeStart announces a new stroke with its style and first point.
// Coordinates are normalized to [0,1] of the producer's canvas.
type StrokeStart struct {
	Room  string  `json:"room"`
	ID    string  `json:"id"`
	Color string  `json:"color"`
	Size  int     `json:"size"`
	NX    float64 `json:"nx"`
	NY    float64 `json:"ny"`
}

// StrokeChunk appends one point to an in-progress stroke.
type StrokeChunk struct {
	Room string  `json:"room"`
	ID   string  `json:"id"`
	NX   float64 `json:"nx"`
	NY   float64 `json:"ny"`
}

// StrokeEnd marks a stroke finished; no further points are accepted.
type StrokeEnd struct {
	Room string `json:"room"`
	ID   string `json:"id"`
}

// BoardClear wipes a room's board, the sender's included.
type BoardClear struct {
	Room string `json:"room"`
}

// ChatSend is what a client submits; the relay never echoes it as-is.
type ChatSend struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// ChatMessage is the broadcast form of a chat line. TS is assigned by the
// relay in milliseconds since epoch so every member sorts on the same clock.
type ChatMessage struct {
	Room string `json:"room"`
	Name string `json:"name"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Marshal wraps a payload in an Envelope and encodes the whole frame.
func Marshal(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
