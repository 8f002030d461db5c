// Package client implements the consumer side of the relay protocol: it
// joins rooms, produces clamped and normalized stroke events, and rebuilds
// peers' strokes through a sketch.Assembler. Rendering stays outside; a
// sketch.Painter receives snapshots when the board changes.
package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/franklenny258/pictionary-game/canvas"
	"github.com/franklenny258/pictionary-game/domain"
	"github.com/franklenny258/pictionary-game/sketch"
)

// Handlers are optional callbacks for events the client surfaces to a UI.
type Handlers struct {
	OnJoined func(domain.RoomJoined)
	OnNotice func(message string)
	OnChat   func(domain.ChatMessage)
	OnClear  func()
	Painter  sketch.Painter
}

// Client is one connection to the relay plus the board reconstructed from
// its rebroadcasts.
type Client struct {
	mu       sync.Mutex // serializes writes to ws
	ws       *websocket.Conn
	asm      *sketch.Assembler
	handlers Handlers
}

// Dial connects to a relay websocket endpoint (ws://host/ws). Width and
// height are the local drawing surface in device pixels.
func Dial(url string, width, height float64, handlers Handlers) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{
		ws:       ws,
		asm:      sketch.New(width, height),
		handlers: handlers,
	}, nil
}

// Listen consumes relay frames until the connection closes. It is meant to
// run on its own goroutine; callbacks fire from it.
func (c *Client) Listen() error {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		c.dispatch(data)
	}
}

func (c *Client) Close() error {
	return c.ws.Close()
}

// Join requests membership in a room. The resolved room and display name
// arrive in the room:joined ack.
func (c *Client) Join(room, name string) error {
	return c.sendEvent(domain.EventRoomJoin, domain.RoomJoin{Room: room, Name: name})
}

// StartStroke announces a new stroke at a pen-down position in local device
// pixels. The sample is skipped while the canvas has no size.
func (c *Client) StartStroke(room, id, color string, size int, x, y float64) error {
	w, h := c.asm.Size()
	nx, ny, ok := canvas.Normalize(x, y, w, h)
	if !ok {
		return nil
	}
	return c.sendEvent(domain.EventStrokeStart, domain.StrokeStart{
		Room:  room,
		ID:    id,
		Color: color,
		Size:  canvas.ClampStrokeSize(size),
		NX:    nx,
		NY:    ny,
	})
}

// ExtendStroke appends a pen-move position to an in-progress stroke.
func (c *Client) ExtendStroke(room, id string, x, y float64) error {
	w, h := c.asm.Size()
	nx, ny, ok := canvas.Normalize(x, y, w, h)
	if !ok {
		return nil
	}
	return c.sendEvent(domain.EventStrokeChunk, domain.StrokeChunk{
		Room: room,
		ID:   id,
		NX:   nx,
		NY:   ny,
	})
}

// EndStroke marks a stroke finished.
func (c *Client) EndStroke(room, id string) error {
	return c.sendEvent(domain.EventStrokeEnd, domain.StrokeEnd{Room: room, ID: id})
}

// ClearBoard wipes the room's board for everyone, this client included.
func (c *Client) ClearBoard(room string) error {
	return c.sendEvent(domain.EventBoardClear, domain.BoardClear{Room: room})
}

// SendChat submits a chat line; the echo carries the relay's timestamp.
func (c *Client) SendChat(room, text string) error {
	return c.sendEvent(domain.EventChatMessage, domain.ChatSend{Room: room, Text: text})
}

// Resize records a new local canvas size for subsequent arrivals.
func (c *Client) Resize(width, height float64) {
	c.asm.Resize(width, height)
}

// Board returns a copy of the reconstructed strokes in first-seen order.
func (c *Client) Board() []sketch.Stroke {
	return c.asm.Snapshot()
}

// Stroke returns one reconstructed stroke by id.
func (c *Client) Stroke(id string) (sketch.Stroke, bool) {
	return c.asm.Stroke(id)
}

// NewStrokeID mints a stroke identifier the way producers are expected to:
// a millisecond timestamp plus a random suffix.
func NewStrokeID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:5])
}

func (c *Client) dispatch(data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return
	}

	switch env.Event {
	case domain.EventRoomJoined:
		var p domain.RoomJoined
		if json.Unmarshal(env.Data, &p) == nil && c.handlers.OnJoined != nil {
			c.handlers.OnJoined(p)
		}
	case domain.EventSystem:
		var p domain.SystemNotice
		if json.Unmarshal(env.Data, &p) == nil && c.handlers.OnNotice != nil {
			c.handlers.OnNotice(p.Message)
		}
	case domain.EventStrokeStart:
		var p domain.StrokeStart
		if json.Unmarshal(env.Data, &p) == nil {
			c.asm.Start(p)
			c.repaint()
		}
	case domain.EventStrokeChunk:
		var p domain.StrokeChunk
		if json.Unmarshal(env.Data, &p) == nil {
			c.asm.Extend(p)
			c.repaint()
		}
	case domain.EventStrokeEnd:
		var p domain.StrokeEnd
		if json.Unmarshal(env.Data, &p) == nil {
			c.asm.End(p.ID)
		}
	case domain.EventBoardClear:
		c.asm.Clear()
		if c.handlers.OnClear != nil {
			c.handlers.OnClear()
		}
		c.repaint()
	case domain.EventChatMessage:
		var p domain.ChatMessage
		if json.Unmarshal(env.Data, &p) == nil && c.handlers.OnChat != nil {
			c.handlers.OnChat(p)
		}
	}
}

// repaint hands the full retained stroke set to the painter; one path per
// stroke id, redrawn on every update.
func (c *Client) repaint() {
	if c.handlers.Painter != nil {
		c.handlers.Painter.Paint(c.asm.Snapshot())
	}
}

func (c *Client) sendEvent(event string, payload any) error {
	frame, err := domain.Marshal(event, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, frame)
}
