// Package sketch reconstructs strokes on the consumer side from the relay's
// start/chunk/end events. The relay never tracks stroke contents, so each
// peer assembles its own copy of the board, keyed by stroke id.
package sketch

import (
	"log/slog"
	"sync"

	"github.com/franklenny258/pictionary-game/canvas"
	"github.com/franklenny258/pictionary-game/domain"
)

// State is a stroke's position in its lifecycle.
type State int

const (
	StateStarted State = iota
	StateExtending
	StateEnded
)

// Stroke is one reconstructed pen gesture in local device pixels.
type Stroke struct {
	ID     string
	Color  string
	Size   int
	Points []canvas.Point
	State  State
}

// Painter renders a full board snapshot. Implementations (canvas, SVG,
// terminal) live outside this module.
type Painter interface {
	Paint(strokes []Stroke)
}

// Assembler tracks every stroke seen for one board. Incoming coordinates
// are denormalized against the local canvas size at the moment of arrival.
type Assembler struct {
	mu      sync.Mutex
	width   float64
	height  float64
	strokes map[string]*Stroke
	order   []string
}

func New(width, height float64) *Assembler {
	return &Assembler{
		width:   width,
		height:  height,
		strokes: make(map[string]*Stroke),
	}
}

// Resize records a new local canvas size for subsequent arrivals. Points
// already recorded keep the projection they arrived with.
func (a *Assembler) Resize(width, height float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = width, height
}

// Size returns the local canvas dimensions.
func (a *Assembler) Size() (width, height float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width, a.height
}

// Start begins tracking a stroke with its style and first point. A
// duplicate start for the same id overwrites the existing entry.
func (a *Assembler) Start(p domain.StrokeStart) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.strokes[p.ID]; !exists {
		a.order = append(a.order, p.ID)
	}
	a.strokes[p.ID] = &Stroke{
		ID:     p.ID,
		Color:  p.Color,
		Size:   p.Size,
		Points: []canvas.Point{canvas.Denormalize(p.NX, p.NY, a.width, a.height)},
		State:  StateStarted,
	}
}

// Extend appends a point to an in-progress stroke. A chunk for an unknown
// id synthesizes a stroke with the default style rather than dropping the
// data: the start may have been lost, or this consumer joined mid-stroke.
// Chunks for an ended stroke are ignored.
func (a *Assembler) Extend(p domain.StrokeChunk) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, exists := a.strokes[p.ID]
	if !exists {
		a.strokes[p.ID] = &Stroke{
			ID:     p.ID,
			Color:  domain.DefaultStrokeColor,
			Size:   domain.DefaultStrokeSize,
			Points: []canvas.Point{canvas.Denormalize(p.NX, p.NY, a.width, a.height)},
			State:  StateStarted,
		}
		a.order = append(a.order, p.ID)
		return
	}
	if s.State == StateEnded {
		slog.Debug("chunk for ended stroke ignored", "strokeId", p.ID)
		return
	}
	s.Points = append(s.Points, canvas.Denormalize(p.NX, p.NY, a.width, a.height))
	s.State = StateExtending
}

// End freezes a stroke; further chunks for its id are ignored. An end for
// an id that was never started is a no-op.
func (a *Assembler) End(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, exists := a.strokes[id]
	if !exists {
		slog.Debug("end for unknown stroke ignored", "strokeId", id)
		return
	}
	s.State = StateEnded
}

// Clear discards every tracked stroke, whatever its state.
func (a *Assembler) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.strokes = make(map[string]*Stroke)
	a.order = nil
}

// Stroke returns a copy of one tracked stroke.
func (a *Assembler) Stroke(id string) (Stroke, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, exists := a.strokes[id]
	if !exists {
		return Stroke{}, false
	}
	return copyStroke(s), true
}

// Snapshot returns copies of every stroke in first-seen order, for a full
// redraw.
func (a *Assembler) Snapshot() []Stroke {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Stroke, 0, len(a.order))
	for _, id := range a.order {
		if s, exists := a.strokes[id]; exists {
			out = append(out, copyStroke(s))
		}
	}
	return out
}

func copyStroke(s *Stroke) Stroke {
	points := make([]canvas.Point, len(s.Points))
	copy(points, s.Points)
	return Stroke{ID: s.ID, Color: s.Color, Size: s.Size, Points: points, State: s.State}
}
