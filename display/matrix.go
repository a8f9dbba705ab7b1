package display

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Text is a run of text drawn into the back buffer.
type Text struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Font  Font   `json:"font"`
	Color Color  `json:"color"`
	Text  string `json:"text"`
}

// Frame is a copy of the last frame presented with Show.
type Frame struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pixels []Color `json:"pixels"` // row-major
	Texts  []Text  `json:"texts"`
	Scroll *Scroll `json:"scroll,omitempty"`
	Seq    uint64  `json:"seq"`
}

// At returns the pixel at x, y or Black when out of range.
func (f Frame) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Black
	}
	return f.Pixels[y*f.Width+x]
}

// Matrix is an in-memory [Display].
//
// Text is recorded rather than rasterised. The marquee is timed on the
// Matrix clock so [Matrix.IsScrolling] turns false once the configured
// number of loops has crossed the panel.
//
// Matrix is safe for concurrent use.
type Matrix struct {
	clock  clockwork.Clock
	width  int
	height int

	mu    sync.Mutex
	back  []Color
	texts []Text
	front Frame

	scroll        *Scroll
	scrollStarted time.Time
}

// NewMatrix creates a blank width x height matrix. A nil clock uses the real
// clock; non-positive sizes use the default panel geometry.
func NewMatrix(width, height int, clock clockwork.Clock) *Matrix {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := &Matrix{
		clock:  clock,
		width:  width,
		height: height,
		back:   make([]Color, width*height),
	}
	m.front = Frame{Width: width, Height: height, Pixels: make([]Color, width*height)}
	return m
}

// Width returns the panel width in pixels.
func (m *Matrix) Width() int { return m.width }

// Height returns the panel height in pixels.
func (m *Matrix) Height() int { return m.height }

// FillScreen paints the whole back buffer and drops all text runs.
func (m *Matrix) FillScreen(c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.back {
		m.back[i] = c
	}
	m.texts = m.texts[:0]
}

// FillRect paints a rectangle and drops text runs that start inside it.
func (m *Matrix) FillRect(x, y, w, h int, c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			m.set(i, j, c)
		}
	}
	kept := m.texts[:0]
	for _, t := range m.texts {
		if t.X >= x && t.X < x+w && t.Y >= y && t.Y < y+h {
			continue
		}
		kept = append(kept, t)
	}
	m.texts = kept
}

// DrawRect outlines a rectangle one pixel wide.
func (m *Matrix) DrawRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := x; i < x+w; i++ {
		m.set(i, y, c)
		m.set(i, y+h-1, c)
	}
	for j := y; j < y+h; j++ {
		m.set(x, j, c)
		m.set(x+w-1, j, c)
	}
}

// SetPixel paints one pixel. Out of range coordinates are ignored.
func (m *Matrix) SetPixel(x, y int, c Color) {
	m.mu.Lock()
	m.set(x, y, c)
	m.mu.Unlock()
}

// DrawText records a text run at x, y.
func (m *Matrix) DrawText(x, y int, f Font, c Color, text string) {
	if text == "" {
		return
	}
	m.mu.Lock()
	m.texts = append(m.texts, Text{X: x, Y: y, Font: f, Color: c, Text: text})
	m.mu.Unlock()
}

// Show copies the back buffer to the presented frame.
func (m *Matrix) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.front.Pixels, m.back)
	m.front.Texts = append(m.front.Texts[:0], m.texts...)
	m.front.Seq++
}

// Frame returns a copy of the presented frame, including the marquee if it
// is still running.
func (m *Matrix) Frame() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := Frame{
		Width:  m.front.Width,
		Height: m.front.Height,
		Pixels: append([]Color(nil), m.front.Pixels...),
		Texts:  append([]Text(nil), m.front.Texts...),
		Seq:    m.front.Seq,
	}
	if m.scrolling() {
		s := *m.scroll
		f.Scroll = &s
	}
	return f
}

// StartScrolling replaces any running marquee.
func (m *Matrix) StartScrolling(s Scroll) {
	if s.Speed <= 0 {
		s.Speed = 1
	}
	m.mu.Lock()
	m.scroll = &s
	m.scrollStarted = m.clock.Now()
	m.mu.Unlock()
}

// IsScrolling reports whether a marquee is still running.
func (m *Matrix) IsScrolling() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrolling()
}

// StopScrolling ends the marquee.
func (m *Matrix) StopScrolling() {
	m.mu.Lock()
	m.scroll = nil
	m.mu.Unlock()
}

func (m *Matrix) scrolling() bool {
	if m.scroll == nil {
		return false
	}
	if m.scroll.Loops < 0 {
		return true
	}
	textWidth, _ := TextBounds(m.scroll.Font, m.scroll.Text)
	pixels := (m.width - m.scroll.OffsetLeft + textWidth) * m.scroll.Loops
	d := time.Duration(pixels) * time.Second / time.Duration(m.scroll.Speed)
	if m.clock.Since(m.scrollStarted) >= d {
		m.scroll = nil
		return false
	}
	return true
}

func (m *Matrix) set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.back[y*m.width+x] = c
}
