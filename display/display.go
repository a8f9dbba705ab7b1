// Package display defines the pixel-matrix primitives the scoreboard renders
// through, and provides a headless in-memory implementation.
//
// The scoreboard core never draws anywhere but through the [Display]
// interface. Hosts that drive real hardware implement it; everything else
// (tests, the CLI, the web dashboard preview) uses [Matrix].
//
// The main components are:
//
//   - [Display]: drawing, frame presentation and marquee control
//   - [Matrix]: a 64x32 double-buffered implementation with a clock-driven
//     marquee
//   - [Frame]: a copy of the last presented frame, suitable for JSON
package display

import (
	"encoding/hex"
	"fmt"
)

// Default panel geometry.
const (
	DefaultWidth  = 64
	DefaultHeight = 32
)

// Color is a 24-bit RGB value.
type Color struct {
	R, G, B uint8
}

// Named colours used by the scoreboard.
var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
	Orange = Color{255, 165, 0}
)

// RGB returns a Color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// String returns the colour as "#rrggbb".
func (c Color) String() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for "#rrggbb".
func (c *Color) UnmarshalText(text []byte) error {
	if len(text) != 7 || text[0] != '#' {
		return fmt.Errorf("invalid color %q", text)
	}
	b, err := hex.DecodeString(string(text[1:]))
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", text, err)
	}
	*c = Color{R: b[0], G: b[1], B: b[2]}
	return nil
}

// Font selects one of the fixed-cell fonts the panel supports.
type Font int

const (
	// FontScore is the large two-digit score font.
	FontScore Font = iota

	// FontSmall is the 5x7 font used for status messages.
	FontSmall

	// FontScroll is the 6x11 font used by the marquee.
	FontScroll
)

// Cell returns the width and height of one character cell.
func (f Font) Cell() (width, height int) {
	switch f {
	case FontScore:
		return 11, 23
	case FontSmall:
		return 5, 7
	case FontScroll:
		return 6, 11
	default:
		return 0, 0
	}
}

// String returns the font name.
func (f Font) String() string {
	switch f {
	case FontScore:
		return "score"
	case FontSmall:
		return "small"
	case FontScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Font) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// TextBounds returns the size of text rendered in font f.
func TextBounds(f Font, text string) (width, height int) {
	w, h := f.Cell()
	return w * len([]rune(text)), h
}

// Forever makes a marquee loop until stopped.
const Forever = -1

// Scroll describes marquee text scrolling across the panel.
type Scroll struct {
	Text  string `json:"text"`
	Color Color  `json:"color"`
	Font  Font   `json:"font"`

	// Loops is how many times the text crosses the panel; [Forever] never ends.
	Loops int `json:"loops"`

	// Speed is in pixels per second.
	Speed int `json:"speed"`

	OffsetTop  int `json:"offset_top"`
	OffsetLeft int `json:"offset_left"`
}

// Display is a pixel matrix with a text marquee layer.
//
// Drawing goes to a back buffer; [Display.Show] presents it. The marquee
// layer runs independently of the back buffer.
type Display interface {
	Width() int
	Height() int

	FillScreen(c Color)
	FillRect(x, y, w, h int, c Color)
	DrawRect(x, y, w, h int, c Color)
	SetPixel(x, y int, c Color)
	DrawText(x, y int, f Font, c Color, text string)

	// Show presents the back buffer. The back buffer keeps its contents.
	Show()

	StartScrolling(s Scroll)
	IsScrolling() bool
	StopScrolling()
}
