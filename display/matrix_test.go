package display

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var _ Display = (*Matrix)(nil)

func TestNewMatrix_Defaults(t *testing.T) {
	m := NewMatrix(0, 0, nil)

	if m.Width() != DefaultWidth || m.Height() != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", m.Width(), m.Height(), DefaultWidth, DefaultHeight)
	}
	f := m.Frame()
	if len(f.Pixels) != DefaultWidth*DefaultHeight {
		t.Errorf("len(Pixels) = %d, want %d", len(f.Pixels), DefaultWidth*DefaultHeight)
	}
	if f.Seq != 0 {
		t.Errorf("Seq = %d, want 0", f.Seq)
	}
}

func TestMatrix_ShowPresentsBackBuffer(t *testing.T) {
	m := NewMatrix(8, 4, clockwork.NewFakeClock())

	m.SetPixel(1, 2, Red)
	if got := m.Frame().At(1, 2); got != Black {
		t.Errorf("At(1,2) before Show = %v, want black", got)
	}

	m.Show()
	if got := m.Frame().At(1, 2); got != Red {
		t.Errorf("At(1,2) after Show = %v, want red", got)
	}

	// back buffer is kept after Show
	m.SetPixel(0, 0, Blue)
	m.Show()
	f := m.Frame()
	if f.At(1, 2) != Red || f.At(0, 0) != Blue {
		t.Error("back buffer was not kept across Show")
	}
	if f.Seq != 2 {
		t.Errorf("Seq = %d, want 2", f.Seq)
	}
}

func TestMatrix_OutOfRangeIgnored(t *testing.T) {
	m := NewMatrix(4, 4, clockwork.NewFakeClock())
	m.SetPixel(-1, 0, Red)
	m.SetPixel(4, 0, Red)
	m.FillRect(2, 2, 10, 10, Green)
	m.Show()

	f := m.Frame()
	if f.At(3, 3) != Green || f.At(1, 1) != Black {
		t.Error("FillRect was not clipped to the panel")
	}
	if f.At(-1, 0) != Black {
		t.Error("At() out of range should be black")
	}
}

func TestMatrix_DrawRect(t *testing.T) {
	m := NewMatrix(6, 6, clockwork.NewFakeClock())
	m.DrawRect(1, 1, 4, 4, Green)
	m.Show()
	f := m.Frame()

	for _, p := range [][2]int{{1, 1}, {4, 1}, {1, 4}, {4, 4}, {2, 1}, {1, 3}} {
		if f.At(p[0], p[1]) != Green {
			t.Errorf("At(%d,%d) = %v, want green", p[0], p[1], f.At(p[0], p[1]))
		}
	}
	if f.At(2, 2) != Black {
		t.Error("DrawRect filled the inside")
	}
}

func TestMatrix_TextRuns(t *testing.T) {
	m := NewMatrix(64, 32, clockwork.NewFakeClock())

	m.DrawText(2, 29, FontScore, White, "07")
	m.DrawText(40, 29, FontScore, White, "03")
	m.FillRect(0, 0, 26, 32, Red) // overdraws the left run
	m.DrawText(2, 29, FontScore, White, "08")
	m.Show()

	texts := m.Frame().Texts
	if len(texts) != 2 {
		t.Fatalf("len(Texts) = %d, want 2: %+v", len(texts), texts)
	}
	if texts[0].Text != "03" || texts[1].Text != "08" {
		t.Errorf("Texts = %+v, want 03 then 08", texts)
	}

	m.FillScreen(Black)
	m.Show()
	if len(m.Frame().Texts) != 0 {
		t.Error("FillScreen did not drop text runs")
	}
}

func TestMatrix_ScrollingEndsAfterLoops(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMatrix(64, 32, clock)

	// (64 + 4*6) px at 88 px/s is exactly one second per loop
	m.StartScrolling(Scroll{Text: "Test", Font: FontScroll, Loops: 2, Speed: 88})

	if !m.IsScrolling() {
		t.Fatal("IsScrolling() = false right after start")
	}
	clock.Advance(1900 * time.Millisecond)
	if !m.IsScrolling() {
		t.Error("IsScrolling() = false before the second loop finished")
	}
	clock.Advance(200 * time.Millisecond)
	if m.IsScrolling() {
		t.Error("IsScrolling() = true after both loops finished")
	}
}

func TestMatrix_ScrollingForeverUntilStopped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewMatrix(64, 32, clock)
	m.StartScrolling(Scroll{Text: "Choose Game Limit", Font: FontScroll, Loops: Forever, Speed: 60})

	clock.Advance(time.Hour)
	if !m.IsScrolling() {
		t.Fatal("IsScrolling() = false for a forever marquee")
	}
	if f := m.Frame(); f.Scroll == nil || f.Scroll.Text != "Choose Game Limit" {
		t.Errorf("Frame().Scroll = %+v, want running marquee", f.Scroll)
	}

	m.StopScrolling()
	if m.IsScrolling() {
		t.Error("IsScrolling() = true after StopScrolling")
	}
}

func TestColor_Text(t *testing.T) {
	if Orange.String() != "#ffa500" {
		t.Errorf("Orange.String() = %q, want #ffa500", Orange.String())
	}

	var c Color
	if err := c.UnmarshalText([]byte("#0a0b0c")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if c != RGB(10, 11, 12) {
		t.Errorf("UnmarshalText() = %v, want #0a0b0c", c)
	}

	for _, bad := range []string{"", "0a0b0c", "#0a0b0", "#zzzzzz"} {
		if err := c.UnmarshalText([]byte(bad)); err == nil {
			t.Errorf("UnmarshalText(%q) error = nil, want error", bad)
		}
	}
}

func TestFrame_JSON(t *testing.T) {
	m := NewMatrix(2, 1, clockwork.NewFakeClock())
	m.SetPixel(0, 0, Red)
	m.DrawText(0, 0, FontSmall, Orange, "Hi")
	m.Show()

	data, err := json.Marshal(m.Frame())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"pixels":["#ff0000","#000000"]`, `"font":"small"`, `"text":"Hi"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
}

func TestTextBounds(t *testing.T) {
	w, h := TextBounds(FontScore, "00")
	if w != 22 || h != 23 {
		t.Errorf("TextBounds(score, 00) = %dx%d, want 22x23", w, h)
	}
}
