package termview

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinicity/internal/city"
)

type fakeCanvas struct {
	w, h  int
	cells map[[2]int]rune
	shown int
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (c *fakeCanvas) Clear()                    { c.cells = make(map[[2]int]rune) }
func (c *fakeCanvas) Show()                     { c.shown++ }
func (c *fakeCanvas) Size() (width, height int) { return c.w, c.h }

func (c *fakeCanvas) SetContent(x, y int, r rune, _ tcell.Style) {
	c.cells[[2]int{x, y}] = r
}

func (c *fakeCanvas) line(y int) string {
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		if r, ok := c.cells[[2]int{x, y}]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHeightGlyph(t *testing.T) {
	assert.Equal(t, ' ', HeightGlyph(0))
	assert.Equal(t, ' ', HeightGlyph(-1))
	assert.Equal(t, '░', HeightGlyph(0.5))
	assert.Equal(t, '▓', HeightGlyph(2.0))
	assert.Equal(t, '█', HeightGlyph(maxTop))
	assert.Equal(t, '█', HeightGlyph(10))
}

func TestLitStyle(t *testing.T) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)

	var dark city.Building
	assert.Equal(t, base.Foreground(tcell.ColorDimGray), LitStyle(&dark))

	bright := city.Building{MainWindows: []city.Window{{Lit: true}, {Lit: true}, {Lit: false}}}
	assert.Equal(t, base.Foreground(tcell.ColorYellow), LitStyle(&bright))

	half := city.Building{MainWindows: []city.Window{{Lit: true}}, UpperWindows: []city.Window{{Lit: false}}}
	assert.Equal(t, base.Foreground(tcell.ColorOlive), LitStyle(&half))

	unlit := city.Building{MainWindows: []city.Window{{Lit: false}, {Lit: false}}}
	assert.Equal(t, base.Foreground(tcell.ColorGray), LitStyle(&unlit))
}

func TestKeyAction(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyRune, ' ', ActionForward},
		{tcell.KeyUp, 0, ActionForward},
		{tcell.KeyRune, 'b', ActionBack},
		{tcell.KeyRune, 'B', ActionBack},
		{tcell.KeyDown, 0, ActionBack},
		{tcell.KeyRune, 'r', ActionReset},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyEnter, 0, ActionNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KeyAction(tc.key, tc.r), "key %v rune %q", tc.key, tc.r)
	}
}

func TestViewScrollsAndRecycles(t *testing.T) {
	ctx := context.Background()
	v := NewView(newFakeCanvas(80, 20), 0.5, quietLogger())
	v.Reset(ctx)
	require.Equal(t, 100, v.Grid().Stats().Cells)

	v.Apply(ctx, ActionForward)
	assert.Equal(t, -1, v.Grid().Boundary(), "floor(-0.5) crosses into the next block")
	assert.Equal(t, 1, v.session.RowsForward)

	v.Apply(ctx, ActionForward)
	assert.InDelta(t, -1.0, v.Grid().Shift(), 1e-12)
	assert.Equal(t, 1, v.session.RowsForward, "-1.0 is still block -1")

	v.Apply(ctx, ActionBack)
	v.Apply(ctx, ActionBack)
	assert.Equal(t, 0, v.Grid().Boundary())
	assert.Equal(t, 1, v.session.RowsBackward)
	assert.Equal(t, city.CellSeed(3, 0), v.Grid().CellAt(3, 0).Building.Seed)
	assert.Equal(t, 100, v.Grid().Stats().Cells)

	v.Apply(ctx, ActionReset)
	assert.Zero(t, v.Grid().Shift())
	assert.Zero(t, v.session.RowsForward)

	assert.True(t, v.Running())
	v.Apply(ctx, ActionQuit)
	assert.False(t, v.Running())
}

func TestViewRender(t *testing.T) {
	ctx := context.Background()
	screen := newFakeCanvas(80, 20)
	v := NewView(screen, 1, quietLogger())
	v.Reset(ctx)
	v.Apply(ctx, ActionForward)
	v.Render()

	assert.Equal(t, 1, screen.shown)
	assert.True(t, strings.HasPrefix(screen.line(0), "Infinicity"))

	// Near row sits at the bottom of the grid, far row at the top.
	near := v.Grid().CellAt(0, 0).Building
	far := v.Grid().CellAt(9, city.GridRows-1).Building
	want := strings.Repeat(string(HeightGlyph(near.TopHeight())), cellWidth)
	assert.True(t, strings.HasPrefix(screen.line(gridTop+city.GridRows-1), want))
	assert.Equal(t, HeightGlyph(far.TopHeight()), screen.cells[[2]int{9 * cellPitch, gridTop}])

	status := screen.line(gridTop + city.GridRows + 1)
	assert.Contains(t, status, "shift -1.00")
	assert.Contains(t, status, "block 1")
	assert.Contains(t, status, "100 buildings")
}

func TestViewRenderClipsToScreen(t *testing.T) {
	screen := newFakeCanvas(10, 3)
	v := NewView(screen, 1, quietLogger())
	v.Reset(context.Background())
	v.Render()
	assert.Len(t, screen.line(0), 10)
}
