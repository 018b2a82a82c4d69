package termview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"infinicity/internal/city"
	"infinicity/internal/scene"
)

// Each cell is drawn cellWidth characters wide, with a one-character gap.
const (
	cellWidth = 3
	cellPitch = cellWidth + 1
	gridTop   = 1
)

// canvas is the part of Screen the view draws on.
type canvas interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, style tcell.Style)
	Size() (width, height int)
}

// View renders a city.Grid top-down: far row at the top, near row at
// the bottom, one block of glyphs per building.
type View struct {
	screen  canvas
	grid    *city.Grid
	bus     *scene.EventBus
	session *scene.Session
	log     *slog.Logger
	step    float64
	running bool
}

// NewView returns a view over a fresh headless grid. step is the scroll
// distance of one key press.
func NewView(screen canvas, step float64, log *slog.Logger) *View {
	bus := scene.NewEventBus()
	v := &View{
		screen:  screen,
		grid:    city.NewGrid(nil),
		bus:     bus,
		session: scene.NewSession(bus),
		log:     log,
		step:    step,
		running: true,
	}
	bus.Subscribe(scene.EventRowRecycled, func(e scene.Event) {
		log.Debug("row recycled", "transition", e.Transition.String(), "boundary", e.Boundary)
	})
	return v
}

// Run initializes the grid and loops on terminal input until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, step float64, log *slog.Logger) error {
	screen, err := NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Close()

	v := NewView(screen, step, log)
	v.Reset(ctx)
	for v.running && ctx.Err() == nil {
		v.Render()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			v.Apply(ctx, KeyAction(ev.Key(), ev.Rune()))
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			v.running = false
		}
	}
	log.Info("session ended",
		"rows_forward", v.session.RowsForward,
		"rows_backward", v.session.RowsBackward,
		"distance", v.session.Distance,
	)
	return nil
}

// Reset regenerates the whole grid at the origin.
func (v *View) Reset(ctx context.Context) {
	v.grid.Initialize(ctx)
	v.bus.Emit(scene.Event{Type: scene.EventGridReset})
}

// Apply performs one key action.
func (v *View) Apply(ctx context.Context, a Action) {
	switch a {
	case ActionForward:
		v.scroll(ctx, -v.step)
	case ActionBack:
		v.scroll(ctx, v.step)
	case ActionReset:
		v.Reset(ctx)
	case ActionQuit:
		v.running = false
	}
}

func (v *View) scroll(ctx context.Context, delta float64) {
	v.grid.Advance(delta)
	v.bus.Emit(scene.Event{Type: scene.EventScrolled, Delta: delta, Shift: v.grid.Shift()})
	if t := v.grid.SyncRows(ctx); t != city.TransitionNone {
		v.bus.Emit(scene.Event{
			Type:       scene.EventRowRecycled,
			Transition: t,
			Boundary:   v.grid.Boundary(),
			Shift:      v.grid.Shift(),
		})
	}
}

// Running reports whether the view has not been asked to quit.
func (v *View) Running() bool { return v.running }

// Grid returns the grid the view drives.
func (v *View) Grid() *city.Grid { return v.grid }

// Render draws the grid and the status lines.
func (v *View) Render() {
	v.screen.Clear()
	v.text(0, 0, "Infinicity  space/b scroll  r reset  q quit", tcell.StyleDefault.Bold(true))

	v.grid.Each(func(col, row int, c *city.Cell) {
		if !c.Live {
			return
		}
		glyph := HeightGlyph(c.Building.TopHeight())
		style := LitStyle(&c.Building)
		if c.Building.HasUpper {
			style = style.Bold(true)
		}
		y := gridTop + city.GridRows - 1 - row
		for i := 0; i < cellWidth; i++ {
			v.screen.SetContent(col*cellPitch+i, y, glyph, style)
		}
	})

	st := v.grid.Stats()
	status := fmt.Sprintf("shift %.2f  block %d  %d buildings  %d upper  %d/%d lit",
		v.grid.Shift(), -v.grid.Boundary(), st.Cells, st.UpperBlocks, st.LitWindows, st.Windows)
	v.text(0, gridTop+city.GridRows+1, status, tcell.StyleDefault)
	v.screen.Show()
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	w, h := v.screen.Size()
	if y >= h {
		return
	}
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, style)
		x++
	}
}
