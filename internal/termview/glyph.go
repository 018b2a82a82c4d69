package termview

import (
	"github.com/gdamore/tcell/v2"

	"infinicity/internal/city"
)

// heightGlyphs shade a cell by building height, lowest first.
var heightGlyphs = []rune{'░', '▒', '▓', '█'}

// Tallest possible building: main block plus upper block at their maxima.
const maxTop = city.MainHeightMax + city.UpperHeightMax

// HeightGlyph returns the glyph for a building whose roof is at top.
func HeightGlyph(top float32) rune {
	if top <= 0 {
		return ' '
	}
	i := int(top / maxTop * float32(len(heightGlyphs)))
	if i >= len(heightGlyphs) {
		i = len(heightGlyphs) - 1
	}
	return heightGlyphs[i]
}

// LitStyle colours a building by the share of its windows that are lit:
// dark blocks grey, mostly lit blocks yellow.
func LitStyle(b *city.Building) tcell.Style {
	st := tcell.StyleDefault.Background(tcell.ColorBlack)
	total := b.WindowCount()
	if total == 0 {
		return st.Foreground(tcell.ColorDimGray)
	}
	switch ratio := float64(b.LitCount()) / float64(total); {
	case ratio >= 0.6:
		return st.Foreground(tcell.ColorYellow)
	case ratio >= 0.4:
		return st.Foreground(tcell.ColorOlive)
	default:
		return st.Foreground(tcell.ColorGray)
	}
}

// Action is what a key press asks the preview to do.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionReset
	ActionQuit
)

// KeyAction maps a key event's key and rune to an Action. The bindings
// match the desktop: space forward, b back.
func KeyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionForward
	case tcell.KeyDown:
		return ActionBack
	case tcell.KeyRune:
		switch r {
		case ' ':
			return ActionForward
		case 'b', 'B':
			return ActionBack
		case 'r', 'R':
			return ActionReset
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}
