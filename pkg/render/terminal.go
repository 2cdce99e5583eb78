package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// cellAspect is how many times taller than wide a terminal cell is.
const cellAspect = 2.0

const discRune = '█'

// TerminalRenderer draws the viewport as a box of terminal cells, scaled
// to fit the screen, with the disc filled in.
type TerminalRenderer struct {
	screen tcell.Screen

	width, height float64 // simulation viewport
	scale         float64 // simulation pixels per cell column

	originX, originY int // top-left border cell
	boxCols, boxRows int // interior size

	discStyle   tcell.Style
	borderStyle tcell.Style
	bgStyle     tcell.Style
	status      string
}

// NewTerminalRenderer creates a renderer for a width x height viewport.
func NewTerminalRenderer(screen tcell.Screen, width, height float64, disc, background color.RGBA) *TerminalRenderer {
	bg := tcell.NewRGBColor(int32(background.R), int32(background.G), int32(background.B))
	fg := tcell.NewRGBColor(int32(disc.R), int32(disc.G), int32(disc.B))

	r := &TerminalRenderer{
		screen:      screen,
		width:       width,
		height:      height,
		bgStyle:     tcell.StyleDefault.Background(bg),
		discStyle:   tcell.StyleDefault.Background(bg).Foreground(fg),
		borderStyle: tcell.StyleDefault.Background(bg).Foreground(tcell.ColorGray),
	}
	r.Layout()
	return r
}

// Resize changes the simulation viewport size.
func (r *TerminalRenderer) Resize(width, height float64) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.Layout()
}

// Layout recomputes the scale and box placement from the screen size. One
// row is kept for the status line.
func (r *TerminalRenderer) Layout() {
	cols, rows := r.screen.Size()
	innerCols := cols - 2
	innerRows := rows - 3
	if innerCols <= 0 || innerRows <= 0 || r.width <= 0 || r.height <= 0 {
		r.scale = 0
		return
	}

	r.scale = math.Max(r.width/float64(innerCols), r.height/(cellAspect*float64(innerRows)))
	r.boxCols = int(math.Round(r.width / r.scale))
	r.boxRows = int(math.Round(r.height / (cellAspect * r.scale)))
	r.originX = (cols - (r.boxCols + 2)) / 2
	r.originY = (rows - 1 - (r.boxRows + 2)) / 2
}

// SetStatus sets the text shown under the box.
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	r.screen.SetStyle(r.bgStyle)
	r.screen.Clear()
	if r.scale == 0 {
		return
	}

	left, top := r.originX, r.originY
	right, bottom := left+r.boxCols+1, top+r.boxRows+1
	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, nil, r.borderStyle)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, r.borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, tcell.RuneVLine, nil, r.borderStyle)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, r.borderStyle)
	}
	r.screen.SetContent(left, top, tcell.RuneULCorner, nil, r.borderStyle)
	r.screen.SetContent(right, top, tcell.RuneURCorner, nil, r.borderStyle)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, r.borderStyle)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, r.borderStyle)
}

// RenderDisc implements Renderer. Every interior cell whose centre lies
// inside the disc is filled, and the centre cell always is.
func (r *TerminalRenderer) RenderDisc(frame physics.Frame, radius float64) {
	if r.scale == 0 {
		return
	}
	cx, cy := ToScreen(frame.Position, r.width, r.height)
	rowHeight := cellAspect * r.scale

	for row := 0; row < r.boxRows; row++ {
		py := (float64(row) + 0.5) * rowHeight
		for col := 0; col < r.boxCols; col++ {
			px := (float64(col) + 0.5) * r.scale
			if math.Hypot(px-cx, py-cy) <= radius {
				r.setCell(col, row, discRune, r.discStyle)
			}
		}
	}

	if col, row, ok := r.cellAt(cx, cy); ok {
		r.setCell(col, row, discRune, r.discStyle)
	}
}

// cellAt returns the interior cell containing screen pixel (x, y).
func (r *TerminalRenderer) cellAt(x, y float64) (col, row int, ok bool) {
	if r.scale == 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	col = int(x / r.scale)
	row = int(y / (cellAspect * r.scale))
	if col >= r.boxCols || row >= r.boxRows {
		return 0, 0, false
	}
	return col, row, true
}

func (r *TerminalRenderer) setCell(col, row int, ch rune, style tcell.Style) {
	r.screen.SetContent(r.originX+1+col, r.originY+1+row, ch, nil, style)
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	if r.status != "" {
		_, rows := r.screen.Size()
		x := 0
		for _, ch := range r.status {
			r.screen.SetContent(x, rows-1, ch, nil, r.borderStyle)
			x++
		}
	}
	r.screen.Show()
}
