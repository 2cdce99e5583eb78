package render

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-bouncer/pkg/config"
	"github.com/opd-ai/go-bouncer/pkg/engine"
	"github.com/opd-ai/go-bouncer/pkg/event"
	"github.com/opd-ai/go-bouncer/pkg/physics"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func rowText(screen tcell.Screen, y, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		b.WriteRune(runeAt(screen, x, y))
	}
	return b.String()
}

// On an 80x24 screen a 300x300 viewport scales to 7.14px per column, a
// 42x21 interior boxed from column 18, row 0.
func TestTerminalRenderer_Layout_FitsScreen(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	if r.boxCols != 42 || r.boxRows != 21 {
		t.Errorf("interior = %dx%d, want 42x21", r.boxCols, r.boxRows)
	}
	if r.originX != 18 || r.originY != 0 {
		t.Errorf("origin = (%d, %d), want (18, 0)", r.originX, r.originY)
	}
}

func TestTerminalRenderer_Clear_DrawsBorder(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	r.Clear()

	corners := []struct {
		x, y int
		want rune
	}{
		{18, 0, tcell.RuneULCorner},
		{61, 0, tcell.RuneURCorner},
		{18, 22, tcell.RuneLLCorner},
		{61, 22, tcell.RuneLRCorner},
		{30, 0, tcell.RuneHLine},
		{18, 10, tcell.RuneVLine},
	}
	for _, c := range corners {
		if got := runeAt(screen, c.x, c.y); got != c.want {
			t.Errorf("cell (%d, %d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestTerminalRenderer_RenderDisc_FillsAroundCentre(t *testing.T) {
	tests := []struct {
		name     string
		pos      physics.Vector2D
		insideX  int
		insideY  int
		outsideX int
		outsideY int
	}{
		{"centre", physics.Vector2D{}, 40, 11, 20, 2},
		{"top left", physics.Vector2D{X: -110, Y: 110}, 24, 3, 50, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 80, 24)
			r := NewTerminalRenderer(screen, 300, 300, white, black)

			r.Clear()
			r.RenderDisc(physics.Frame{Position: tt.pos}, 40)
			r.Present()

			if got := runeAt(screen, tt.insideX, tt.insideY); got != discRune {
				t.Errorf("cell (%d, %d) = %q, want disc", tt.insideX, tt.insideY, got)
			}
			if got := runeAt(screen, tt.outsideX, tt.outsideY); got == discRune {
				t.Errorf("cell (%d, %d) should be empty", tt.outsideX, tt.outsideY)
			}
		})
	}
}

func TestTerminalRenderer_TinyDisc_StillVisible(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	r.Clear()
	r.RenderDisc(physics.Frame{}, 0.1)

	found := false
	for y := 1; y < 22 && !found; y++ {
		for x := 19; x < 61; x++ {
			if runeAt(screen, x, y) == discRune {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("a disc smaller than a cell should still fill its centre cell")
	}
}

func TestTerminalRenderer_TooSmallScreen_NoPanic(t *testing.T) {
	screen := newTestScreen(t, 2, 2)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	r.Clear()
	r.RenderDisc(physics.Frame{}, 40)
	r.Present()

	if r.scale != 0 {
		t.Errorf("scale = %v, want 0 when nothing fits", r.scale)
	}
}

func TestTerminalRenderer_Present_DrawsStatus(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	r.SetStatus("hello")
	r.Clear()
	r.Present()

	if got := rowText(screen, 23, 5); got != "hello" {
		t.Errorf("status row = %q, want hello", got)
	}
}

func TestTerminalRenderer_Resize_Relayouts(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, 300, 300, white, black)

	r.Resize(600, 300)

	if r.boxCols <= r.boxRows*2-2 {
		t.Errorf("wide viewport should give a wide box, got %dx%d", r.boxCols, r.boxRows)
	}
}

func newTestApp(t *testing.T) (*TerminalApp, tcell.SimulationScreen, *event.Bus) {
	t.Helper()
	screen := newTestScreen(t, 80, 24)
	bus := event.NewEventBus()
	sim := engine.NewSimulation(config.DefaultConfig(), physics.NewManualClock(time.Unix(0, 0)), bus, nil)
	return NewTerminalApp(screen, sim), screen, bus
}

func TestTerminalApp_HandleEvent_ArrowKeysMoveViewport(t *testing.T) {
	app, _, _ := newTestApp(t)

	keys := []struct {
		key   tcell.Key
		mod   tcell.ModMask
		wantX int
		wantY int
	}{
		{tcell.KeyLeft, tcell.ModNone, -10, 0},
		{tcell.KeyUp, tcell.ModNone, -10, -10},
		{tcell.KeyRight, tcell.ModShift, 40, -10},
		{tcell.KeyDown, tcell.ModShift, 40, 40},
	}
	for _, k := range keys {
		if !app.HandleEvent(tcell.NewEventKey(k.key, 0, k.mod)) {
			t.Fatalf("key %v should not quit", k.key)
		}
		x, y := app.Viewport().Position()
		if x != k.wantX || y != k.wantY {
			t.Errorf("after %v viewport = (%d, %d), want (%d, %d)", k.key, x, y, k.wantX, k.wantY)
		}
	}
}

func TestTerminalApp_HandleEvent_Quit(t *testing.T) {
	app, _, _ := newTestApp(t)

	quits := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	}
	for _, ev := range quits {
		if app.HandleEvent(ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
}

func TestTerminalApp_HandleEvent_ResetReloads(t *testing.T) {
	app, _, bus := newTestApp(t)
	reloads := 0
	bus.Subscribe(event.ConfigReloaded, func(event.Event) { reloads++ })

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))

	if reloads != 1 {
		t.Errorf("got %d reloads, want 1", reloads)
	}
}

func TestTerminalApp_Draw_ShowsStatus(t *testing.T) {
	app, screen, _ := newTestApp(t)
	app.sim.Start(app.Viewport())

	app.Draw(app.sim.Step(app.Viewport()))

	if got := rowText(screen, 23, 80); !strings.Contains(got, "bounces 0") {
		t.Errorf("status row = %q, want bounce count", got)
	}
	if got := runeAt(screen, 40, 11); got != discRune {
		t.Errorf("disc not drawn at centre, got %q", got)
	}
}

func TestTerminalApp_Run_QuitsOnKey(t *testing.T) {
	app, screen, _ := newTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil on quit", err)
		}
	case <-ctx.Done():
		t.Fatal("Run did not return after q")
	}
	if app.sim.Status() != engine.StatusStopped {
		t.Errorf("status = %v, want stopped", app.sim.Status())
	}
}
