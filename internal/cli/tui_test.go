package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/orbit"
)

type cannedGenerator struct{ reply string }

func (cannedGenerator) Model() string { return "canned" }

func (g cannedGenerator) Generate(context.Context, []concierge.Message) (string, error) {
	return g.reply, nil
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(msg)
}

func TestChatModelConversation(t *testing.T) {
	bot := concierge.New(cannedGenerator{reply: "Welcome aboard."}, concierge.WithLogger(log.New(io.Discard)))
	var m tea.Model = newChatModel(context.Background(), bot)

	if got := m.View(); !strings.Contains(got, "Connecting") {
		t.Errorf("view before size = %q", got)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := m.View(); !strings.Contains(got, "Welcome to Benson Global") {
		t.Error("greeting not shown")
	}

	// Blank input is rejected without a request.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank message should not ask the concierge")
	}
	if m.(chatModel).problem == "" {
		t.Error("blank message should show a problem")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.(chatModel).input.Value(); got != concierge.Suggestions()[0] {
		t.Errorf("tab filled %q", got)
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should ask the concierge")
	}
	cm := m.(chatModel)
	if !cm.waiting || cm.input.Value() != "" || len(cm.hist) != 2 {
		t.Fatalf("after send: waiting=%v input=%q turns=%d", cm.waiting, cm.input.Value(), len(cm.hist))
	}

	// Enter while waiting is ignored.
	if _, again := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Error("second send while waiting")
	}

	m, _ = update(t, m, cmd())
	cm = m.(chatModel)
	if cm.waiting || len(cm.hist) != 3 || cm.hist[2].Text != "Welcome aboard." || cm.hist[2].Role != concierge.RoleModel {
		t.Errorf("after reply: waiting=%v hist=%+v", cm.waiting, cm.hist)
	}
	if !strings.Contains(m.View(), "canned") {
		t.Error("model name not shown")
	}

	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Error("esc should quit")
	}
}

func TestChatModelOffline(t *testing.T) {
	var m tea.Model = newChatModel(context.Background(), concierge.New(nil))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.View(), "offline") {
		t.Error("offline badge missing")
	}
}

func TestWatchModelResize(t *testing.T) {
	clock := anim.NewManualClock(time.Unix(0, 0))
	sched := anim.NewScheduler(anim.WithClock(clock), anim.WithLogger(log.New(io.Discard)))
	o := diagram.NewOrbital(sched, dataset.Default().Orbital(), diagram.Options{Logger: log.New(io.Discard)})
	defer o.Unmount()

	var m tea.Model = newWatchModel(o, time.Second/30)
	if m.Init() == nil {
		t.Error("Init should schedule a tick")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 42})
	if o.State() == diagram.Uninitialized {
		t.Fatal("first size should mount")
	}
	f := m.(watchModel).frame
	if f.Width != 100*cellWidth || f.Height != 40*cellHeight {
		t.Errorf("frame %dx%d, want %dx%d", f.Width, f.Height, 100*cellWidth, 40*cellHeight)
	}
	view := m.View()
	if !strings.Contains(view, "BGWM") || !strings.Contains(view, "●") {
		t.Errorf("view lacks center label or items:\n%s", view)
	}

	sched.Step(anim.FrameInterval)
	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.(watchModel).frame.Elapsed == 0 {
		t.Error("tick did not pick up the new frame")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 22})
	if f := m.(watchModel).frame; f.Width != 60*cellWidth {
		t.Errorf("resize width = %d, want %d", f.Width, 60*cellWidth)
	}
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func TestCanvas(t *testing.T) {
	c := newCanvas(4, 2)
	c.set(0, 0, 'a', "")
	c.set(3*cellWidth, cellHeight, 'b', "")
	c.set(-1, 0, 'x', "")
	c.set(4*cellWidth, 0, 'x', "")
	c.text(cellWidth, 0, "hello", "")

	want := "ahel\n   b"
	if got := c.String(); got != want {
		t.Errorf("canvas = %q, want %q", got, want)
	}
}

func TestDrawOrbital(t *testing.T) {
	f := diagram.OrbitalFrame{
		Center: geo.Point{X: 20 * cellWidth, Y: 5 * cellHeight},
		Label:  "HQ",
		Rings:  []orbit.Ring{{ID: "r", Radius: 4 * cellHeight}},
		Items: []orbit.Placed{
			{Item: orbit.Item{Label: "Ops", Color: "#ffffff"}, Point: geo.Point{X: 2 * cellWidth, Y: 1 * cellHeight}},
		},
	}
	got := drawOrbital(f, 40, 10)
	lines := strings.Split(got, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if !strings.Contains(lines[5], "HQ") {
		t.Errorf("center label not on row 5: %q", lines[5])
	}
	if !strings.Contains(lines[1], "●") || !strings.Contains(lines[1], "Ops") {
		t.Errorf("item not on row 1: %q", lines[1])
	}
	if !strings.Contains(got, "·") {
		t.Error("ring track missing")
	}
}
