package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/diagram"
)

// A terminal cell stands for this many diagram pixels. Cells are roughly
// twice as tall as they are wide.
const (
	cellWidth  = 8
	cellHeight = 16
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animate the orbital diagram in the terminal",
		Long: `Animate the orbital ecosystem diagram in the terminal.

The diagram is laid out again whenever the window is resized, keeping each
ring's rotation. Press q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ds, err := loadDataset(cfg, logger)
			if err != nil {
				return err
			}
			if fps <= 0 {
				fps = cfg.Animation.FPS
			}

			sched := anim.NewScheduler(anim.WithInterval(cfg.Animation.FrameInterval()), anim.WithLogger(logger))
			sched.Start()
			defer sched.Stop()

			orbital := diagram.NewOrbital(sched, ds.Orbital(), diagram.Options{
				Debounce: cfg.Animation.Debounce.D(),
				Logger:   logger,
			})
			defer orbital.Unmount()

			_, err = tea.NewProgram(newWatchModel(orbital, time.Second/time.Duration(fps)), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "terminal refresh rate (default from config)")
	return cmd
}

// =============================================================================
// watchModel - Terminal animation
// =============================================================================

// tickMsg asks the model to redraw.
type tickMsg time.Time

type watchModel struct {
	orbital *diagram.Orbital
	every   time.Duration

	cols, rows int
	frame      diagram.OrbitalFrame
	err        error
}

func newWatchModel(o *diagram.Orbital, every time.Duration) watchModel {
	return watchModel{orbital: o, every: every}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Two lines are kept for the status bar.
		m.cols, m.rows = msg.Width, max(msg.Height-2, 1)
		w, h := m.cols*cellWidth, m.rows*cellHeight
		if m.orbital.State() == diagram.Uninitialized {
			m.err = m.orbital.Mount(w, h)
		} else {
			m.err = m.orbital.Resize(w, h)
		}
		m.refresh()

	case tickMsg:
		m.refresh()
		return m, m.tick()
	}
	return m, nil
}

func (m *watchModel) refresh() {
	if m.cols == 0 {
		return
	}
	f, err := m.orbital.Frame()
	if err != nil {
		m.err = err
		return
	}
	m.frame = f
}

func (m watchModel) View() string {
	if m.cols == 0 {
		return "Laying out..."
	}
	var b strings.Builder
	b.WriteString(drawOrbital(m.frame, m.cols, m.rows))
	b.WriteString("\n")
	status := fmt.Sprintf("%s · %dx%d · %s", m.frame.State, m.frame.Width, m.frame.Height, m.frame.Elapsed.Round(time.Second))
	if m.err != nil {
		status = m.err.Error()
	}
	b.WriteString(StyleDim.Render(status + "  q quit"))
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

// canvas is a grid of runes with one foreground color per cell.
type canvas struct {
	cols, rows int
	cells      []rune
	colors     []string
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows), colors: make([]string, cols*rows)}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

// set writes r at the cell holding diagram pixel (x, y). Out of range is ignored.
func (c *canvas) set(x, y float64, r rune, color string) {
	col, row := int(x/cellWidth), int(y/cellHeight)
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = r
	c.colors[row*c.cols+col] = color
}

// text writes s starting at the cell holding (x, y).
func (c *canvas) text(x, y float64, s, color string) {
	for i, r := range []rune(s) {
		c.set(x+float64(i*cellWidth), y, r, color)
	}
}

// String renders the grid, styling runs of equal color together.
func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := row * c.cols
		for col := 0; col < c.cols; {
			color := c.colors[start+col]
			end := col
			for end < c.cols && c.colors[start+end] == color {
				end++
			}
			run := string(c.cells[start+col : start+end])
			if color != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run)
			}
			b.WriteString(run)
			col = end
		}
	}
	return b.String()
}

// drawOrbital rasterizes f onto a cols by rows cell grid.
func drawOrbital(f diagram.OrbitalFrame, cols, rows int) string {
	c := newCanvas(cols, rows)
	for _, ring := range f.Rings {
		// One dot per cell along the circumference.
		steps := max(int(2*math.Pi*ring.Radius/cellWidth), 8)
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			c.set(f.Center.X+ring.Radius*math.Cos(a), f.Center.Y+ring.Radius*math.Sin(a), '·', string(colorDim))
		}
	}
	for _, it := range f.Items {
		c.set(it.X, it.Y, '●', it.Color)
		c.text(it.X+cellWidth, it.Y, it.Label, string(colorGray))
	}
	label := []rune(f.Label)
	c.text(f.Center.X-float64(len(label)*cellWidth)/2, f.Center.Y, f.Label, string(colorGold))
	return c.String()
}
