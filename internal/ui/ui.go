// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/input"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/transient"
	"github.com/litescript/ls-orrery/internal/version"
)

// hudLines is the height of the HUD below the scene.
const hudLines = 2

// maxFrameDt caps one tick's real delta so a stalled terminal doesn't
// teleport the camera.
const maxFrameDt = 0.25

// FrameMsg drives one simulation tick.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	FPS int
	Log *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	sim      *sim.Context
	keyboard *input.Keyboard
	canvas   *render.Canvas
	log      *logging.Logger
	interval time.Duration
	now      func() time.Time

	width  int
	height int
	ready  bool
	last   time.Time
	frames int
}

// New creates the root model around a simulation and its input source.
func New(ctx *sim.Context, kb *input.Keyboard, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	return Model{
		sim:      ctx,
		keyboard: kb,
		canvas:   render.NewCanvas(80, 24-hudLines),
		log:      log,
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.log.Info("quit after %d frames", m.frames)
			return m, tea.Quit
		case "m":
			// Mouse look on/off.
			m.keyboard.SetCursorCaptured(!m.keyboard.Captured())
			m.sim.Camera.Activate()
		default:
			if c, ok := m.keyboard.HandleKey(msg, m.now()); ok {
				m.log.Debug("key %q -> %s", msg.String(), c)
			}
		}

	case tea.MouseMsg:
		m.keyboard.HandleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.canvas.Resize(msg.Width, msg.Height-hudLines)
		m.sim.Render(m.canvas, m.canvas.Aspect())

	case FrameMsg:
		now := time.Time(msg)
		dt := m.interval.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now
		if dt > maxFrameDt {
			dt = maxFrameDt
		}

		m.keyboard.Sample(now)
		m.sim.Tick(m.keyboard, dt)
		m.sim.Render(m.canvas, m.canvas.Aspect())
		m.frames++
		return m, frameCmd(m.interval)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.canvas.Frame() + "\n" + m.renderHUD()
}

func (m Model) renderHUD() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	st := m.sim.Status()
	var b strings.Builder

	// First line: camera and clock.
	if st.Target != "" {
		b.WriteString(headerStyle.Render(fmt.Sprintf("◆ %s", st.Mode)))
		b.WriteString(valueStyle.Render(" " + st.Target))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("◇ %s", st.Mode)))
	}
	b.WriteString("  ")
	if st.Mode != "Free" {
		b.WriteString(labelStyle.Render("Dist: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f", st.Distance)))
		b.WriteString("  ")
	}
	b.WriteString(labelStyle.Render("t: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1fs", st.SimTime)))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Speed: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2fx", st.TimeScale)))
	if st.Paused {
		b.WriteString(accentStyle.Render(" ⏸ paused"))
	}
	if st.Touring {
		b.WriteString(accentStyle.Render("  ↻ tour"))
	}
	if st.Transient == transient.Active {
		b.WriteString(accentStyle.Render("  ☄ inbound"))
	}
	if !m.keyboard.Captured() {
		b.WriteString(dimStyle.Render("  mouse off"))
	}
	b.WriteString("\n")

	// Second line: latest notice and key help.
	if st.Notice != "" {
		b.WriteString(valueStyle.Render(st.Notice))
		b.WriteString(dimStyle.Render("  |  "))
	}
	b.WriteString(dimStyle.Render("wasd/space/z: fly | arrows: look | 1/2/3: free/orbit/follow | tab: target | +/-: dist | [ ]: speed | p: pause | t: tour | q: quit"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s", version.Version)))

	return b.String()
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
