package viz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flowctl/internal/controller"
	"github.com/san-kum/flowctl/internal/flightsim"
	"github.com/san-kum/flowctl/internal/plan"
	"github.com/san-kum/flowctl/internal/telemetry"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 300
	trailCapacity   = 2000
	refresh         = time.Second / 20
)

type TickMsg time.Time

// DoneMsg carries the outcome of the background run.
type DoneMsg struct {
	Result *flightsim.Result
	Err    error
}

type gauges struct {
	ox, oy, oz          *telemetry.Var
	psi, theta, phi     *telemetry.Var
	oxDes, oyDes, ozDes *telemetry.Var
	fz                  *telemetry.Var
	numTOF, numFlow     *telemetry.Var
	m                   [4]*telemetry.Var
}

func bind(g *telemetry.Group) gauges {
	v := func(name string) *telemetry.Var {
		x, ok := g.Lookup(name)
		if !ok {
			panic("viz: telemetry field " + name + " missing")
		}
		return x
	}
	return gauges{
		ox: v("o_x"), oy: v("o_y"), oz: v("o_z"),
		psi: v("psi"), theta: v("theta"), phi: v("phi"),
		oxDes: v("o_x_des"), oyDes: v("o_y_des"), ozDes: v("o_z_des"),
		fz:     v("f_z"),
		numTOF: v("num_tof"), numFlow: v("num_flow"),
		m: [4]*telemetry.Var{v("m_1"), v("m_2"), v("m_3"), v("m_4")},
	}
}

type point struct{ x, y float64 }

// Model flies one simulation in the background and renders its telemetry.
type Model struct {
	sim    *flightsim.Simulator
	cfg    flightsim.Config
	name   string
	ctx    context.Context
	cancel context.CancelFunc
	g      gauges
	params *controller.Params

	canvas      *Canvas
	trail       []point
	altitude    []float64
	altitudeDes []float64
	started     time.Time
	duration    float64

	frozen   bool
	showHelp bool
	done     bool
	err      error
	result   *flightsim.Result
}

// NewModel prepares a live view. The run starts when the program starts;
// cfg.RealTime is forced on so the view advances at wall-clock speed.
func NewModel(ctx context.Context, sim *flightsim.Simulator, cfg flightsim.Config, name string) *Model {
	ctx, cancel := context.WithCancel(ctx)
	cfg.RealTime = true
	duration := cfg.Duration
	if duration == 0 {
		duration = sim.Plan().Duration()
	}
	return &Model{
		sim:         sim,
		cfg:         cfg,
		name:        name,
		ctx:         ctx,
		cancel:      cancel,
		g:           bind(sim.Telemetry()),
		params:      sim.Params(),
		canvas:      NewCanvas(width, height, extent(sim.Plan())),
		trail:       make([]point, 0, trailCapacity),
		altitude:    make([]float64, 0, historyCapacity),
		altitudeDes: make([]float64, 0, historyCapacity),
		duration:    duration,
	}
}

// extent is the side of the square that holds every waypoint of p, with a
// margin.
func extent(p *plan.Plan) float64 {
	r := 0.5
	grow := func(pt plan.Point) {
		r = math.Max(r, math.Max(math.Abs(pt[0]), math.Abs(pt[1])))
	}
	for _, s := range p.Segments {
		grow(s.At)
		grow(s.From)
		grow(s.To)
	}
	return 2 * r * 1.25
}

// Result is the finished run, or nil while it is still flying.
func (m *Model) Result() (*flightsim.Result, error) { return m.result, m.err }

func (m *Model) Init() tea.Cmd {
	m.started = time.Now()
	return tea.Batch(m.fly, tick())
}

func (m *Model) fly() tea.Msg {
	res, err := m.sim.Run(m.ctx, m.cfg)
	return DoneMsg{Result: res, Err: err}
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case "o":
			m.toggleObserver()
		case "r":
			m.params.SetParam(controller.ParamResetObserver, 1)
		case " ":
			m.frozen = !m.frozen
		case "c":
			m.trail = m.trail[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.frozen && !m.done {
			m.sample()
		}
		if !m.done {
			return m, tick()
		}
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		if !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m.sample()
	}
	return m, nil
}

func (m *Model) toggleObserver() {
	on := m.params.GetParams()[controller.ParamUseObserver]
	m.params.SetParam(controller.ParamUseObserver, 1-on)
}

// sample copies the current telemetry into the view's histories.
func (m *Model) sample() {
	p := point{m.g.ox.Value(), m.g.oy.Value()}
	if len(m.trail) == trailCapacity {
		copy(m.trail, m.trail[1:])
		m.trail = m.trail[:trailCapacity-1]
	}
	m.trail = append(m.trail, p)
	m.altitude = push(m.altitude, m.g.oz.Value())
	m.altitudeDes = push(m.altitudeDes, m.g.ozDes.Value())
}

func push(h []float64, v float64) []float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:historyCapacity-1]
	}
	return append(h, v)
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.Line(-m.canvas.Span/2, 0, m.canvas.Span/2, 0)
	m.canvas.Line(0, -m.canvas.Span/2, 0, m.canvas.Span/2)
	for i := 1; i < len(m.trail); i++ {
		a, b := m.trail[i-1], m.trail[i]
		m.canvas.Line(a.x, a.y, b.x, b.y)
	}
	m.canvas.Cross(m.g.oxDes.Value(), m.g.oyDes.Value())
}

func (m *Model) status() string {
	switch {
	case m.err != nil:
		return statusFailed.Render("FAILED")
	case m.done:
		return statusFrozen.Render("FINISHED")
	case m.frozen:
		return statusFrozen.Render("FROZEN")
	}
	return statusRunning.Render("FLYING")
}

func (m *Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	mode := "pass-through"
	if m.params.GetParams()[controller.ParamUseObserver] != 0 {
		mode = "observer"
	}
	elapsed := time.Since(m.started).Seconds()
	if m.done {
		elapsed = m.duration
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Estimator", mode)
	row("Time", fmt.Sprintf("%5.1fs %s", elapsed, ProgressBar(elapsed/m.duration, 16)))
	row("Position", fmt.Sprintf("%+.2f %+.2f %+.2f", m.g.ox.Value(), m.g.oy.Value(), m.g.oz.Value()))
	row("Target", fmt.Sprintf("%+.2f %+.2f %+.2f", m.g.oxDes.Value(), m.g.oyDes.Value(), m.g.ozDes.Value()))
	row("Attitude", fmt.Sprintf("%+.1f %+.1f %+.1f deg",
		deg(m.g.phi.Value()), deg(m.g.theta.Value()), deg(m.g.psi.Value())))
	row("Thrust", fmt.Sprintf("%.4f N", m.g.fz.Value()))
	var motors strings.Builder
	for _, v := range m.g.m {
		motors.WriteString(MotorBar(uint16(v.Value())))
	}
	row("Motors", motors.String())
	row("Sensors", fmt.Sprintf("tof %d  flow %d", uint16(m.g.numTOF.Value()), uint16(m.g.numFlow.Value())))

	if len(m.altitude) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.altitude, m.altitudeDes},
			asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("altitude (m)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(statusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nO:Observer R:Reset SP:Freeze\nC:Clear ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  O      - Toggle observer            ║
║  R      - Reset observer state       ║
║  Space  - Freeze display             ║
║  C      - Clear ground track         ║
║  ?      - Toggle this help           ║
║  Q      - Quit                       ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Run shows the live view until the user quits and returns the run's
// result if it finished.
func Run(ctx context.Context, sim *flightsim.Simulator, cfg flightsim.Config, name string) (*flightsim.Result, error) {
	m := NewModel(ctx, sim, cfg, name)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return nil, err
	}
	return m.Result()
}
