package flightsim

import (
	"context"
	"errors"
	"log"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
	"github.com/san-kum/flowctl/internal/integrators"
	"github.com/san-kum/flowctl/internal/monitoring"
	"github.com/san-kum/flowctl/internal/plan"
	"github.com/san-kum/flowctl/internal/plant"
)

func quiet(t *testing.T) {
	t.Helper()
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(log.Printf) })
}

func newSim(t *testing.T, p *plan.Plan) *Simulator {
	t.Helper()
	s, err := New(plant.NewQuadrotor(), integrators.NewRK4(), p)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type motorLog struct {
	seen []flight.ActuatorCommand
}

func (m *motorLog) OnStep(s *dynamo.Snapshot) {
	if s.Executed {
		m.seen = append(m.seen, s.Motors)
	}
}

func TestHoverConvergesInPassThrough(t *testing.T) {
	quiet(t)
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.Duration = 9
	res, err := newSim(t, plan.Hover()).Run(context.Background(), cfg)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(res.Final[plant.Z]).To(BeNumerically("~", 0.5, 0.01))
	g.Expect(res.Final[plant.X]).To(BeNumerically("~", 0, 0.01))
	g.Expect(res.Final[plant.Y]).To(BeNumerically("~", 0, 0.01))
	g.Expect(res.Final[plant.Roll]).To(BeNumerically("~", 0, 1e-3))
	g.Expect(res.Final[plant.Pitch]).To(BeNumerically("~", 0, 1e-3))

	oz := res.Column("o_z")
	g.Expect(oz).NotTo(BeEmpty())
	g.Expect(oz[len(oz)-1]).To(BeNumerically("~", 0.5, 0.01))
}

func TestStopKeepsMotorsOff(t *testing.T) {
	quiet(t)
	g := NewWithT(t)

	sim := newSim(t, plan.Hover())
	log := &motorLog{}
	sim.AddObserver(log)

	cfg := DefaultConfig()
	cfg.Duration = 0.9
	res, err := sim.Run(context.Background(), cfg)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(log.seen).To(HaveLen(450))
	for _, m := range log.seen {
		g.Expect(m.Zero()).To(BeTrue())
	}
	for _, name := range []string{"m_1", "m_2", "m_3", "m_4"} {
		for _, v := range res.Column(name) {
			g.Expect(v).To(BeZero())
		}
	}
	g.Expect(res.Final[plant.Z]).To(BeZero())
}

func TestTickAccounting(t *testing.T) {
	quiet(t)
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.Duration = 1
	res, err := newSim(t, plan.Hover()).Run(context.Background(), cfg)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(res.Ticks).To(Equal(1000))
	g.Expect(res.Executed).To(Equal(500))
	g.Expect(res.Rows).To(HaveLen(100))
	g.Expect(res.Times).To(HaveLen(100))
	g.Expect(res.Times[1]).To(BeNumerically("~", 0.01, 1e-12))
	g.Expect(res.Fields).To(HaveLen(29 + len(TruthFields)))
	g.Expect(res.Fields).To(ContainElement("true_z"))
	g.Expect(res.Column("nope")).To(BeNil())

	// 40 Hz range and 100 Hz flow over one second
	tof := res.Column("num_tof")
	flow := res.Column("num_flow")
	g.Expect(tof[len(tof)-1]).To(BeNumerically("~", 40, 1))
	g.Expect(flow[len(flow)-1]).To(BeNumerically("~", 100, 1))
}

func TestObserverRunIsDeterministic(t *testing.T) {
	quiet(t)

	run := func(seed int64) (*Result, error) {
		cfg := DefaultConfig()
		cfg.Duration = 2
		cfg.Seed = seed
		cfg.UseObserver = true
		return newSim(t, plan.Hop()).Run(context.Background(), cfg)
	}

	a, errA := run(7)
	b, errB := run(7)
	if (errA == nil) != (errB == nil) {
		t.Fatalf("errors differ: %v vs %v", errA, errB)
	}
	if diff := cmp.Diff(a.Rows, b.Rows, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("same seed produced different logs:\n%s", diff)
	}

	c, _ := run(8)
	if cmp.Equal(a.Rows, c.Rows, cmpopts.EquateNaNs()) {
		t.Error("different seeds produced identical sensor noise")
	}
}

func TestEnsemble(t *testing.T) {
	quiet(t)
	g := NewWithT(t)

	build := func() (*Simulator, error) {
		return New(plant.NewQuadrotor(), integrators.NewRK4(), plan.Hover())
	}
	cfg := DefaultConfig()
	cfg.Duration = 0.5
	results, err := NewEnsemble(build, 3, 10).Run(context.Background(), cfg)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))
	for i, r := range results {
		g.Expect(r.Seed).To(Equal(int64(10 + i)))
		g.Expect(r.Ticks).To(Equal(500))
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	quiet(t)
	sim := newSim(t, plan.Hover())

	tests := map[string]func(*Config){
		"log rate":   func(c *Config) { c.LogRate = 0 },
		"flow rate":  func(c *Config) { c.FlowRate = 5000 },
		"duration":   func(c *Config) { c.Duration = -1 },
		"noise":      func(c *Config) { c.RangeNoise = -0.1 },
		"dimensions": func(c *Config) { c.Initial = dynamo.State{0, 0, 1} },
	}
	for name, mutate := range tests {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := sim.Run(context.Background(), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Initial = dynamo.State{1}
	_, err := sim.Run(context.Background(), cfg)
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("short initial state error = %v", err)
	}
}

func TestRunHonoursCancel(t *testing.T) {
	quiet(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newSim(t, plan.Hover()).Run(ctx, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if res == nil || res.Ticks != 0 {
		t.Errorf("result after cancel = %+v", res)
	}
}

func TestRunReportsDivergence(t *testing.T) {
	quiet(t)
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.Initial = plant.Hovering(0, 0, 1)
	cfg.Initial[plant.VX] = math.Inf(1)

	_, err := newSim(t, plan.Hover()).Run(context.Background(), cfg)
	var simErr *dynamo.SimulationError
	g.Expect(errors.As(err, &simErr)).To(BeTrue())
	g.Expect(simErr.Step).To(Equal(0))
	g.Expect(err).To(MatchError(dynamo.ErrInvalidState))
}

func TestSensorModels(t *testing.T) {
	g := NewWithT(t)

	x := plant.Hovering(0, 0, 0.4)
	g.Expect(Range(x)).To(BeNumerically("~", 0.4, 1e-12))
	nx, ny := Flow(x)
	g.Expect(nx).To(BeZero())
	g.Expect(ny).To(BeZero())

	x[plant.Roll] = 0.2
	g.Expect(Range(x)).To(BeNumerically(">", 0.4))

	moving := plant.Hovering(0, 0, 0.5)
	moving[plant.VX] = 0.1
	nx, _ = Flow(moving)
	g.Expect(nx).To(BeNumerically("~", float64(flight.KFlow)*0.2, 1e-6))

	x[plant.Pitch] = 0.3
	ext := External(x)
	g.Expect(ext.Pitch).To(Equal(float32(-0.3)))
	g.Expect(ext.Roll).To(Equal(float32(0.2)))
}
