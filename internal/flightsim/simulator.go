package flightsim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/flowctl/internal/controller"
	"github.com/san-kum/flowctl/internal/dynamo"
	"github.com/san-kum/flowctl/internal/flight"
	"github.com/san-kum/flowctl/internal/mixer"
	"github.com/san-kum/flowctl/internal/monitoring"
	"github.com/san-kum/flowctl/internal/plan"
	"github.com/san-kum/flowctl/internal/plant"
	"github.com/san-kum/flowctl/internal/telemetry"
)

// RateBase is the scheduler rate in Hz.
const RateBase = flight.RateMainLoop

type Simulator struct {
	vehicle    *plant.Quadrotor
	integrator dynamo.Integrator
	plan       *plan.Plan
	model      *mixer.Model
	ctrl       *controller.State
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

// New builds a simulator. The actuation model is the inverse of the
// controller's mixer.
func New(vehicle *plant.Quadrotor, integrator dynamo.Integrator, p *plan.Plan) (*Simulator, error) {
	ctrl := controller.New()
	model, err := mixer.NewModel(ctrl.Mixer.M)
	if err != nil {
		return nil, fmt.Errorf("actuation model: %w", err)
	}
	return &Simulator{
		vehicle:    vehicle,
		integrator: integrator,
		plan:       p,
		model:      model,
		ctrl:       ctrl,
	}, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Telemetry is the controller's log group. It may be sampled from any
// goroutine while Run is in progress.
func (s *Simulator) Telemetry() *telemetry.Group { return s.ctrl.Log.Group() }

// Params is the controller's runtime parameter group. It may be written from
// any goroutine while Run is in progress.
func (s *Simulator) Params() *controller.Params { return s.ctrl.Params() }

func (s *Simulator) Plan() *plan.Plan { return s.plan }

// Run flies the plan. On divergence it returns the partial result together
// with a *dynamo.SimulationError.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	duration := cfg.Duration
	if duration == 0 {
		duration = s.plan.Duration()
	}
	steps := int(math.Round(duration * RateBase))
	dt := 1.0 / RateBase

	s.ctrl.Reset()
	params := s.ctrl.Params()
	if cfg.UseObserver {
		params.SetParam(controller.ParamUseObserver, 1)
	}
	if cfg.ResetOnStart {
		params.SetParam(controller.ParamResetObserver, 1)
	}

	x := plant.Hovering(0, 0, 0)
	if cfg.Initial != nil {
		x = cfg.Initial.Clone()
	}

	group := s.ctrl.Log.Group()
	logEvery := every(cfg.LogRate)
	res := &Result{
		Plan:    s.plan.Name,
		Fields:  append(group.Names(), TruthFields...),
		Times:   make([]float64, 0, steps/logEvery+1),
		Rows:    make([][]float64, 0, steps/logEvery+1),
		Metrics: make(map[string]float64),
		Seed:    cfg.Seed,
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	drv := newDrivers(s.ctrl.Sensors, cfg)
	act := newBackend(s.model)
	var pace *pacer
	if cfg.RealTime {
		pace = newPacer()
	}

	segment := -1
	snap := dynamo.Snapshot{}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t := float64(i) * dt

		if seg := s.plan.Index(t); seg != segment {
			segment = seg
			if seg >= 0 {
				monitoring.Logf("flightsim: t=%.3f segment %d (%s)", t, seg, s.plan.Segments[seg].Kind)
			}
		}
		sp, _ := s.plan.At(t)

		drv.poll(i, x)
		in := controller.Inputs{
			Tick:     uint32(i),
			IMU:      IMU(s.vehicle, x, act.control()),
			External: External(x),
			Setpoint: sp,
		}
		executed := controller.Step(s.ctrl, in, act)
		if executed {
			res.Executed++
		}
		u := act.control()

		if len(s.metrics) > 0 || len(s.observers) > 0 {
			last := s.ctrl.Last()
			snap = dynamo.Snapshot{
				Time: t, Tick: in.Tick, Executed: executed,
				Truth: x, Estimate: last.State, Setpoint: sp,
				Command: last.Command, Motors: act.motors,
			}
			for _, m := range s.metrics {
				m.Observe(&snap)
			}
			for _, o := range s.observers {
				o.OnStep(&snap)
			}
		}

		if i%logEvery == 0 {
			row := group.Sample(make([]float64, 0, len(res.Fields)))
			res.Rows = append(res.Rows, truthRow(row, x))
			res.Times = append(res.Times, t)
		}

		next := plant.Constrain(s.integrator.Step(s.vehicle, x, u, t, dt))
		if cfg.ValidateState && !next.IsValid() {
			res.Final = x
			return res, &dynamo.SimulationError{Step: i, Time: t, State: next, Wrapped: dynamo.ErrInvalidState}
		}
		x = next
		res.Ticks++

		if pace != nil && i%logEvery == 0 {
			if err := pace.wait(ctx, t+dt); err != nil {
				return res, err
			}
		}
	}

	res.Final = x
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	monitoring.Logf("flightsim: %s finished, %d ticks, %d pipeline runs", s.plan.Name, res.Ticks, res.Executed)
	return res, nil
}
