package controller_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flowctl/internal/controller"
	"github.com/san-kum/flowctl/internal/flight"
)

type recorder struct {
	calls []flight.ActuatorCommand
}

func (r *recorder) SetMotors(cmd flight.ActuatorCommand) {
	r.calls = append(r.calls, cmd)
}

var hoverSetpoint = flight.Setpoint{Z: 0.5, ModeZ: flight.ModeAbsolute}

var _ = Describe("ShouldExecute", func() {
	It("fires on even base ticks only", func() {
		for tick := uint32(0); tick < 20; tick++ {
			Expect(controller.ShouldExecute(tick)).To(Equal(tick%2 == 0), "tick %d", tick)
		}
		Expect(controller.ShouldExecute(math.MaxUint32)).To(BeFalse())
		Expect(controller.ShouldExecute(math.MaxUint32 - 1)).To(BeTrue())
	})
})

var _ = Describe("Step", func() {
	var (
		st  *controller.State
		act *recorder
	)

	BeforeEach(func() {
		st = controller.New()
		act = &recorder{}
	})

	It("delivers nothing on skipped ticks", func() {
		Expect(controller.Step(st, controller.Inputs{Tick: 1, Setpoint: hoverSetpoint}, act)).To(BeFalse())
		Expect(act.calls).To(BeEmpty())
	})

	It("delivers exactly one command per executed tick", func() {
		for tick := uint32(0); tick < 10; tick++ {
			controller.Step(st, controller.Inputs{Tick: tick, Setpoint: hoverSetpoint}, act)
		}
		Expect(act.calls).To(HaveLen(5))
	})

	Context("with the z-axis disabled", func() {
		It("always delivers zeros", func() {
			st.Params().SetParam(controller.ParamUseObserver, 1)
			in := controller.Inputs{
				IMU:      flight.RawIMU{GyroX: 3, GyroY: -2, AccelZ: 30},
				External: flight.ExternalEstimate{Z: -4, Pitch: 1},
				Setpoint: flight.Setpoint{X: 1, Y: 1, Z: 10, ModeZ: flight.ModeDisable},
			}
			for tick := uint32(0); tick < 100; tick += 2 {
				in.Tick = tick
				Expect(controller.Step(st, in, act)).To(BeTrue())
			}
			Expect(act.calls).To(HaveLen(50))
			for _, c := range act.calls {
				Expect(c.Zero()).To(BeTrue())
			}
			Expect(st.Last().Command).To(Equal(flight.ControlCommand{}))
		})

		It("still runs the estimator", func() {
			in := controller.Inputs{
				External: flight.ExternalEstimate{X: 2, Y: 3, Z: 1},
				Setpoint: flight.Setpoint{ModeZ: flight.ModeDisable},
			}
			controller.Step(st, in, act)
			s := st.Estimator.State()
			Expect(s.OX).To(Equal(float32(2)))
			Expect(s.OZ).To(Equal(float32(1)))
		})
	})

	Context("in pass-through mode at the hover point", func() {
		It("commands equal hover thrust on all motors", func() {
			in := controller.Inputs{
				IMU:      flight.RawIMU{AccelZ: flight.Gravity},
				External: flight.ExternalEstimate{Z: 0.5},
				Setpoint: hoverSetpoint,
			}
			controller.Step(st, in, act)
			Expect(act.calls).To(HaveLen(1))
			Expect(act.calls[0]).To(Equal(flight.ActuatorCommand{43082, 43082, 43082, 43082}))
		})
	})

	Context("with a reset requested", func() {
		It("zeroes the estimate once and clears the flag", func() {
			p := st.Params()
			Expect(p.SetParam(controller.ParamUseObserver, 1)).To(Succeed())

			imu := flight.RawIMU{GyroX: 0.1, GyroY: 0.2, GyroZ: 0.3, AccelZ: 12}
			for tick := uint32(0); tick < 40; tick += 2 {
				controller.Step(st, controller.Inputs{Tick: tick, IMU: imu, Setpoint: hoverSetpoint}, act)
			}
			Expect(st.Estimator.State().VZ).NotTo(BeZero())

			Expect(p.SetParam(controller.ParamResetObserver, 1)).To(Succeed())
			Expect(p.GetParams()).To(HaveKeyWithValue(controller.ParamResetObserver, 1.0))

			controller.Step(st, controller.Inputs{Tick: 40, IMU: flight.RawIMU{AccelZ: flight.Gravity}, Setpoint: hoverSetpoint}, act)
			s := st.Estimator.State()
			Expect(s.OX).To(BeZero())
			Expect(s.VZ).To(BeZero())
			Expect(s.WX).To(BeZero())
			Expect(p.GetParams()).To(HaveKeyWithValue(controller.ParamResetObserver, 0.0))
		})
	})
})

var _ = Describe("Telemetry", func() {
	It("mirrors the last executed tick", func() {
		st := controller.New()
		act := &recorder{}
		st.Sensors.RecordRange(0.42)
		st.Sensors.RecordFlow(1.5, -2.5)

		in := controller.Inputs{
			IMU:      flight.RawIMU{GyroZ: 0.25, AccelZ: 9.5},
			External: flight.ExternalEstimate{X: 0.1, Z: 0.5},
			Setpoint: flight.Setpoint{X: 0.3, Y: -0.2, Z: 0.5, ModeZ: flight.ModeAbsolute},
		}
		controller.Step(st, in, act)
		controller.Step(st, controller.Inputs{Tick: 1}, act)

		g := st.Log.Group()
		value := func(name string) float64 {
			v, ok := g.Lookup(name)
			Expect(ok).To(BeTrue(), name)
			return v.Value()
		}
		last := st.Last()

		Expect(value("num_tof")).To(Equal(1.0))
		Expect(value("num_flow")).To(Equal(1.0))
		Expect(value("r")).To(Equal(float64(float32(0.42))))
		Expect(value("n_y")).To(Equal(-2.5))
		Expect(value("a_z")).To(Equal(9.5))
		Expect(value("w_z")).To(Equal(0.25))
		Expect(value("o_x")).To(Equal(float64(float32(0.1))))
		Expect(value("o_x_des")).To(Equal(float64(float32(0.3))))
		Expect(value("tau_y")).To(Equal(float64(last.Command.TauY)))
		Expect(value("f_z")).To(Equal(float64(last.Command.Fz)))
		for i := 0; i < 4; i++ {
			Expect(value([]string{"m_1", "m_2", "m_3", "m_4"}[i])).To(Equal(float64(last.Motors[i])))
		}
	})

	It("registers every field of the log group", func() {
		names := controller.NewLog().Group().Names()
		Expect(names).To(HaveLen(29))
		Expect(names).To(ContainElements("num_tof", "o_z_des", "m_4", "a_z"))
	})
})

var _ = Describe("Params", func() {
	It("rejects unknown names", func() {
		err := controller.New().Params().SetParam("kp", 1)
		Expect(err).To(MatchError(controller.ErrUnknownParam))
	})

	It("treats any non-zero value as true", func() {
		st := controller.New()
		p := st.Params()
		Expect(p.SetParam(controller.ParamUseObserver, 0.5)).To(Succeed())
		Expect(st.Estimator.Flags.UseObserver()).To(BeTrue())
		Expect(p.SetParam(controller.ParamUseObserver, 0)).To(Succeed())
		Expect(st.Estimator.Flags.UseObserver()).To(BeFalse())
		Expect(p.Names()).To(Equal([]string{"reset_observer", "use_observer"}))
	})
})

var _ = Describe("Reset", func() {
	It("keeps the sensor cache that drivers write to", func() {
		st := controller.New()
		driver := st.Sensors
		driver.RecordRange(0.3)
		driver.RecordFlow(1, 2)

		st.Reset()
		Expect(st.Sensors).To(BeIdenticalTo(driver))
		Expect(st.Sensors.Snapshot()).To(BeZero())

		driver.RecordRange(0.4)
		controller.Step(st, controller.Inputs{Setpoint: hoverSetpoint}, &recorder{})
		Expect(st.Last().Sample.RangeDistance).To(BeNumerically("==", 0.4))
		Expect(st.Last().Sample.RangeCount).To(BeNumerically("==", 1))
	})
})

var _ = Describe("Sensor counters", func() {
	It("wrap after 65536 range deliveries", func() {
		st := controller.New()
		for i := 0; i < 65536; i++ {
			st.Sensors.RecordRange(0.3)
		}
		controller.Step(st, controller.Inputs{Setpoint: hoverSetpoint}, &recorder{})
		v, _ := st.Log.Group().Lookup("num_tof")
		Expect(v.Uint16()).To(BeZero())
	})
})
