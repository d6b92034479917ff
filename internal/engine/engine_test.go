package engine_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gssem/internal/engine"
	"github.com/san-kum/gssem/internal/metrics"
	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

func run(p *params.Params, cfg engine.Config) (*engine.Engine, *trajectory.Trajectory) {
	GinkgoHelper()
	e, err := engine.New(p, cfg)
	Expect(err).NotTo(HaveOccurred())
	traj, err := e.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return e, traj
}

func horizon(T int) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Horizon = T
	return cfg
}

var _ = Describe("Engine", func() {
	Describe("configuration", func() {
		It("rejects horizons shorter than two steps", func() {
			for _, T := range []int{-1, 0, 1} {
				_, err := engine.New(params.Default(), horizon(T))
				Expect(err).To(MatchError(engine.ErrHorizonTooShort))
			}
		})

		It("rejects a nil bundle", func() {
			_, err := engine.New(nil, horizon(10))
			Expect(err).To(MatchError(engine.ErrNilParams))
		})

		It("stops when the context is cancelled", func() {
			e, err := engine.New(params.Default(), horizon(10))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err = e.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("a long run", func() {
		It("accepts mortality trends that cross zero", func() {
			_, traj := run(params.Default(), horizon(600))
			k := trajectory.ColumnIndex("mHH1")
			Expect(traj.X()[599][k]).To(BeNumerically("<", 0))
			Expect(traj.Validate()).To(Succeed())
		})
	})

	Describe("a default run of 100 steps", func() {
		var (
			e    *engine.Engine
			traj *trajectory.Trajectory
		)

		BeforeEach(func() {
			e, traj = run(params.Default(), horizon(100))
		})

		It("produces the documented array shapes", func() {
			rows, cols := traj.XShape()
			Expect(rows).To(Equal(100))
			Expect(cols).To(Equal(77))

			a, b, c := traj.YShape()
			Expect([]int{a, b, c}).To(Equal([]int{1, 49, 100}))
		})

		It("contains no NaN and no negative values outside signed quantities", func() {
			Expect(traj.Validate()).To(Succeed())
		})

		It("keeps every compartment non-negative", func() {
			for name, values := range e.State().Stocks() {
				for i, v := range values {
					Expect(v).To(BeNumerically(">=", 0), "%s[%d]", name, i)
				}
			}
		})

		It("keeps both cohorts at one household or more", func() {
			st := e.State()
			for i := 0; i < st.T; i++ {
				Expect(st.NumHH1[i]).To(BeNumerically(">=", 1))
				Expect(st.NumHH2[i]).To(BeNumerically(">=", 1))
				Expect(st.NumHH[i]).To(BeNumerically(">=", 1))
			}
		})

		It("has cohort weights summing to one at every step", func() {
			st := e.State()
			for i := 0; i < st.T; i++ {
				a1, a2 := engine.CohortWeights(st.NumHH1[i], st.NumHH2[i])
				Expect(a1 + a2).To(BeNumerically("~", 1, 1e-12))
			}
		})

		It("conserves mass in compartments without catch-up", func() {
			st := e.State()
			checks := []struct {
				name           string
				stock, in, out []float64
			}{
				{"P2", st.P2, st.IP2, st.DP2},
				{"P3", st.P3, st.IP3, st.DP3},
				{"H2", st.H2, st.IH2, st.DH2},
				{"H3", st.H3, st.IH3, st.DH3},
				{"C1", st.C1, st.IC1, st.DC1},
				{"C2", st.C2, st.IC2, st.DC2},
				{"HH", st.HH, st.IHH, st.DHH},
			}
			for _, c := range checks {
				for i := 0; i < st.T-1; i++ {
					want := c.stock[i] + c.in[i+1] - c.out[i+1]
					Expect(c.stock[i+1]).To(BeNumerically("~", want, 1e-9), "%s[%d]", c.name, i+1)
				}
			}
		})

		It("derives temperature from the previous CO2eq", func() {
			st := e.State()
			p := params.Default()
			for i := 0; i < st.T-1; i++ {
				want := p.TempO + p.TempSlope*st.CO2eq[i] + p.TempIntercept
				Expect(st.Temp[i+1]).To(BeNumerically("~", want, 1e-12))
			}
		})

		It("records the temperature-modified mortality", func() {
			for _, r := range traj.Records {
				Expect(r.CC).To(BeNumerically(">", 0))
				Expect(r.FF).To(BeNumerically(">=", r.CC))
				Expect(r.AA).To(Equal(r.MHH1))
				Expect(r.FF).To(Equal(r.MHH))
			}
		})

		It("rounds the mobility count half to even", func() {
			st := e.State()
			for i, r := range traj.Records[:st.T-1] {
				Expect(r.EMFHH).To(Equal(math.RoundToEven(r.EMF * st.NumHH[i])))
			}
		})
	})

	Describe("the final-step boundary", func() {
		It("replays step T-2 when duplication is on", func() {
			_, traj := run(params.Default(), horizon(5))

			Expect(traj.Records).To(HaveLen(5))
			Expect(traj.Records[4]).To(Equal(traj.Records[3]))
			Expect(traj.Horizon()).To(Equal(5))
		})

		It("emits T-1 rows when duplication is off", func() {
			cfg := horizon(5)
			cfg.DuplicateFinalStep = false
			_, traj := run(params.Default(), cfg)

			Expect(traj.Records).To(HaveLen(4))
			Expect(traj.Horizon()).To(Equal(5))
		})

		It("writes the same final state either way", func() {
			on, _ := run(params.Default(), horizon(5))
			cfg := horizon(5)
			cfg.DuplicateFinalStep = false
			off, _ := run(params.Default(), cfg)

			Expect(on.State().P1).To(Equal(off.State().P1))
			Expect(on.State().NumHH).To(Equal(off.State().NumHH))
		})

		It("runs the minimal horizon", func() {
			_, traj := run(params.Default(), horizon(2))
			Expect(traj.Records).To(HaveLen(2))
		})
	})

	Describe("determinism", func() {
		It("reproduces a deterministic run exactly", func() {
			_, a := run(params.Default(), horizon(40))
			_, b := run(params.Default(), horizon(40))
			Expect(a.X()).To(Equal(b.X()))
			Expect(a.Y()).To(Equal(b.Y()))
		})

		It("reproduces a stochastic run from its seed", func() {
			cfg := horizon(40)
			cfg.Stochastic = true
			cfg.Seed = 7

			_, a := run(params.Default(), cfg)
			_, b := run(params.Default(), cfg)
			Expect(a.X()).To(Equal(b.X()))

			cfg.Seed = 8
			_, c := run(params.Default(), cfg)
			Expect(c.X()).NotTo(Equal(a.X()))
		})
	})

	Describe("zero guards", func() {
		It("prices and demands nothing from an empty plant stock", func() {
			p := params.Default()
			p.Initial.P1 = 0
			_, traj := run(p, horizon(6))

			for _, r := range traj.Records {
				Expect(r.PriceP1).To(BeZero())
				Expect(r.P1Production).To(BeZero())
				Expect(r.P1HHDemand).To(BeZero())
				Expect(r.P1HHDemand1).To(BeZero())
				Expect(r.P1ISDemand).To(BeZero())
				Expect(r.RPP1).To(BeZero())
				Expect(r.P1H2).To(BeZero())
				Expect(r.P1HH).To(BeZero())
			}
			Expect(traj.Validate()).To(Succeed())
		})

		It("prices and demands nothing from an empty herbivore stock", func() {
			p := params.Default()
			p.Initial.H1 = 0
			_, traj := run(p, horizon(6))

			for _, r := range traj.Records {
				Expect(r.PriceH1).To(BeZero())
				Expect(r.H1Production).To(BeZero())
				Expect(r.H1HHDemand).To(BeZero())
				Expect(r.H1C1).To(BeZero())
				Expect(r.P2H1).To(BeZero())
			}
			Expect(traj.Validate()).To(Succeed())
		})

		It("falls back to natural predation without a viable society", func() {
			p := params.Default()
			p.Initial.HH = 0
			Expect(p.Derive()).To(Succeed())
			e, traj := run(p, horizon(3))

			r := traj.Records[0]
			st := e.State()
			Expect(r.PriceIS).To(BeZero())
			Expect(r.PriceEE).To(BeZero())
			Expect(r.P1HHDemand).To(BeZero())
			Expect(r.H1C1).To(BeNumerically("~", p.GH1C1*st.H1[0]*st.C1[0], 1e-15))
		})

		It("drains an exhausted energy pool without going negative", func() {
			p := params.Default()
			p.Initial.ERP = 1e-6
			e, traj := run(p, horizon(10))

			for _, v := range e.State().ERP {
				Expect(v).To(BeNumerically(">=", 0))
			}
			Expect(traj.Records[0].EEIRP).To(BeNumerically("<=", 1e-6))
			last := traj.Records[len(traj.Records)-1]
			Expect(last.EEProduction).To(BeZero())
			Expect(last.PriceEE).To(BeZero())
		})
	})

	Describe("rationing", func() {
		It("scales plant claims to the available stock", func() {
			p := params.Default()
			// households demand far more P1 than exists
			p.DP1HH = 1e-3
			_, traj := run(p, horizon(3))

			r := traj.Records[0]
			avail := p.Initial.P1 + r.RPP1
			Expect(r.P1RP + r.P1H2 + r.P1H1 + r.P1HH + r.P1IS).To(BeNumerically("~", avail, 1e-12))
			Expect(traj.Validate()).To(Succeed())
		})
	})

	Describe("observers and metrics", func() {
		It("notifies observers once per iteration", func() {
			e, err := engine.New(params.Default(), horizon(8))
			Expect(err).NotTo(HaveOccurred())

			var steps []int
			e.AddObserver(engine.ObserverFunc(func(i int, s *state.State, r *trajectory.FlowRecord) {
				steps = append(steps, i)
			}))
			_, err = e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 6}))
		})

		It("stores metric values on the trajectory", func() {
			e, err := engine.New(params.Default(), horizon(20))
			Expect(err).NotTo(HaveOccurred())
			for _, m := range metrics.Standard(20) {
				e.AddMetric(m)
			}
			traj, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(traj.Metrics).To(HaveKey("peak_temperature"))
			Expect(traj.Metrics["final_households"]).To(Equal(e.State().NumHH[19]))
			Expect(traj.Metrics["min_RP"]).To(BeNumerically(">=", 0))
		})
	})
})
