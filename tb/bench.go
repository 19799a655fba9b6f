// Package tb assembles the verification bench: the accelerator under test,
// the driver, the monitor, the scoreboard, and the connection between them.
package tb

import (
	"log"

	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/datarecording"
	"github.com/sarchlab/spnsim/golden"
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/sim/directconnection"
	"github.com/sarchlab/spnsim/tb/driver"
	"github.com/sarchlab/spnsim/tb/monitor"
	"github.com/sarchlab/spnsim/tb/scoreboard"
	"github.com/sarchlab/spnsim/tb/sequence"
)

// A Bench is one fully wired verification run.
type Bench struct {
	Engine     sim.Engine
	Accel      *accel.Comp
	Driver     *driver.Comp
	Monitor    *monitor.Comp
	Scoreboard *scoreboard.Scoreboard
	Conn       *directconnection.Comp
}

// Run resets and drives the whole stimulus stream through the accelerator
// and reports the scoreboard summary when the event queue drains.
func (b *Bench) Run() error {
	b.Driver.TickLater()

	err := b.Engine.Run()
	if err != nil {
		return err
	}

	b.Engine.Finished()

	return nil
}

// Passed reports the overall verdict of the run.
func (b *Bench) Passed() bool {
	return b.Scoreboard.Passed()
}

// Builder can build benches.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	seq      sequence.Sequence
	logger   *log.Logger
	recorder datarecording.DataRecorder
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the event engine. A serial engine is created when none is
// given.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency all bench components tick at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSequence sets the stimulus stream.
func (b Builder) WithSequence(seq sequence.Sequence) Builder {
	b.seq = seq
	return b
}

// WithLogger sets the logger the scoreboard writes to.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithDataRecorder attaches a transaction trace recorder.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// Build creates the bench.
func (b Builder) Build(name string) *Bench {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	dut := accel.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.freq).
		Build(name + ".DUT")

	drv := driver.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.freq).
		WithSequence(b.seq).
		WithTarget(dut.CtrlPort.AsRemote()).
		Build(name + ".Driver")

	sb := scoreboard.MakeBuilder().
		WithPredictor(golden.Model{}).
		WithLogger(b.logger).
		WithDataRecorder(b.recorder).
		Build(name + ".Scoreboard")

	mon := monitor.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.freq).
		WithRecorder(sb).
		Build(name + ".Monitor")
	mon.Observe(dut.CtrlPort)

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.freq).
		Build(name + ".Conn")
	conn.PlugIn(dut.CtrlPort)
	conn.PlugIn(drv.ReqPort)

	engine.RegisterSimulationEndHandler(sb)

	return &Bench{
		Engine:     engine,
		Accel:      dut,
		Driver:     drv,
		Monitor:    mon,
		Scoreboard: sb,
		Conn:       conn,
	}
}
