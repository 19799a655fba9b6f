package accel

import (
	"github.com/sarchlab/spnsim/sim"
)

// Builder can build accelerator engines.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the event engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the component.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates an accelerator engine.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	// One slot each way models the single-request register interface.
	c.CtrlPort = sim.NewPort(c, 1, 1, name+".CtrlPort")
	c.AddPort("Ctrl", c.CtrlPort)

	return c
}
