package driver

import (
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/tb/sequence"
)

// Builder can build drivers.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	seq    sequence.Sequence
	target sim.RemotePort
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

// WithSequence sets the sequence that the driver issues.
func (b Builder) WithSequence(seq sequence.Sequence) Builder {
	b.seq = seq
	return b
}

// WithTarget sets the accelerator control port the driver sends to.
func (b Builder) WithTarget(target sim.RemotePort) Builder {
	b.target = target
	return b
}

// Build creates a driver.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.seq = b.seq
	c.target = b.target

	c.ReqPort = sim.NewPort(c, 4, 4, name+".ReqPort")
	c.AddPort("Req", c.ReqPort)

	return c
}
