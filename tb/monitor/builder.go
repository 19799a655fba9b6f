package monitor

import (
	"github.com/sarchlab/spnsim/sim"
)

// Builder can build monitors.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	recorders []Recorder
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

// WithRecorder adds a downstream consumer of completed transactions.
func (b Builder) WithRecorder(r Recorder) Builder {
	b.recorders = append(b.recorders, r)
	return b
}

// Build creates a monitor.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.recorders = b.recorders

	return c
}
