// Package monitor observes the accelerator control port and reconstructs
// completed transactions. The monitor never drives the bus.
package monitor

import (
	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/sim"
)

// ResponseTickBudget bounds how many ticks the monitor waits for a response
// before closing the transaction with the default output values.
const ResponseTickBudget = 20

// A Recorder consumes the transactions the monitor completes.
type Recorder interface {
	Record(t accel.Transaction)
}

// Comp watches request and response messages through port hooks. One
// outstanding request at a time matches the engine's protocol, so pairing is
// purely positional.
type Comp struct {
	*sim.TickingComponent

	recorders []Recorder

	open      *accel.Request
	ticksLeft int
}

// AddRecorder registers a downstream consumer of completed transactions.
func (c *Comp) AddRecorder(r Recorder) {
	c.recorders = append(c.recorders, r)
}

// Observe attaches the monitor to a port of the accelerator.
func (c *Comp) Observe(port sim.Port) {
	port.AcceptHook(c)
}

// Func implements sim.Hook. Delivered requests open a transaction; sent
// responses close it.
func (c *Comp) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosPortMsgRecvd:
		c.observeRequest(ctx.Item)
	case sim.HookPosPortMsgSend:
		c.observeResponse(ctx.Item)
	}
}

func (c *Comp) observeRequest(item interface{}) {
	reqMsg, isReq := item.(*accel.RequestMsg)
	if !isReq {
		// Resets and other traffic produce no transaction.
		return
	}

	if reqMsg.Req.Opcode == accel.OpcodeNop {
		return
	}

	req := reqMsg.Req
	c.open = &req
	c.ticksLeft = ResponseTickBudget

	c.TickLater()
}

func (c *Comp) observeResponse(item interface{}) {
	rspMsg, isRsp := item.(*accel.ResponseMsg)
	if !isRsp || c.open == nil {
		return
	}

	c.emit(accel.Transaction{Req: *c.open, Rsp: rspMsg.Rsp})
	c.open = nil
}

// Tick counts down the bounded wait of the open transaction. When the budget
// runs out, the transaction is closed with whatever output is present (the
// defaults), and the scoreboard turns it into a visible fail.
func (c *Comp) Tick() bool {
	if c.open == nil {
		return false
	}

	c.ticksLeft--
	if c.ticksLeft <= 0 {
		c.emit(accel.Transaction{Req: *c.open, Rsp: accel.Response{}})
		c.open = nil

		return false
	}

	return true
}

func (c *Comp) emit(t accel.Transaction) {
	for _, r := range c.recorders {
		r.Record(t)
	}
}
