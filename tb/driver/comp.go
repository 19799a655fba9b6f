// Package driver issues stimulus requests to the accelerator, one request at
// a time, and paces itself with the per-opcode timing policy.
package driver

import (
	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/tb/sequence"
)

// ResponseTickBudget bounds how many ticks the driver waits for a response
// before giving up. The timeout is a liveness guard; a hung engine must not
// hang the harness.
const ResponseTickBudget = 20

const (
	holdTicks        = 2
	nopWaitTicks     = 4
	undefWaitTicks   = 6
	resetAssertTicks = 3
	resetSettleTicks = 2
)

type phase int

const (
	phaseReset phase = iota
	phaseWait
	phaseIssue
	phaseWaitResponse
	phaseDone
)

// Comp drives requests from a sequence into the accelerator control port.
type Comp struct {
	*sim.TickingComponent

	// ReqPort sends RequestMsg/ResetMsg and receives ResponseMsg.
	ReqPort sim.Port

	target sim.RemotePort
	seq    sequence.Sequence

	phase      phase
	waitTicks  int
	afterWait  phase
	budgetLeft int
	rspSeen    bool
	pending    *accel.Request

	issuedCount  int
	timeoutCount int
}

// SetTarget points the driver at the accelerator control port.
func (c *Comp) SetTarget(target sim.RemotePort) {
	c.target = target
}

// IssuedCount returns the number of requests put on the bus so far.
func (c *Comp) IssuedCount() int {
	return c.issuedCount
}

// TimeoutCount returns the number of bounded waits that expired without a
// response.
func (c *Comp) TimeoutCount() int {
	return c.timeoutCount
}

// Tick advances the driver by one cycle.
func (c *Comp) Tick() bool {
	c.drainResponses()

	switch c.phase {
	case phaseReset:
		return c.sendReset()
	case phaseWait:
		return c.wait()
	case phaseIssue:
		return c.issue()
	case phaseWaitResponse:
		return c.waitResponse()
	case phaseDone:
		return false
	}

	return false
}

// drainResponses consumes everything the engine sent back, in any phase, so
// a late response can never clog the port.
func (c *Comp) drainResponses() {
	for {
		msg := c.ReqPort.PeekIncoming()
		if msg == nil {
			return
		}

		c.ReqPort.RetrieveIncoming()

		if _, isRsp := msg.(*accel.ResponseMsg); isRsp {
			c.rspSeen = true
		}
	}
}

// sendReset drives reset, then waits out the assert window plus a settle
// margin before accepting work.
func (c *Comp) sendReset() bool {
	msg := &accel.ResetMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: c.ReqPort.AsRemote(),
			Dst: c.target,
		},
	}

	err := c.ReqPort.Send(msg)
	if err != nil {
		return false
	}

	c.startWait(resetAssertTicks+resetSettleTicks, phaseIssue)

	return true
}

func (c *Comp) startWait(ticks int, after phase) {
	c.waitTicks = ticks
	c.afterWait = after
	c.phase = phaseWait
}

func (c *Comp) wait() bool {
	c.waitTicks--
	if c.waitTicks <= 0 {
		c.phase = c.afterWait
	}

	return true
}

func (c *Comp) issue() bool {
	if c.pending == nil {
		req, ok := c.seq.Next()
		if !ok {
			c.phase = phaseDone
			return false
		}

		c.pending = &req
	}

	msg := &accel.RequestMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: c.ReqPort.AsRemote(),
			Dst: c.target,
		},
		Req: *c.pending,
	}

	err := c.ReqPort.Send(msg)
	if err != nil {
		return false
	}

	c.issuedCount++
	c.rspSeen = false

	switch c.pending.Opcode {
	case accel.OpcodeEncrypt, accel.OpcodeDecrypt:
		c.budgetLeft = ResponseTickBudget
		c.phase = phaseWaitResponse
	case accel.OpcodeNop:
		c.startWait(nopWaitTicks, phaseIssue)
	default:
		// UNDEFINED keeps the opcode visible longer than a plain pulse,
		// mirroring the original interface behavior.
		c.startWait(undefWaitTicks, phaseIssue)
	}

	c.pending = nil

	return true
}

// waitResponse resolves the bounded wait: either the response arrived or the
// tick budget ran out. Both outcomes are followed by the same hold window.
func (c *Comp) waitResponse() bool {
	if c.rspSeen {
		c.startWait(holdTicks, phaseIssue)
		return true
	}

	c.budgetLeft--
	if c.budgetLeft <= 0 {
		c.timeoutCount++
		c.startWait(holdTicks, phaseIssue)
	}

	return true
}
