// Package accel models the crypto accelerator engine, a small state machine
// that executes one encrypt or decrypt request at a time over its control
// port.
package accel

import (
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/spn"
)

type engineState int

const (
	stateIdle engineState = iota
	stateProcessing
	stateDone
	stateError
)

// Comp is the accelerator engine. It accepts a request in one cycle, computes
// in the next, and presents the response in the cycle after that. While a
// request is latched, no new request is accepted.
type Comp struct {
	*sim.TickingComponent

	// CtrlPort receives RequestMsg and ResetMsg and sends ResponseMsg.
	CtrlPort sim.Port

	state  engineState
	req    *RequestMsg
	result Response
}

// Tick advances the engine by one cycle.
func (c *Comp) Tick() bool {
	if c.handleReset() {
		return true
	}

	switch c.state {
	case stateIdle:
		return c.acceptRequest()
	case stateProcessing:
		return c.compute()
	case stateDone, stateError:
		return c.respond()
	}

	return false
}

// handleReset applies a pending reset in any state.
func (c *Comp) handleReset() bool {
	msg := c.CtrlPort.PeekIncoming()
	if _, isReset := msg.(*ResetMsg); !isReset {
		return false
	}

	c.CtrlPort.RetrieveIncoming()

	c.state = stateIdle
	c.req = nil
	c.result = Response{}

	return true
}

func (c *Comp) acceptRequest() bool {
	msg := c.CtrlPort.PeekIncoming()
	if msg == nil {
		return false
	}

	reqMsg, isReq := msg.(*RequestMsg)
	if !isReq {
		panic("unknown message type on control port")
	}

	c.CtrlPort.RetrieveIncoming()

	switch reqMsg.Req.Opcode {
	case OpcodeNop:
		// The engine stays idle and presents no response.
	case OpcodeEncrypt, OpcodeDecrypt:
		c.req = reqMsg
		c.state = stateProcessing
	default:
		c.req = reqMsg
		c.result = Response{Data: 0, Status: StatusError}
		c.state = stateError
	}

	return true
}

func (c *Comp) compute() bool {
	// Round keys are derived from the latched key on every request; a key
	// change between requests can never reuse stale keys.
	switch c.req.Req.Opcode {
	case OpcodeEncrypt:
		c.result = Response{
			Data:   spn.Encrypt(c.req.Req.Data, c.req.Req.Key),
			Status: StatusEncryptOK,
		}
	case OpcodeDecrypt:
		c.result = Response{
			Data:   spn.Decrypt(c.req.Req.Data, c.req.Req.Key),
			Status: StatusDecryptOK,
		}
	}

	c.state = stateDone

	return true
}

func (c *Comp) respond() bool {
	rsp := &ResponseMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: c.CtrlPort.AsRemote(),
			Dst: c.req.Src,
		},
		Rsp:   c.result,
		RspTo: c.req.ID,
	}

	err := c.CtrlPort.Send(rsp)
	if err != nil {
		return false
	}

	c.req = nil
	c.result = Response{}
	c.state = stateIdle

	return true
}
