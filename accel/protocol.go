package accel

import (
	"fmt"

	"github.com/sarchlab/spnsim/sim"
)

// Opcode selects the operation that the accelerator performs on a request.
type Opcode uint8

// The opcodes of the accelerator protocol. The values match the 2-bit opcode
// field of the hardware interface.
const (
	OpcodeNop Opcode = iota
	OpcodeEncrypt
	OpcodeDecrypt
	OpcodeUndefined
)

func (o Opcode) String() string {
	switch o {
	case OpcodeNop:
		return "NOP"
	case OpcodeEncrypt:
		return "ENCRYPT"
	case OpcodeDecrypt:
		return "DECRYPT"
	case OpcodeUndefined:
		return "UNDEFINED"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(o))
	}
}

// Status reports the outcome of a request. The values match the 2-bit
// valid/status field of the hardware interface.
type Status uint8

// The status codes of the accelerator protocol.
const (
	StatusNone Status = iota
	StatusEncryptOK
	StatusDecryptOK
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusEncryptOK:
		return "ENCRYPT_OK"
	case StatusDecryptOK:
		return "DECRYPT_OK"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// A Request is one operation handed to the accelerator. It is immutable once
// issued.
type Request struct {
	Opcode Opcode
	Data   uint16
	Key    uint32
}

// A Response is the outcome the accelerator presents for one request.
type Response struct {
	Data   uint16
	Status Status
}

// A Transaction pairs a request with the response observed for it. The
// monitor creates transactions; the scoreboard consumes them.
type Transaction struct {
	Req Request
	Rsp Response
}

// RequestMsg carries a Request over the control port.
type RequestMsg struct {
	sim.MsgMeta

	Req Request
}

// Meta returns the meta data of the message.
func (m *RequestMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a copy of the message with a different ID.
func (m *RequestMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// ResponseMsg carries a Response back to the requester.
type ResponseMsg struct {
	sim.MsgMeta

	Rsp   Response
	RspTo string
}

// Meta returns the meta data of the message.
func (m *ResponseMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a copy of the message with a different ID.
func (m *ResponseMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the request the response answers.
func (m *ResponseMsg) GetRspTo() string {
	return m.RspTo
}

// ResetMsg models the active-high reset line. It forces the engine to IDLE
// and clears the latched request from any state. It is never answered.
type ResetMsg struct {
	sim.MsgMeta
}

// Meta returns the meta data of the message.
func (m *ResetMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a copy of the message with a different ID.
func (m *ResetMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}
