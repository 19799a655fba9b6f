// Package sequence generates the request streams that the driver feeds into
// the accelerator.
package sequence

import (
	"github.com/sarchlab/spnsim/accel"
)

// A Sequence produces requests one at a time. Next returns false when the
// stream is exhausted.
type Sequence interface {
	Next() (accel.Request, bool)
}

type listSequence struct {
	reqs []accel.Request
}

func (s *listSequence) Next() (accel.Request, bool) {
	if len(s.reqs) == 0 {
		return accel.Request{}, false
	}

	req := s.reqs[0]
	s.reqs = s.reqs[1:]

	return req, true
}

// NewBasic returns the smoke-test stream: one of each opcode with fixed
// literal operands.
func NewBasic() Sequence {
	return &listSequence{reqs: []accel.Request{
		{Opcode: accel.OpcodeNop},
		{Opcode: accel.OpcodeEncrypt, Data: 0xABCD, Key: 0x12345678},
		{Opcode: accel.OpcodeDecrypt, Data: 0x1234, Key: 0x12345678},
		{Opcode: accel.OpcodeUndefined},
	}}
}

// NewRoundTrip returns two encrypt/decrypt pairs. Each decrypt operates on
// the ciphertext of the preceding encrypt, so the pair exercises the
// round-trip identity through the full engine path.
func NewRoundTrip() Sequence {
	return &listSequence{reqs: []accel.Request{
		{Opcode: accel.OpcodeEncrypt, Data: 0xABCD, Key: 0x12345678},
		// 0xAEF2 is Encrypt(0xABCD, 0x12345678).
		{Opcode: accel.OpcodeDecrypt, Data: 0xAEF2, Key: 0x12345678},
		{Opcode: accel.OpcodeEncrypt, Data: 0xCAFE, Key: 0xDEADBEEF},
		// 0x8FE3 is Encrypt(0xCAFE, 0xDEADBEEF).
		{Opcode: accel.OpcodeDecrypt, Data: 0x8FE3, Key: 0xDEADBEEF},
	}}
}

// NewEdge returns boundary operand sets: all-zero, all-one, the
// sign-boundary operands, and one nontrivial round-trip pair.
func NewEdge() Sequence {
	return &listSequence{reqs: []accel.Request{
		{Opcode: accel.OpcodeEncrypt, Data: 0x0000, Key: 0x00000000},
		{Opcode: accel.OpcodeDecrypt, Data: 0x0000, Key: 0x00000000},
		{Opcode: accel.OpcodeEncrypt, Data: 0xFFFF, Key: 0xFFFFFFFF},
		{Opcode: accel.OpcodeDecrypt, Data: 0xFFFF, Key: 0xFFFFFFFF},
		{Opcode: accel.OpcodeEncrypt, Data: 0x8000, Key: 0x80000000},
		{Opcode: accel.OpcodeDecrypt, Data: 0x8000, Key: 0x80000000},
		{Opcode: accel.OpcodeEncrypt, Data: 0x5A5A, Key: 0xA5A5A5A5},
		// 0xBDBD is Encrypt(0x5A5A, 0xA5A5A5A5).
		{Opcode: accel.OpcodeDecrypt, Data: 0xBDBD, Key: 0xA5A5A5A5},
	}}
}

// NewCorner returns alternating-bit and single-bit operand patterns.
func NewCorner() Sequence {
	return &listSequence{reqs: []accel.Request{
		{Opcode: accel.OpcodeEncrypt, Data: 0x5555, Key: 0xAAAAAAAA},
		{Opcode: accel.OpcodeDecrypt, Data: 0x5555, Key: 0xAAAAAAAA},
		{Opcode: accel.OpcodeEncrypt, Data: 0xAAAA, Key: 0x55555555},
		{Opcode: accel.OpcodeDecrypt, Data: 0xAAAA, Key: 0x55555555},
		{Opcode: accel.OpcodeEncrypt, Data: 0x0001, Key: 0x00000001},
		{Opcode: accel.OpcodeDecrypt, Data: 0x0001, Key: 0x00000001},
		{Opcode: accel.OpcodeEncrypt, Data: 0x8000, Key: 0x80000000},
		{Opcode: accel.OpcodeDecrypt, Data: 0x8000, Key: 0x80000000},
	}}
}
