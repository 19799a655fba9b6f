// Package golden provides the reference model that predicts the response the
// accelerator must produce for a request.
//
// The model is written independently of the spn package on purpose: the two
// implementations share only the algorithm description, not code, so a bug in
// one cannot cancel out in comparison.
package golden

import (
	"math/bits"

	"github.com/sarchlab/spnsim/accel"
)

var forward = [16]uint8{
	0xF, 0x3, 0xE, 0xB, 0x8, 0x7, 0x9, 0xA,
	0xC, 0xD, 0x2, 0x5, 0x1, 0x6, 0x4, 0x0,
}

var inverse [16]uint8

func init() {
	for i, v := range forward {
		inverse[v] = uint8(i)
	}
}

// Model predicts accelerator responses. The zero value is ready to use.
type Model struct{}

// Predict is total: every opcode maps to a deterministic response. NOP
// predicts {0, NONE} and UNDEFINED predicts {0, ERROR} regardless of the
// operands.
func (Model) Predict(req accel.Request) accel.Response {
	switch req.Opcode {
	case accel.OpcodeEncrypt:
		return accel.Response{
			Data:   encrypt(req.Data, req.Key),
			Status: accel.StatusEncryptOK,
		}
	case accel.OpcodeDecrypt:
		return accel.Response{
			Data:   decrypt(req.Data, req.Key),
			Status: accel.StatusDecryptOK,
		}
	case accel.OpcodeNop:
		return accel.Response{Data: 0, Status: accel.StatusNone}
	default:
		return accel.Response{Data: 0, Status: accel.StatusError}
	}
}

// roundKeys selects bytes of the secret key for the three rounds.
func roundKeys(key uint32) [3]uint16 {
	b := [4]uint8{
		uint8(key),
		uint8(key >> 8),
		uint8(key >> 16),
		uint8(key >> 24),
	}

	return [3]uint16{
		uint16(b[0])<<8 | uint16(b[2]),
		uint16(b[1])<<8 | uint16(b[0]),
		uint16(b[0])<<8 | uint16(b[3]),
	}
}

func substitute(x uint16, table *[16]uint8) uint16 {
	var out uint16

	for shift := 0; shift < 16; shift += 4 {
		out |= uint16(table[x>>shift&0xF]) << shift
	}

	return out
}

func encrypt(d uint16, k uint32) uint16 {
	rk := roundKeys(k)

	for r := 0; r < 3; r++ {
		d ^= rk[r]
		d = substitute(d, &forward)

		if r < 2 {
			d = bits.RotateLeft16(d, 2)
		}
	}

	return d
}

func decrypt(d uint16, k uint32) uint16 {
	rk := roundKeys(k)

	for r := 2; r >= 0; r-- {
		if r < 2 {
			d = bits.RotateLeft16(d, -2)
		}

		d = substitute(d, &inverse)
		d ^= rk[r]
	}

	return d
}
