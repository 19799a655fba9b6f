package sequence

import (
	"math/rand"

	"github.com/sarchlab/spnsim/accel"
)

// DefaultRandomCount is the number of requests a random sequence produces
// unless configured otherwise.
const DefaultRandomCount = 30

// opcode weights out of 100.
const (
	weightEncrypt = 40
	weightDecrypt = 40
	weightNop     = 10
)

// randomSequence draws opcodes from a weighted distribution. Data and key
// are nonzero for encrypt/decrypt and left zero for NOP/UNDEFINED, where the
// engine ignores them.
type randomSequence struct {
	rand      *rand.Rand
	remaining int
}

// NewRandom creates a randomized sequence of n requests from the given seed.
func NewRandom(seed int64, n int) Sequence {
	return &randomSequence{
		rand:      rand.New(rand.NewSource(seed)),
		remaining: n,
	}
}

func (s *randomSequence) Next() (accel.Request, bool) {
	if s.remaining == 0 {
		return accel.Request{}, false
	}

	s.remaining--

	req := accel.Request{Opcode: s.randomOpcode()}

	if req.Opcode == accel.OpcodeEncrypt || req.Opcode == accel.OpcodeDecrypt {
		for req.Data == 0 {
			req.Data = uint16(s.rand.Uint32())
		}

		for req.Key == 0 {
			req.Key = s.rand.Uint32()
		}
	}

	return req, true
}

func (s *randomSequence) randomOpcode() accel.Opcode {
	v := s.rand.Intn(100)

	switch {
	case v < weightEncrypt:
		return accel.OpcodeEncrypt
	case v < weightEncrypt+weightDecrypt:
		return accel.OpcodeDecrypt
	case v < weightEncrypt+weightDecrypt+weightNop:
		return accel.OpcodeNop
	default:
		return accel.OpcodeUndefined
	}
}
