package monitor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/tb/monitor"
)

type captureRecorder struct {
	transactions []accel.Transaction
}

func (r *captureRecorder) Record(t accel.Transaction) {
	r.transactions = append(r.transactions, t)
}

var _ = Describe("Monitor", func() {
	var (
		engine  *sim.SerialEngine
		capture *captureRecorder
		mon     *monitor.Comp
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		capture = &captureRecorder{}
		mon = monitor.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.Hz).
			WithRecorder(capture).
			Build("Monitor")
	})

	reqMsg := func(req accel.Request) *accel.RequestMsg {
		return &accel.RequestMsg{
			MsgMeta: sim.MsgMeta{
				ID:  sim.GetIDGenerator().Generate(),
				Src: "Driver.Port",
				Dst: "DUT.Port",
			},
			Req: req,
		}
	}

	rspMsg := func(rsp accel.Response) *accel.ResponseMsg {
		return &accel.ResponseMsg{
			MsgMeta: sim.MsgMeta{
				ID:  sim.GetIDGenerator().Generate(),
				Src: "DUT.Port",
				Dst: "Driver.Port",
			},
			Rsp: rsp,
		}
	}

	It("should pair a request with its response", func() {
		req := accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		}
		rsp := accel.Response{Data: 0xAEF2, Status: accel.StatusEncryptOK}

		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: reqMsg(req),
		})
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgSend,
			Item: rspMsg(rsp),
		})

		Expect(capture.transactions).To(HaveLen(1))
		Expect(capture.transactions[0]).To(Equal(
			accel.Transaction{Req: req, Rsp: rsp}))
	})

	It("should ignore NOP requests", func() {
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: reqMsg(accel.Request{Opcode: accel.OpcodeNop}),
		})

		Expect(capture.transactions).To(BeEmpty())
	})

	It("should ignore reset traffic", func() {
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: &accel.ResetMsg{},
		})

		Expect(capture.transactions).To(BeEmpty())
	})

	It("should ignore a response with no open transaction", func() {
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgSend,
			Item: rspMsg(accel.Response{}),
		})

		Expect(capture.transactions).To(BeEmpty())
	})

	It("should close a starved transaction with default outputs", func() {
		req := accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		}

		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: reqMsg(req),
		})

		// No response ever comes; the tick budget expires instead.
		Expect(engine.Run()).To(BeNil())

		Expect(capture.transactions).To(HaveLen(1))
		Expect(capture.transactions[0]).To(Equal(
			accel.Transaction{Req: req, Rsp: accel.Response{}}))
		Expect(engine.CurrentTime()).To(
			BeNumerically("~", monitor.ResponseTickBudget, 1e-9))
	})

	It("should keep pairing after a starved transaction", func() {
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: reqMsg(accel.Request{Opcode: accel.OpcodeDecrypt, Data: 1, Key: 1}),
		})
		Expect(engine.Run()).To(BeNil())

		req := accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xCAFE,
			Key:    0xDEADBEEF,
		}
		rsp := accel.Response{Data: 0x8FE3, Status: accel.StatusEncryptOK}

		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgRecvd,
			Item: reqMsg(req),
		})
		mon.Func(sim.HookCtx{
			Pos:  sim.HookPosPortMsgSend,
			Item: rspMsg(rsp),
		})

		Expect(capture.transactions).To(HaveLen(2))
		Expect(capture.transactions[1]).To(Equal(
			accel.Transaction{Req: req, Rsp: rsp}))
	})
})
