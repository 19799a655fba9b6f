package accel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/sim"
	"github.com/sarchlab/spnsim/sim/directconnection"
	"github.com/sarchlab/spnsim/spn"
)

var _ = Describe("Engine state machine", func() {
	var (
		engine *sim.SerialEngine
		dut    *accel.Comp
		conn   *directconnection.Comp
		agent  sim.Port
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		dut = accel.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.Hz).
			Build("DUT")
		conn = directconnection.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.Hz).
			Build("Conn")

		agent = sim.NewPort(nil, 4, 4, "Agent.Port")
		conn.PlugIn(dut.CtrlPort)
		conn.PlugIn(agent)
	})

	send := func(req accel.Request) {
		msg := &accel.RequestMsg{
			MsgMeta: sim.MsgMeta{
				ID:  sim.GetIDGenerator().Generate(),
				Src: agent.AsRemote(),
				Dst: dut.CtrlPort.AsRemote(),
			},
			Req: req,
		}

		Expect(agent.Send(msg)).To(BeNil())
	}

	sendReset := func() {
		msg := &accel.ResetMsg{
			MsgMeta: sim.MsgMeta{
				ID:  sim.GetIDGenerator().Generate(),
				Src: agent.AsRemote(),
				Dst: dut.CtrlPort.AsRemote(),
			},
		}

		Expect(agent.Send(msg)).To(BeNil())
	}

	recv := func() *accel.ResponseMsg {
		msg := agent.RetrieveIncoming()
		if msg == nil {
			return nil
		}

		return msg.(*accel.ResponseMsg)
	}

	It("should encrypt a request", func() {
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		})

		Expect(engine.Run()).To(BeNil())

		rsp := recv()
		Expect(rsp).NotTo(BeNil())
		Expect(rsp.Rsp).To(Equal(accel.Response{
			Data:   0xAEF2,
			Status: accel.StatusEncryptOK,
		}))
	})

	It("should decrypt a request", func() {
		send(accel.Request{
			Opcode: accel.OpcodeDecrypt,
			Data:   0x1234,
			Key:    0x12345678,
		})

		Expect(engine.Run()).To(BeNil())

		rsp := recv()
		Expect(rsp).NotTo(BeNil())
		Expect(rsp.Rsp).To(Equal(accel.Response{
			Data:   0x2876,
			Status: accel.StatusDecryptOK,
		}))
	})

	It("should take three cycles from accept to response", func() {
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		})

		Expect(engine.Run()).To(BeNil())

		// Accept at 1, compute at 2, respond at 3, drain at 4.
		Expect(engine.CurrentTime()).To(BeNumerically("~", 4, 1e-9))
	})

	It("should consume a NOP without responding", func() {
		send(accel.Request{Opcode: accel.OpcodeNop})

		Expect(engine.Run()).To(BeNil())

		Expect(recv()).To(BeNil())
	})

	It("should report an error for an undefined opcode", func() {
		send(accel.Request{
			Opcode: accel.OpcodeUndefined,
			Data:   0xABCD,
			Key:    0x12345678,
		})

		Expect(engine.Run()).To(BeNil())

		rsp := recv()
		Expect(rsp).NotTo(BeNil())
		Expect(rsp.Rsp).To(Equal(accel.Response{
			Data:   0,
			Status: accel.StatusError,
		}))
	})

	It("should answer the request it was given", func() {
		msg := &accel.RequestMsg{
			MsgMeta: sim.MsgMeta{
				ID:  sim.GetIDGenerator().Generate(),
				Src: agent.AsRemote(),
				Dst: dut.CtrlPort.AsRemote(),
			},
			Req: accel.Request{
				Opcode: accel.OpcodeEncrypt,
				Data:   0x0001,
				Key:    0x00000001,
			},
		}
		Expect(agent.Send(msg)).To(BeNil())

		Expect(engine.Run()).To(BeNil())

		rsp := recv()
		Expect(rsp).NotTo(BeNil())
		Expect(rsp.GetRspTo()).To(Equal(msg.ID))
	})

	It("should abort an in-flight request on reset", func() {
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		})
		sendReset()

		Expect(engine.Run()).To(BeNil())

		Expect(recv()).To(BeNil())
	})

	It("should accept new work after a reset", func() {
		sendReset()
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xCAFE,
			Key:    0xDEADBEEF,
		})

		Expect(engine.Run()).To(BeNil())

		rsp := recv()
		Expect(rsp).NotTo(BeNil())
		Expect(rsp.Rsp.Data).To(Equal(uint16(0x8FE3)))
	})

	It("should serialize back-to-back requests", func() {
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0xABCD,
			Key:    0x12345678,
		})
		send(accel.Request{
			Opcode: accel.OpcodeDecrypt,
			Data:   0xAEF2,
			Key:    0x12345678,
		})

		Expect(engine.Run()).To(BeNil())

		rsp1 := recv()
		Expect(rsp1).NotTo(BeNil())
		Expect(rsp1.Rsp.Data).To(Equal(uint16(0xAEF2)))
		Expect(rsp1.Rsp.Status).To(Equal(accel.StatusEncryptOK))

		rsp2 := recv()
		Expect(rsp2).NotTo(BeNil())
		Expect(rsp2.Rsp.Data).To(Equal(uint16(0xABCD)))
		Expect(rsp2.Rsp.Status).To(Equal(accel.StatusDecryptOK))
	})

	It("should derive round keys from the request key every time", func() {
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0x8000,
			Key:    0x80000000,
		})
		send(accel.Request{
			Opcode: accel.OpcodeEncrypt,
			Data:   0x8000,
			Key:    0x00010000,
		})

		Expect(engine.Run()).To(BeNil())

		rsp1 := recv()
		rsp2 := recv()
		Expect(rsp1.Rsp.Data).To(Equal(spn.Encrypt(0x8000, 0x80000000)))
		Expect(rsp2.Rsp.Data).To(Equal(spn.Encrypt(0x8000, 0x00010000)))
		Expect(rsp1.Rsp.Data).NotTo(Equal(rsp2.Rsp.Data))
	})
})
