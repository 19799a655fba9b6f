package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type pingMsg struct {
	MsgMeta
}

func (m *pingMsg) Meta() *MsgMeta {
	return &m.MsgMeta
}

func (m *pingMsg) Clone() Msg {
	cloneMsg := *m
	cloneMsg.ID = GetIDGenerator().Generate()

	return &cloneMsg
}

func newPingMsg(src, dst RemotePort) *pingMsg {
	return &pingMsg{
		MsgMeta: MsgMeta{
			ID:  GetIDGenerator().Generate(),
			Src: src,
			Dst: dst,
		},
	}
}

var _ = Describe("DefaultPort", func() {
	var (
		mockCtrl *gomock.Controller
		comp     *MockComponent
		conn     *MockConnection
		port     Port
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		comp = NewMockComponent(mockCtrl)
		conn = NewMockConnection(mockCtrl)

		port = NewPort(comp, 2, 2, "Comp.Port")
		port.SetConnection(conn)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should send and notify the connection once", func() {
		conn.EXPECT().NotifySend()

		err1 := port.Send(newPingMsg(port.AsRemote(), "Other.Port"))
		err2 := port.Send(newPingMsg(port.AsRemote(), "Other.Port"))

		Expect(err1).To(BeNil())
		Expect(err2).To(BeNil())
	})

	It("should fail to send when the outgoing buffer is full", func() {
		conn.EXPECT().NotifySend()

		_ = port.Send(newPingMsg(port.AsRemote(), "Other.Port"))
		_ = port.Send(newPingMsg(port.AsRemote(), "Other.Port"))
		err := port.Send(newPingMsg(port.AsRemote(), "Other.Port"))

		Expect(err).NotTo(BeNil())
	})

	It("should panic when the sending port is not the source", func() {
		Expect(func() {
			_ = port.Send(newPingMsg("Other.Port", "Comp.Port"))
		}).To(Panic())
	})

	It("should panic when the destination is empty", func() {
		Expect(func() {
			_ = port.Send(newPingMsg(port.AsRemote(), ""))
		}).To(Panic())
	})

	It("should panic when sending back to the source", func() {
		Expect(func() {
			_ = port.Send(newPingMsg(port.AsRemote(), port.AsRemote()))
		}).To(Panic())
	})

	It("should deliver and notify the component once", func() {
		comp.EXPECT().NotifyRecv(port)

		err1 := port.Deliver(newPingMsg("Other.Port", port.AsRemote()))
		err2 := port.Deliver(newPingMsg("Other.Port", port.AsRemote()))

		Expect(err1).To(BeNil())
		Expect(err2).To(BeNil())
	})

	It("should fail to deliver when the incoming buffer is full", func() {
		comp.EXPECT().NotifyRecv(port)

		_ = port.Deliver(newPingMsg("Other.Port", port.AsRemote()))
		_ = port.Deliver(newPingMsg("Other.Port", port.AsRemote()))
		err := port.Deliver(newPingMsg("Other.Port", port.AsRemote()))

		Expect(err).NotTo(BeNil())
	})

	It("should retrieve incoming messages in order", func() {
		comp.EXPECT().NotifyRecv(port)

		msg1 := newPingMsg("Other.Port", port.AsRemote())
		msg2 := newPingMsg("Other.Port", port.AsRemote())
		_ = port.Deliver(msg1)
		_ = port.Deliver(msg2)

		Expect(port.PeekIncoming()).To(BeIdenticalTo(msg1))

		conn.EXPECT().NotifyAvailable(port)
		Expect(port.RetrieveIncoming()).To(BeIdenticalTo(msg1))

		Expect(port.RetrieveIncoming()).To(BeIdenticalTo(msg2))
		Expect(port.RetrieveIncoming()).To(BeNil())
	})

	It("should notify the component when a full outgoing buffer opens", func() {
		conn.EXPECT().NotifySend()

		msg1 := newPingMsg(port.AsRemote(), "Other.Port")
		msg2 := newPingMsg(port.AsRemote(), "Other.Port")
		_ = port.Send(msg1)
		_ = port.Send(msg2)

		Expect(port.PeekOutgoing()).To(BeIdenticalTo(msg1))

		comp.EXPECT().NotifyPortFree(port)
		Expect(port.RetrieveOutgoing()).To(BeIdenticalTo(msg1))

		Expect(port.RetrieveOutgoing()).To(BeIdenticalTo(msg2))
	})
})
