// Package scoreboard compares observed transactions against the golden
// model's predictions and keeps the pass/fail tally.
package scoreboard

import (
	"log"
	"os"
	"sync"

	"github.com/sarchlab/spnsim/accel"
	"github.com/sarchlab/spnsim/datarecording"
	"github.com/sarchlab/spnsim/sim"
)

// TransactionTableName is the table that transaction records are written to
// when a data recorder is attached.
const TransactionTableName = "transactions"

// A Predictor computes the expected response for a request.
type Predictor interface {
	Predict(req accel.Request) accel.Response
}

// transactionRow is the flat per-transaction record for the data recorder.
type transactionRow struct {
	Opcode         string
	Data           uint16
	Key            uint32
	DataOut        uint16
	Status         string
	ExpectedData   uint16
	ExpectedStatus string
	Pass           bool
}

// Scoreboard accumulates verdicts. Counters only grow; a mismatch is
// reported the moment it is recorded, and the run verdict is derived from
// the fail count alone.
type Scoreboard struct {
	sync.Mutex

	name      string
	predictor Predictor
	logger    *log.Logger
	recorder  datarecording.DataRecorder

	passCount uint64
	failCount uint64
}

// Record scores one observed transaction against the golden prediction.
// Both the data and the status fields must match exactly.
func (s *Scoreboard) Record(t accel.Transaction) {
	expected := s.predictor.Predict(t.Req)

	s.Lock()
	defer s.Unlock()

	pass := expected == t.Rsp
	if pass {
		s.passCount++
		s.logger.Printf(
			"PASS op=%s data=%#04x key=%#08x -> data=%#04x status=%s",
			t.Req.Opcode, t.Req.Data, t.Req.Key, t.Rsp.Data, t.Rsp.Status)
	} else {
		s.failCount++
		s.logger.Printf(
			"FAIL op=%s data=%#04x key=%#08x -> "+
				"got data=%#04x status=%s, want data=%#04x status=%s",
			t.Req.Opcode, t.Req.Data, t.Req.Key,
			t.Rsp.Data, t.Rsp.Status, expected.Data, expected.Status)
	}

	if s.recorder != nil {
		s.recorder.InsertData(TransactionTableName, transactionRow{
			Opcode:         t.Req.Opcode.String(),
			Data:           t.Req.Data,
			Key:            t.Req.Key,
			DataOut:        t.Rsp.Data,
			Status:         t.Rsp.Status.String(),
			ExpectedData:   expected.Data,
			ExpectedStatus: expected.Status.String(),
			Pass:           pass,
		})
	}
}

// PassCount returns the number of matching transactions recorded so far.
func (s *Scoreboard) PassCount() uint64 {
	s.Lock()
	defer s.Unlock()

	return s.passCount
}

// FailCount returns the number of mismatching transactions recorded so far.
func (s *Scoreboard) FailCount() uint64 {
	s.Lock()
	defer s.Unlock()

	return s.failCount
}

// Passed reports the overall verdict: a run passes iff nothing failed.
func (s *Scoreboard) Passed() bool {
	return s.FailCount() == 0
}

// Handle implements sim.SimulationEndHandler so the summary is emitted when
// the simulation finishes.
func (s *Scoreboard) Handle(now sim.VTimeInSec) {
	s.Report(now)
}

// Report emits the final tally.
func (s *Scoreboard) Report(now sim.VTimeInSec) {
	s.Lock()
	defer s.Unlock()

	s.logger.Printf("%s @ %.10f: pass=%d fail=%d",
		s.name, now, s.passCount, s.failCount)
}

// Builder can build scoreboards.
type Builder struct {
	predictor Predictor
	logger    *log.Logger
	recorder  datarecording.DataRecorder
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{}
}

// WithPredictor sets the golden model that predicts expected responses.
func (b Builder) WithPredictor(p Predictor) Builder {
	b.predictor = p
	return b
}

// WithLogger sets the logger that verdict records are written to.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithDataRecorder attaches a recorder that persists one row per
// transaction.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// Build creates a scoreboard.
func (b Builder) Build(name string) *Scoreboard {
	s := &Scoreboard{
		name:      name,
		predictor: b.predictor,
		logger:    b.logger,
		recorder:  b.recorder,
	}

	if s.predictor == nil {
		panic("scoreboard requires a predictor")
	}

	if s.logger == nil {
		s.logger = log.New(os.Stdout, "", 0)
	}

	if s.recorder != nil {
		s.recorder.CreateTable(TransactionTableName, transactionRow{})
	}

	return s
}
