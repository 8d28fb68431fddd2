package shell

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/paystream/transaction-engine/core"
)

// ErrWritingEnvelopeFailed is returned when an envelope cannot be written to the sink.
var ErrWritingEnvelopeFailed = errors.New("writing event envelope failed")

// JSONLSink is an ingest.EventSink that appends one JSON envelope per applied
// event, one per line. Every event of a sequence shares its causation id with
// the first event of that sequence (a chargeback's Locked event is caused by
// the same message as its Reversed event); all events of a run share one
// correlation id. Safe for concurrent use.
type JSONLSink struct {
	mu    sync.Mutex
	out   *bufio.Writer
	runID uuid.UUID
}

// NewJSONLSink creates a sink writing to w with a fresh run correlation id.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{
		out:   bufio.NewWriter(w),
		runID: uuid.New(),
	}
}

// Record writes one envelope line per event, in apply order.
func (s *JSONLSink) Record(client core.ClientID, events core.AccountEvents) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	causationID := uuid.New()

	for i, event := range events {
		messageID := causationID
		if i > 0 {
			messageID = uuid.New()
		}

		envelope, err := EnvelopeFrom(client, event, BuildEventMetadata(messageID, causationID, s.runID))
		if err != nil {
			return err
		}

		line, err := jsoniter.ConfigFastest.Marshal(envelope)
		if err != nil {
			return errors.Join(ErrWritingEnvelopeFailed, err)
		}

		if _, err = s.out.Write(line); err != nil {
			return errors.Join(ErrWritingEnvelopeFailed, err)
		}
		if err = s.out.WriteByte('\n'); err != nil {
			return errors.Join(ErrWritingEnvelopeFailed, err)
		}
	}

	return nil
}

// Flush writes buffered envelopes through to the underlying writer.
func (s *JSONLSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.out.Flush()
}
