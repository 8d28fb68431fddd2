package ingest

import (
	"github.com/paystream/transaction-engine/core"
)

// Logger interface for rejected-command reporting, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting ingestion counters.
// Implementations must be safe for concurrent use when combined with Sharded.
type MetricsCollector interface {
	IncrementCounter(metric string, labels map[string]string)
}

// EventSink receives every event sequence after it has been applied to an
// account, in apply order. A sink failure is reported but never fails the
// ingestion run. Implementations must be safe for concurrent use when
// combined with Sharded.
type EventSink interface {
	Record(client core.ClientID, events core.AccountEvents) error
}

// Metric names and label values reported by the Router.
const (
	MetricCommandsRouted  = "commands_routed_total"
	MetricAccountsCreated = "accounts_created_total"

	OutcomeLabel    = "outcome"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)
