package ingest

import (
	"github.com/paystream/transaction-engine/core"
)

// AccountView is the externally visible state of one account. The aggregate's
// version and event log stay internal.
type AccountView struct {
	Client    core.ClientID
	Available core.Money
	Held      core.Money
	Total     core.Money
	Locked    bool
}

// Router owns the mapping from client id to account aggregate. It routes each
// command to the aggregate for its client, creating the aggregate lazily on
// first reference, and sequences Handle then (on success) Apply.
//
// Router is not safe for concurrent use; Sharded provides the concurrent variant.
type Router struct {
	accounts map[core.ClientID]*core.Account
	logger   Logger
	metrics  MetricsCollector
	sink     EventSink
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used to report rejected commands and sink failures.
func WithLogger(logger Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMetrics sets the collector for routing counters.
func WithMetrics(metrics MetricsCollector) Option {
	return func(r *Router) {
		r.metrics = metrics
	}
}

// WithEventSink sets the sink receiving applied events, e.g. an audit trail.
func WithEventSink(sink EventSink) Option {
	return func(r *Router) {
		r.sink = sink
	}
}

// NewRouter creates a new Router with optional configuration.
func NewRouter(opts ...Option) *Router {
	router := &Router{
		accounts: make(map[core.ClientID]*core.Account),
	}

	for _, opt := range opts {
		opt(router)
	}

	return router
}

// Route looks up the account for the command's client, creating it if absent,
// and calls Handle then Apply. A failed Handle discards the command: the error
// is reported and returned, and no state changes. Rejected commands are never
// retried.
func (r *Router) Route(command core.Command) error {
	account, exists := r.accounts[command.Client]
	if !exists {
		account = core.NewAccount(command.Client)
		r.accounts[command.Client] = account
		r.count(MetricAccountsCreated, nil)
	}

	events, err := account.Handle(command)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("command rejected",
				"type", command.Type, "client", command.Client, "tx", command.Tx, "reason", err.Error())
		}
		r.count(MetricCommandsRouted, map[string]string{OutcomeLabel: OutcomeRejected})

		return err
	}

	account.Apply(events)
	r.count(MetricCommandsRouted, map[string]string{OutcomeLabel: OutcomeAccepted})

	if r.sink != nil {
		if sinkErr := r.sink.Record(command.Client, events); sinkErr != nil {
			if r.logger != nil {
				r.logger.Error("event sink failed",
					"client", command.Client, "tx", command.Tx, "error", sinkErr.Error())
			}
		}
	}

	return nil
}

// Snapshot returns every known account's current balances keyed by client id.
func (r *Router) Snapshot() map[core.ClientID]AccountView {
	views := make(map[core.ClientID]AccountView, len(r.accounts))

	for client, account := range r.accounts {
		views[client] = AccountView{
			Client:    client,
			Available: account.Available(),
			Held:      account.Held(),
			Total:     account.Total(),
			Locked:    account.IsLocked(),
		}
	}

	return views
}

func (r *Router) count(metric string, labels map[string]string) {
	if r.metrics != nil {
		r.metrics.IncrementCounter(metric, labels)
	}
}
