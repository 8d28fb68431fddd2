package ingest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paystream/transaction-engine/core"
	"github.com/paystream/transaction-engine/ingest"
	"github.com/paystream/transaction-engine/shell"
)

func Test_Route_Deposit_CreditsAvailable(t *testing.T) {
	// arrange
	router := ingest.NewRouter()

	// act
	err := router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000")))

	// assert
	require.NoError(t, err)
	view := snapshotView(t, router, 1)
	assertView(t, view, "99.0000", "0", "99.0000", false)
}

func Test_Route_InsufficientWithdrawal_LeavesStateUnchanged(t *testing.T) {
	// arrange
	router := ingest.NewRouter()
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000"))))

	// act
	err := router.Route(core.BuildWithdrawCommand(1, 11, money(t, "150.0000")))

	// assert
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)
	view := snapshotView(t, router, 1)
	assertView(t, view, "99.0000", "0", "99.0000", false)
}

func Test_Route_DisputeThenResolve_RestoresAvailable(t *testing.T) {
	// arrange
	router := ingest.NewRouter()
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000"))))

	// act
	require.NoError(t, router.Route(core.BuildDisputeCommand(1, 10)))

	// assert - funds held while the dispute is open
	view := snapshotView(t, router, 1)
	assertView(t, view, "0", "99.0000", "99.0000", false)

	// act
	require.NoError(t, router.Route(core.BuildResolveCommand(1, 10)))

	// assert
	view = snapshotView(t, router, 1)
	assertView(t, view, "99.0000", "0", "99.0000", false)
}

func Test_Route_DisputeThenChargeback_LocksAccount(t *testing.T) {
	// arrange
	router := ingest.NewRouter()
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000"))))
	require.NoError(t, router.Route(core.BuildDisputeCommand(1, 10)))

	// act
	require.NoError(t, router.Route(core.BuildChargebackCommand(1, 10)))

	// assert
	view := snapshotView(t, router, 1)
	assertView(t, view, "0", "0", "0", true)

	// any further command on the locked account is rejected
	err := router.Route(core.BuildDepositCommand(1, 20, money(t, "1.0000")))
	assert.ErrorIs(t, err, core.ErrLockedAccount)
	assertView(t, snapshotView(t, router, 1), "0", "0", "0", true)
}

func Test_Route_CreatesAccountOnFirstSight(t *testing.T) {
	// arrange - the first command for this client is itself invalid
	router := ingest.NewRouter()

	// act
	err := router.Route(core.BuildDisputeCommand(7, 10))

	// assert - the account exists with zero balances and an unlocked state
	assert.ErrorIs(t, err, core.ErrUnknownTransaction)
	view := snapshotView(t, router, 7)
	assertView(t, view, "0", "0", "0", false)
}

func Test_Route_KeepsClientsIndependent(t *testing.T) {
	// arrange
	router := ingest.NewRouter()

	// act - interleave two clients, lock one of them
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "50.0000"))))
	require.NoError(t, router.Route(core.BuildDepositCommand(2, 11, money(t, "75.0000"))))
	require.NoError(t, router.Route(core.BuildDisputeCommand(1, 10)))
	require.NoError(t, router.Route(core.BuildChargebackCommand(1, 10)))
	require.NoError(t, router.Route(core.BuildWithdrawCommand(2, 12, money(t, "25.0000"))))

	// assert
	views := router.Snapshot()
	require.Len(t, views, 2)
	assertView(t, views[1], "0", "0", "0", true)
	assertView(t, views[2], "50.0000", "0", "50.0000", false)
}

func Test_Route_CountsOutcomes(t *testing.T) {
	// arrange
	metrics := shell.NewCounterCollector()
	router := ingest.NewRouter(ingest.WithMetrics(metrics))

	// act - two accepted, one rejected, two accounts
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "10.0000"))))
	require.NoError(t, router.Route(core.BuildDepositCommand(2, 11, money(t, "10.0000"))))
	require.Error(t, router.Route(core.BuildWithdrawCommand(1, 12, money(t, "999.0000"))))

	// assert
	assert.Equal(t, uint64(2), metrics.Count(ingest.MetricCommandsRouted,
		map[string]string{ingest.OutcomeLabel: ingest.OutcomeAccepted}))
	assert.Equal(t, uint64(1), metrics.Count(ingest.MetricCommandsRouted,
		map[string]string{ingest.OutcomeLabel: ingest.OutcomeRejected}))
	assert.Equal(t, uint64(2), metrics.Count(ingest.MetricAccountsCreated, nil))
}

func Test_Route_ForwardsAppliedEventsToSink(t *testing.T) {
	// arrange
	sink := &recordingSink{}
	router := ingest.NewRouter(ingest.WithEventSink(sink))

	// act
	require.NoError(t, router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000"))))
	require.NoError(t, router.Route(core.BuildDisputeCommand(1, 10)))
	require.NoError(t, router.Route(core.BuildChargebackCommand(1, 10)))
	require.Error(t, router.Route(core.BuildDepositCommand(1, 20, money(t, "1.0000"))))

	// assert - one sequence per accepted command, nothing for the rejected one
	require.Len(t, sink.sequences, 3)
	assert.Equal(t, []string{core.CreditedEventType}, eventTypes(sink.sequences[0]))
	assert.Equal(t, []string{core.HeldEventType}, eventTypes(sink.sequences[1]))
	assert.Equal(t, []string{core.ReversedEventType, core.LockedEventType}, eventTypes(sink.sequences[2]))
}

func Test_Route_SinkFailureDoesNotStopIngestion(t *testing.T) {
	// arrange
	sink := &recordingSink{err: errors.New("disk full")}
	router := ingest.NewRouter(ingest.WithEventSink(sink))

	// act
	err := router.Route(core.BuildDepositCommand(1, 10, money(t, "99.0000")))

	// assert - the command was still applied
	require.NoError(t, err)
	assertView(t, snapshotView(t, router, 1), "99.0000", "0", "99.0000", false)
}

// --- test helpers ---

type recordingSink struct {
	sequences []core.AccountEvents
	err       error
}

func (s *recordingSink) Record(_ core.ClientID, events core.AccountEvents) error {
	if s.err != nil {
		return s.err
	}
	s.sequences = append(s.sequences, events)

	return nil
}

func eventTypes(events core.AccountEvents) []string {
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.IsEventType())
	}

	return types
}

func money(t *testing.T, value string) core.Money {
	t.Helper()

	amount, err := core.MoneyFromString(value)
	require.NoError(t, err)

	return amount
}

func snapshotView(t *testing.T, router *ingest.Router, client core.ClientID) ingest.AccountView {
	t.Helper()

	view, found := router.Snapshot()[client]
	require.True(t, found, "no snapshot for client %d", client)

	return view
}

func assertView(t *testing.T, view ingest.AccountView, available string, held string, total string, locked bool) {
	t.Helper()

	assert.True(t, view.Available.Equal(money(t, available)),
		"available: got %s, want %s", view.Available, available)
	assert.True(t, view.Held.Equal(money(t, held)),
		"held: got %s, want %s", view.Held, held)
	assert.True(t, view.Total.Equal(money(t, total)),
		"total: got %s, want %s", view.Total, total)
	assert.Equal(t, locked, view.Locked)
}
