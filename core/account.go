package core

import (
	"fmt"
)

// Account is the aggregate summarizing all of one client's transactions.
// Its state is derived solely from its own event history; the event log is
// append-only and its insertion order is the causal order.
//
// The aggregate has two functional states: active and locked. Locked is
// terminal - once a Locked event is applied, no command produces events.
type Account struct {
	client    ClientID
	available Money
	held      Money
	total     Money
	locked    bool
	version   uint32
	events    AccountEvents
}

// NewAccount returns a new active Account for the client with zero balances
// and an empty event log.
func NewAccount(client ClientID) *Account {
	return &Account{
		client:    client,
		available: ZeroMoney(),
		held:      ZeroMoney(),
		total:     ZeroMoney(),
	}
}

// Client returns the aggregate's identity.
func (a *Account) Client() ClientID {
	return a.client
}

// Available returns the spendable funds.
func (a *Account) Available() Money {
	return a.available
}

// Held returns the funds frozen pending dispute resolution.
func (a *Account) Held() Money {
	return a.held
}

// Total returns available plus held, recomputed on every Apply.
func (a *Account) Total() Money {
	return a.total
}

// IsLocked reports whether the account has reached its terminal state.
func (a *Account) IsLocked() bool {
	return a.locked
}

// Version returns the count of events ever applied to this account.
func (a *Account) Version() uint32 {
	return a.version
}

// Handle validates a command against the current state and event history and
// returns the events it produces. It is pure: it never mutates the account,
// so a failed call has zero observable side effects.
//
// Every returned error wraps one of the sentinel errors from errors.go and is
// a rejected command: non-fatal, never retried, no state change.
func (a *Account) Handle(command Command) (AccountEvents, error) {
	if a.locked {
		return nil, fmt.Errorf("%w: unable to process transaction(%d) for account(%d)",
			ErrLockedAccount, command.Tx, command.Client)
	}

	switch command.Type {
	case DepositCommandType:
		return a.handleDeposit(command)

	case WithdrawCommandType:
		return a.handleWithdraw(command)

	case DisputeCommandType:
		return a.handleDispute(command)

	case ResolveCommandType:
		return a.handleResolve(command)

	case ChargebackCommandType:
		return a.handleChargeback(command)

	default:
		return nil, fmt.Errorf("%w: %q for account(%d) transaction(%d)",
			ErrUnknownCommandType, command.Type, command.Client, command.Tx)
	}
}

// Apply mutates state for each event in sequence: update balances, recompute
// total, increment the version and append the event to the log. It is only
// ever invoked with a sequence Handle already validated.
func (a *Account) Apply(events AccountEvents) {
	for _, event := range events {
		switch e := event.(type) {
		case Credited:
			a.available = a.available.Add(e.Amount)

		case Debited:
			a.available = a.available.Sub(e.Amount)

		case Held:
			a.available = a.available.Sub(e.Amount)
			a.held = a.held.Add(e.Amount)

		case Released:
			a.held = a.held.Sub(e.Amount)
			a.available = a.available.Add(e.Amount)

		case Reversed:
			a.held = a.held.Sub(e.Amount)

		case Locked:
			a.locked = true
		}

		a.total = a.available.Add(a.held)
		a.version++
		a.events = append(a.events, event)
	}
}

func (a *Account) handleDeposit(command Command) (AccountEvents, error) {
	if command.Amount == nil {
		return nil, fmt.Errorf("%w: deposit for account(%d) transaction(%d)",
			ErrMissingAmount, command.Client, command.Tx)
	}

	event := BuildCredited(command.Tx, *command.Amount)
	if a.hasEvent(event) {
		return nil, fmt.Errorf("%w: deposit for account(%d) transaction(%d)",
			ErrDuplicateTransaction, command.Client, command.Tx)
	}

	return AccountEvents{event}, nil
}

func (a *Account) handleWithdraw(command Command) (AccountEvents, error) {
	if command.Amount == nil {
		return nil, fmt.Errorf("%w: withdraw for account(%d) transaction(%d)",
			ErrMissingAmount, command.Client, command.Tx)
	}

	amount := *command.Amount

	event := BuildDebited(command.Tx, amount)
	if a.hasEvent(event) {
		return nil, fmt.Errorf("%w: withdraw for account(%d) transaction(%d)",
			ErrDuplicateTransaction, command.Client, command.Tx)
	}

	if amount.GreaterThan(a.available) {
		return nil, fmt.Errorf("%w: amount(%s) exceeds available(%s) for account(%d) transaction(%d)",
			ErrInsufficientFunds, amount, a.available, command.Client, command.Tx)
	}

	return AccountEvents{event}, nil
}

func (a *Account) handleDispute(command Command) (AccountEvents, error) {
	amount, found := a.findGenesisAmount(command.Tx)
	if !found {
		return nil, fmt.Errorf("%w: unable to find account(%d) transaction(%d) to dispute",
			ErrUnknownTransaction, command.Client, command.Tx)
	}

	event := BuildHeld(command.Tx, amount)
	if a.hasEvent(event) {
		return nil, fmt.Errorf("%w: dispute for account(%d) transaction(%d)",
			ErrDuplicateTransaction, command.Client, command.Tx)
	}

	return AccountEvents{event}, nil
}

func (a *Account) handleResolve(command Command) (AccountEvents, error) {
	amount, found := a.findDisputeAmount(command.Tx)
	if !found {
		return nil, fmt.Errorf("%w: unable to find disputed account(%d) transaction(%d) to resolve",
			ErrUnknownDispute, command.Client, command.Tx)
	}

	event := BuildReleased(command.Tx, amount)
	if a.hasEvent(event) {
		return nil, fmt.Errorf("%w: resolve for account(%d) transaction(%d)",
			ErrDuplicateTransaction, command.Client, command.Tx)
	}

	return AccountEvents{event}, nil
}

func (a *Account) handleChargeback(command Command) (AccountEvents, error) {
	amount, found := a.findDisputeAmount(command.Tx)
	if !found {
		return nil, fmt.Errorf("%w: unable to find disputed account(%d) transaction(%d) to chargeback",
			ErrUnknownDispute, command.Client, command.Tx)
	}

	event := BuildReversed(command.Tx, amount)
	if a.hasEvent(event) {
		return nil, fmt.Errorf("%w: chargeback for account(%d) transaction(%d)",
			ErrDuplicateTransaction, command.Client, command.Tx)
	}

	// A chargeback reverses the disputed funds and locks the account in the
	// same event sequence.
	return AccountEvents{event, BuildLocked()}, nil
}

func (a *Account) hasEvent(event AccountEvent) bool {
	for _, applied := range a.events {
		if sameEvent(applied, event) {
			return true
		}
	}

	return false
}

// findGenesisAmount returns the amount of the first Credited or Debited event
// in log order whose transaction id matches. First match wins; later lookups
// rely on this tie-break being deterministic.
func (a *Account) findGenesisAmount(tx TransactionID) (Money, bool) {
	for _, event := range a.events {
		switch e := event.(type) {
		case Credited:
			if e.Tx == tx {
				return e.Amount, true
			}

		case Debited:
			if e.Tx == tx {
				return e.Amount, true
			}
		}
	}

	return Money{}, false
}

// findDisputeAmount returns the amount of the first Held event in log order
// whose transaction id matches. Held events are emitted for dispute commands.
func (a *Account) findDisputeAmount(tx TransactionID) (Money, bool) {
	for _, event := range a.events {
		if e, ok := event.(Held); ok && e.Tx == tx {
			return e.Amount, true
		}
	}

	return Money{}, false
}
