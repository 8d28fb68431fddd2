package core

import "errors"

var (
	// ErrLockedAccount is returned for any command targeting a locked account.
	ErrLockedAccount = errors.New("account is locked")

	// ErrMissingAmount is returned when a deposit or withdraw carries no amount.
	ErrMissingAmount = errors.New("amount is missing")

	// ErrDuplicateTransaction is returned when the produced event is structurally
	// identical to one already applied.
	ErrDuplicateTransaction = errors.New("duplicate transaction")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the available balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownTransaction is returned when a dispute refers to a transaction
	// with no genesis event in this account's history.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrUnknownDispute is returned when a resolve or chargeback refers to a
	// transaction that was never held.
	ErrUnknownDispute = errors.New("unknown dispute")

	// ErrUnknownCommandType is returned for a command variant the aggregate
	// does not understand. The decoding shell should make this unreachable.
	ErrUnknownCommandType = errors.New("unknown command type")
)
