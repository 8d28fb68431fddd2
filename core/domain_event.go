package core

// AccountEvents is a slice of AccountEvent instances.
type AccountEvents = []AccountEvent

// AccountEvent represents a balance-affecting fact recorded against one account.
type AccountEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string
}

// sameEvent reports structural identity: same variant, same transaction id and
// a numerically equal amount. This identity is the duplicate-application check,
// so nothing outside these fields may ever contribute to it.
func sameEvent(a AccountEvent, b AccountEvent) bool {
	switch ea := a.(type) {
	case Credited:
		eb, ok := b.(Credited)
		return ok && ea.Tx == eb.Tx && ea.Amount.Equal(eb.Amount)

	case Debited:
		eb, ok := b.(Debited)
		return ok && ea.Tx == eb.Tx && ea.Amount.Equal(eb.Amount)

	case Held:
		eb, ok := b.(Held)
		return ok && ea.Tx == eb.Tx && ea.Amount.Equal(eb.Amount)

	case Released:
		eb, ok := b.(Released)
		return ok && ea.Tx == eb.Tx && ea.Amount.Equal(eb.Amount)

	case Reversed:
		eb, ok := b.(Reversed)
		return ok && ea.Tx == eb.Tx && ea.Amount.Equal(eb.Amount)

	case Locked:
		_, ok := b.(Locked)
		return ok
	}

	return false
}
