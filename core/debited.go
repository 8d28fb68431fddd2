package core

// DebitedEventType is the event type identifier.
const DebitedEventType = "Debited"

// Debited represents funds removed from the available balance by a withdrawal.
type Debited struct {
	Tx     TransactionID
	Amount Money
}

// BuildDebited creates a new Debited event.
func BuildDebited(tx TransactionID, amount Money) Debited {
	return Debited{
		Tx:     tx,
		Amount: amount,
	}
}

// IsEventType returns the event type identifier.
func (e Debited) IsEventType() string {
	return DebitedEventType
}
