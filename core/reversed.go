package core

// ReversedEventType is the event type identifier.
const ReversedEventType = "Reversed"

// Reversed represents held funds withdrawn from the account by a chargeback.
// It is always followed by a Locked event in the same sequence.
type Reversed struct {
	Tx     TransactionID
	Amount Money
}

// BuildReversed creates a new Reversed event.
func BuildReversed(tx TransactionID, amount Money) Reversed {
	return Reversed{
		Tx:     tx,
		Amount: amount,
	}
}

// IsEventType returns the event type identifier.
func (e Reversed) IsEventType() string {
	return ReversedEventType
}
