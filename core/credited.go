package core

// CreditedEventType is the event type identifier.
const CreditedEventType = "Credited"

// Credited represents funds added to the available balance by a deposit.
type Credited struct {
	Tx     TransactionID
	Amount Money
}

// BuildCredited creates a new Credited event.
func BuildCredited(tx TransactionID, amount Money) Credited {
	return Credited{
		Tx:     tx,
		Amount: amount,
	}
}

// IsEventType returns the event type identifier.
func (e Credited) IsEventType() string {
	return CreditedEventType
}
