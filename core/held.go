package core

// HeldEventType is the event type identifier.
const HeldEventType = "Held"

// Held represents funds moved out of available while a dispute is open.
// The amount is taken from the genesis transaction being disputed.
type Held struct {
	Tx     TransactionID
	Amount Money
}

// BuildHeld creates a new Held event.
func BuildHeld(tx TransactionID, amount Money) Held {
	return Held{
		Tx:     tx,
		Amount: amount,
	}
}

// IsEventType returns the event type identifier.
func (e Held) IsEventType() string {
	return HeldEventType
}
