package core

// ReleasedEventType is the event type identifier.
const ReleasedEventType = "Released"

// Released represents held funds returned to available when a dispute
// is resolved in the client's favor.
type Released struct {
	Tx     TransactionID
	Amount Money
}

// BuildReleased creates a new Released event.
func BuildReleased(tx TransactionID, amount Money) Released {
	return Released{
		Tx:     tx,
		Amount: amount,
	}
}

// IsEventType returns the event type identifier.
func (e Released) IsEventType() string {
	return ReleasedEventType
}
