package core

// LockedEventType is the event type identifier.
const LockedEventType = "Locked"

// Locked marks the account terminal. No command produces events once an
// account has applied Locked; balances stay frozen.
type Locked struct{}

// BuildLocked creates a new Locked event.
func BuildLocked() Locked {
	return Locked{}
}

// IsEventType returns the event type identifier.
func (e Locked) IsEventType() string {
	return LockedEventType
}
