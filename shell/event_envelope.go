package shell

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/paystream/transaction-engine/core"
)

var (
	// ErrMappingToEnvelopeFailed is returned when account event serialization fails.
	ErrMappingToEnvelopeFailed = errors.New("mapping account event to envelope failed")

	// ErrMappingToAccountEventFailed is returned when envelope deserialization fails.
	ErrMappingToAccountEventFailed = errors.New("mapping envelope to account event failed")

	// ErrUnknownEventType is returned for unrecognized event types.
	ErrUnknownEventType = errors.New("unknown event type")
)

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating all events of one ingestion run.
type CorrelationID = string

// EventMetadata contains event tracking information. It is envelope
// decoration only: the aggregate's duplicate check compares events
// structurally and must never see these IDs.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventEnvelope wraps one applied account event for the audit trail.
type EventEnvelope struct {
	EventType string
	Client    core.ClientID
	Payload   json.RawMessage
	Metadata  EventMetadata
}

// EnvelopeFrom converts an applied AccountEvent and its metadata to an EventEnvelope.
func EnvelopeFrom(client core.ClientID, event core.AccountEvent, metadata EventMetadata) (EventEnvelope, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrMappingToEnvelopeFailed, err)
	}

	return EventEnvelope{
		EventType: event.IsEventType(),
		Client:    client,
		Payload:   payloadJSON,
		Metadata:  metadata,
	}, nil
}

// AccountEventFrom converts an EventEnvelope back to its concrete AccountEvent.
func AccountEventFrom(envelope EventEnvelope) (core.AccountEvent, error) {
	switch envelope.EventType {
	case core.CreditedEventType:
		return unmarshalPayload(envelope.Payload, &core.Credited{})

	case core.DebitedEventType:
		return unmarshalPayload(envelope.Payload, &core.Debited{})

	case core.HeldEventType:
		return unmarshalPayload(envelope.Payload, &core.Held{})

	case core.ReleasedEventType:
		return unmarshalPayload(envelope.Payload, &core.Released{})

	case core.ReversedEventType:
		return unmarshalPayload(envelope.Payload, &core.Reversed{})

	case core.LockedEventType:
		return core.BuildLocked(), nil
	}

	return nil, errors.Join(ErrMappingToAccountEventFailed, ErrUnknownEventType)
}

func unmarshalPayload[E core.AccountEvent](payloadJSON json.RawMessage, payload *E) (core.AccountEvent, error) {
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload); err != nil {
		return nil, errors.Join(ErrMappingToAccountEventFailed, err)
	}

	return *payload, nil
}
