package types

import "fmt"

type TargetKind string

const (
	TARGET_EVENT   TargetKind = "event"
	TARGET_SESSION TargetKind = "session"
)

// Target is the single reference a cart line or ticket points at. A line
// holds an event or a movie session, never both and never neither, so the
// pair of nullable columns in storage is only ever built from one of these.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func EventTarget(id uint) Target {
	return Target{Kind: TARGET_EVENT, ID: id}
}

func SessionTarget(id uint) Target {
	return Target{Kind: TARGET_SESSION, ID: id}
}

// NewTarget validates the either/or pair coming off the wire.
func NewTarget(eventId, sessionId *uint) (Target, error) {
	if eventId != nil && sessionId != nil {
		return Target{}, fmt.Errorf("%w: only one of event_id or session_id should be provided", ErrInvalidInput)
	}
	if eventId == nil && sessionId == nil {
		return Target{}, fmt.Errorf("%w: either event_id or session_id is required", ErrInvalidInput)
	}
	if eventId != nil {
		return EventTarget(*eventId), nil
	}
	return SessionTarget(*sessionId), nil
}

func (t Target) EventID() *uint {
	if t.Kind == TARGET_EVENT {
		id := t.ID
		return &id
	}
	return nil
}

func (t Target) SessionID() *uint {
	if t.Kind == TARGET_SESSION {
		id := t.ID
		return &id
	}
	return nil
}
