package registry

import (
	"time"

	"docregistry/internal/model"
)

// EventKind names a registry change.
type EventKind string

const (
	EventDocumentCreated    EventKind = "document.created"
	EventDocumentUpdated    EventKind = "document.updated"
	EventDocumentDeleted    EventKind = "document.deleted"
	EventCountersRolledOver EventKind = "counters.rolled_over"
)

// Event describes one committed change. Document is set for created and updated events,
// DocumentID for every document event, Counters for counter events and registrations.
type Event struct {
	Kind       EventKind           `json:"kind"`
	DocumentID string              `json:"documentId,omitempty"`
	Document   *model.Document     `json:"document,omitempty"`
	Counters   *model.CounterState `json:"counters,omitempty"`
	At         time.Time           `json:"at"`
}

// Observer receives events after they are durably committed. Notify is called with the
// registry lock held and must not call back into the registry.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }
