// Package event describes the notifications emitted when tracker state changes
// and the publishers that deliver them.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Action is what happened to an entity
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionImported Action = "imported"
	ActionRaised   Action = "raised"
)

// Entity is the kind of object an event is about
type Entity string

const (
	EntityTransaction Entity = "transaction"
	EntityBudget      Entity = "budget"
	EntityAlert       Entity = "alert"
	EntityGoal        Entity = "goal"
)

// ParseEntity accepts one of the known entity names
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(s); e {
	case EntityTransaction, EntityBudget, EntityAlert, EntityGoal:
		return e, nil
	}
	return "", fmt.Errorf("unknown event entity %q", s)
}

// Event is the message sent to subscribers.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string    `json:"type"` // e.g. "alert.raised"
	Entity    Entity    `json:"entity"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates an event stamped with the current UTC time
func New(action Action, entity Entity, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entity, action),
		Entity:    entity,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreated(payload any) Event {
	return New(ActionCreated, EntityTransaction, payload)
}

func TransactionsImported(payload any) Event {
	return New(ActionImported, EntityTransaction, payload)
}

func BudgetUpdated(payload any) Event {
	return New(ActionUpdated, EntityBudget, payload)
}

func AlertRaised(payload any) Event {
	return New(ActionRaised, EntityAlert, payload)
}

func GoalCreated(payload any) Event {
	return New(ActionCreated, EntityGoal, payload)
}

// Publisher delivers events. Implementations must not block the caller on slow subscribers.
type Publisher interface {
	Publish(event Event)
}

// NoOpPublisher drops every event
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(Event) {}

// Fanout publishes each event to every wrapped publisher in order
type Fanout []Publisher

func (f Fanout) Publish(e Event) {
	for _, p := range f {
		p.Publish(e)
	}
}

// LogPublisher writes events to the application log
type LogPublisher struct{}

func (LogPublisher) Publish(e Event) {
	log.Debug().Str("event_type", e.Type).Time("timestamp", e.Timestamp).Msg("Event published")
}
