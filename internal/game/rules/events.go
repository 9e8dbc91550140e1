package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a duel event.
type EventType string

const (
	// Combat events
	EventAttackDeclared EventType = "ATTACK_DECLARED"
	EventAttackResolved EventType = "ATTACK_RESOLVED"

	// Damage events
	EventDamageCreature  EventType = "DAMAGE_CREATURE"
	EventDamagedCreature EventType = "DAMAGED_CREATURE"
	EventDamagePlayer    EventType = "DAMAGE_PLAYER"
	EventDamagedPlayer   EventType = "DAMAGED_PLAYER"
	EventDamagePrevented EventType = "DAMAGE_PREVENTED"

	// Table events
	EventEnteredTable EventType = "ENTERED_TABLE"
	EventLeftTable    EventType = "LEFT_TABLE"

	// Ability events
	EventAbilityStolen  EventType = "ABILITY_STOLEN"
	EventAbilityLinked  EventType = "ABILITY_LINKED"
	EventCreatureHealed EventType = "CREATURE_HEALED"

	// Counter events
	EventCounterAdded   EventType = "COUNTER_ADDED"
	EventCounterRemoved EventType = "COUNTER_REMOVED"

	// Turn events
	EventTurnStarted EventType = "TURN_STARTED"
	EventTurnEnded   EventType = "TURN_ENDED"
	EventPlayerLost  EventType = "PLAYER_LOST"
)

// IsDamage returns true if this event type reports damage.
func (et EventType) IsDamage() bool {
	switch et {
	case EventDamageCreature, EventDamagedCreature, EventDamagePlayer, EventDamagedPlayer, EventDamagePrevented:
		return true
	default:
		return false
	}
}

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	TargetID    string            // card or player receiving the effect
	SourceID    string            // card causing the effect
	PlayerID    string            // player owning the source, when known
	Amount      int               // damage, counter delta, power gain
	Position    int               // table slot the event relates to
	Data        string            // hook name, counter type, kind
	Timestamp   time.Time         // set on publish when zero
	Metadata    map[string]string // free-form details for watchers and spectators
	Description string            // human-readable summary
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously, in
// subscription order. A nil bus drops the event.
func (bus *EventBus) Publish(event Event) {
	if bus == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	bus.mu.RLock()
	listeners := make([]Listener, 0, len(bus.order))
	for _, handle := range bus.order {
		listeners = append(listeners, bus.listeners[handle])
	}
	typed := append([]TypedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.RUnlock()

	// Listeners run unlocked so they may subscribe or publish in turn.
	for _, listener := range listeners {
		listener(event)
	}
	for _, listener := range typed {
		listener.Callback(event)
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, playerID string) Event {
	return Event{
		Type:      eventType,
		TargetID:  targetID,
		SourceID:  sourceID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, playerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, playerID)
	evt.Amount = amount
	return evt
}
