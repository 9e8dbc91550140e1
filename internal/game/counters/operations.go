package counters

import (
	"fmt"
	"strconv"

	"github.com/magefree/creature-duel-go/internal/game/rules"
	"go.uber.org/zap"
)

// CounterOperations changes registry counters and reports each change on
// the event bus.
type CounterOperations struct {
	registry *Registry
	eventBus *rules.EventBus
	logger   *zap.Logger
}

// NewCounterOperations creates a new CounterOperations instance. A nil bus
// disables event publishing.
func NewCounterOperations(registry *Registry, eventBus *rules.EventBus, logger *zap.Logger) *CounterOperations {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &CounterOperations{
		registry: registry,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Registry returns the underlying registry.
func (co *CounterOperations) Registry() *Registry {
	return co.registry
}

// Increment adds one to a counter on behalf of sourceID and returns the new value.
func (co *CounterOperations) Increment(counterType CounterType, sourceID string) int {
	value := co.registry.Add(counterType, 1)
	co.publish(rules.EventCounterAdded, counterType, sourceID, 1, value)
	return value
}

// Decrement removes one from a counter on behalf of sourceID and returns the new value.
func (co *CounterOperations) Decrement(counterType CounterType, sourceID string) int {
	value := co.registry.Remove(counterType, 1)
	co.publish(rules.EventCounterRemoved, counterType, sourceID, 1, value)
	return value
}

func (co *CounterOperations) publish(eventType rules.EventType, counterType CounterType, sourceID string, delta, value int) {
	co.logger.Debug("counter changed",
		zap.String("counter", counterType.String()),
		zap.String("source_id", sourceID),
		zap.String("event", string(eventType)),
		zap.Int("value", value),
	)

	if co.eventBus == nil {
		return
	}
	evt := rules.NewEventWithAmount(eventType, sourceID, sourceID, "", delta)
	evt.Data = counterType.String()
	evt.Metadata["counter_name"] = counterType.String()
	evt.Metadata["counter_value"] = strconv.Itoa(value)
	evt.Description = fmt.Sprintf("%s is now %d", counterType, value)
	co.eventBus.Publish(evt)
}
