package rules

import (
	"testing"
	"time"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	attackCount := 0
	damageCount := 0

	handle1 := bus.SubscribeTyped(EventAttackDeclared, func(e Event) {
		attackCount++
	})
	handle2 := bus.SubscribeTyped(EventDamagedCreature, func(e Event) {
		damageCount++
	})

	bus.Publish(NewEvent(EventAttackDeclared, "slot-0", "card1", "player1"))
	if attackCount != 1 {
		t.Fatalf("expected attack count 1, got %d", attackCount)
	}
	if damageCount != 0 {
		t.Fatalf("expected damage count 0, got %d", damageCount)
	}

	bus.Publish(NewEventWithAmount(EventDamagedCreature, "card2", "card1", "player1", 3))
	if damageCount != 1 {
		t.Fatalf("expected damage count 1, got %d", damageCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventAttackDeclared, "slot-1", "card1", "player1"))
	if attackCount != 1 {
		t.Fatalf("expected attack count still 1 after unsubscribe, got %d", attackCount)
	}

	bus.Unsubscribe(handle2)
	bus.Publish(NewEventWithAmount(EventDamagedCreature, "card2", "card1", "player1", 2))
	if damageCount != 1 {
		t.Fatalf("expected damage count still 1 after unsubscribe, got %d", damageCount)
	}
}

func TestEventBusSubscribeAllInOrder(t *testing.T) {
	bus := NewEventBus()

	var order []string
	first := bus.Subscribe(func(e Event) { order = append(order, "first:"+string(e.Type)) })
	bus.Subscribe(func(e Event) { order = append(order, "second:"+string(e.Type)) })

	bus.PublishBatch([]Event{
		NewEvent(EventEnteredTable, "card1", "card1", "player1"),
		NewEvent(EventLeftTable, "card1", "card1", "player1"),
	})

	expected := []string{
		"first:ENTERED_TABLE", "second:ENTERED_TABLE",
		"first:LEFT_TABLE", "second:LEFT_TABLE",
	}
	if len(order) != len(expected) {
		t.Fatalf("expected %d deliveries, got %d", len(expected), len(order))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("delivery %d: expected %s, got %s", i, expected[i], order[i])
		}
	}

	bus.Unsubscribe(first)
	order = nil
	bus.Publish(NewEvent(EventTurnStarted, "", "", "player1"))
	if len(order) != 1 || order[0] != "second:TURN_STARTED" {
		t.Fatalf("unexpected deliveries after unsubscribe: %v", order)
	}
}

func TestEventBusListenerMayPublish(t *testing.T) {
	bus := NewEventBus()

	resolved := 0
	bus.SubscribeTyped(EventAttackDeclared, func(e Event) {
		bus.Publish(NewEvent(EventAttackResolved, e.TargetID, e.SourceID, e.PlayerID))
	})
	bus.SubscribeTyped(EventAttackResolved, func(e Event) {
		resolved++
	})

	bus.Publish(NewEvent(EventAttackDeclared, "slot-0", "card1", "player1"))
	if resolved != 1 {
		t.Fatalf("expected nested publish to be delivered, got %d", resolved)
	}
}

func TestNilEventBusPublish(t *testing.T) {
	var bus *EventBus
	bus.Publish(NewEvent(EventAttackDeclared, "", "", ""))
}

func TestEventIsDamage(t *testing.T) {
	if !EventDamagedCreature.IsDamage() {
		t.Fatal("EventDamagedCreature should be a damage event")
	}
	if !EventDamagedPlayer.IsDamage() {
		t.Fatal("EventDamagedPlayer should be a damage event")
	}
	if EventEnteredTable.IsDamage() {
		t.Fatal("EventEnteredTable should not be a damage event")
	}
}

func TestEventTimestamp(t *testing.T) {
	before := time.Now()
	evt := NewEvent(EventAttackDeclared, "slot-0", "card1", "player1")
	after := time.Now()

	if evt.Timestamp.Before(before) || evt.Timestamp.After(after) {
		t.Fatal("event timestamp should be between before and after")
	}

	bus := NewEventBus()
	var got Event
	bus.Subscribe(func(e Event) { got = e })
	bus.Publish(Event{Type: EventTurnEnded})
	if got.Timestamp.IsZero() {
		t.Fatal("publish should stamp events without a timestamp")
	}
}
