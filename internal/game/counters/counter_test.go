package counters

import (
	"testing"

	"github.com/magefree/creature-duel-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCounterRemoveFloorsAtZero(t *testing.T) {
	c := NewCounter("lads", 2)
	c.Remove(5)
	assert.Equal(t, 0, c.Count)

	c.Add(3)
	c.Add(-1)
	assert.Equal(t, 3, c.Count)

	cp := c.Copy()
	cp.Add(1)
	assert.Equal(t, 3, c.Count, "copy must not alias the original")
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Get(CounterTypeLadsInPlay))

	assert.Equal(t, 1, r.Add(CounterTypeLadsInPlay, 1))
	assert.Equal(t, 3, r.Add(CounterTypeLadsInPlay, 2))
	assert.Equal(t, 2, r.Remove(CounterTypeLadsInPlay, 1))
	assert.Equal(t, 0, r.Remove(CounterTypeLadsInPlay, 10))

	r.Set(CounterTypeLadsInPlay, 7)
	assert.Equal(t, 7, r.Get(CounterTypeLadsInPlay))

	r.Set("other", -4)
	assert.Equal(t, 0, r.Get("other"))

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "lads_in_play", snapshot[0].Name)
	assert.Equal(t, "other", snapshot[1].Name)

	r.Reset()
	assert.Equal(t, 0, r.Get(CounterTypeLadsInPlay))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.Add(CounterTypeLadsInPlay, 2)
	assert.Equal(t, 0, b.Get(CounterTypeLadsInPlay))
}

func TestTriangular(t *testing.T) {
	cases := map[int]int{
		-2: 0,
		0:  0,
		1:  1,
		2:  3,
		3:  6,
		4:  10,
		10: 55,
	}
	for n, want := range cases {
		assert.Equal(t, want, Triangular(n), "n=%d", n)
	}
}

func TestCounterOperationsPublishEvents(t *testing.T) {
	bus := rules.NewEventBus()
	var events []rules.Event
	bus.Subscribe(func(e rules.Event) { events = append(events, e) })

	ops := NewCounterOperations(NewRegistry(), bus, zaptest.NewLogger(t))

	assert.Equal(t, 1, ops.Increment(CounterTypeLadsInPlay, "lad-1"))
	assert.Equal(t, 2, ops.Increment(CounterTypeLadsInPlay, "lad-2"))
	assert.Equal(t, 1, ops.Decrement(CounterTypeLadsInPlay, "lad-1"))
	assert.Equal(t, 1, ops.Registry().Get(CounterTypeLadsInPlay))

	require.Len(t, events, 3)
	assert.Equal(t, rules.EventCounterAdded, events[0].Type)
	assert.Equal(t, rules.EventCounterRemoved, events[2].Type)
	assert.Equal(t, "lad-1", events[2].SourceID)
	assert.Equal(t, "lads_in_play", events[2].Data)
	assert.Equal(t, "1", events[2].Metadata["counter_value"])
}

func TestCounterOperationsWithoutBus(t *testing.T) {
	ops := NewCounterOperations(nil, nil, nil)
	assert.Equal(t, 1, ops.Increment(CounterTypeLadsInPlay, "lad-1"))
	assert.Equal(t, 0, ops.Decrement(CounterTypeLadsInPlay, "lad-1"))
	assert.Equal(t, 0, ops.Decrement(CounterTypeLadsInPlay, "lad-1"))
}
