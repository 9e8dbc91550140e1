package counters

import (
	"sort"
	"sync"
)

// Counter is a named tally.
type Counter struct {
	Name  string
	Count int
}

// NewCounter creates a new counter with the given name and count.
// Negative counts start at zero.
func NewCounter(name string, count int) *Counter {
	if count < 0 {
		count = 0
	}
	return &Counter{
		Name:  name,
		Count: count,
	}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes the specified amount from the counter.
// Will not allow count to go below 0.
func (c *Counter) Remove(amount int) {
	if amount <= 0 {
		return
	}
	if c.Count >= amount {
		c.Count -= amount
	} else {
		c.Count = 0
	}
}

// Copy creates a copy of the counter.
func (c *Counter) Copy() *Counter {
	return &Counter{
		Name:  c.Name,
		Count: c.Count,
	}
}

// Registry holds counters scoped to a card kind rather than to any single
// card instance. Every live instance of the kind reads and writes the same
// value. A Registry is owned by one duel and injected where it is needed.
type Registry struct {
	mu       sync.Mutex
	counters map[CounterType]*Counter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[CounterType]*Counter),
	}
}

// Get returns the current value of a counter; unknown counters read as zero.
func (r *Registry) Get(counterType CounterType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if counter, ok := r.counters[counterType]; ok {
		return counter.Count
	}
	return 0
}

// Set overwrites a counter value, flooring at zero.
func (r *Registry) Set(counterType CounterType, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[counterType] = NewCounter(counterType.String(), value)
}

// Add increases a counter and returns the new value.
func (r *Registry) Add(counterType CounterType, amount int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counter := r.lookup(counterType)
	counter.Add(amount)
	return counter.Count
}

// Remove decreases a counter, never below zero, and returns the new value.
func (r *Registry) Remove(counterType CounterType, amount int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counter := r.lookup(counterType)
	counter.Remove(amount)
	return counter.Count
}

// Reset clears every counter.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = make(map[CounterType]*Counter)
}

// Snapshot returns copies of all counters ordered by name.
func (r *Registry) Snapshot() []Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Counter, 0, len(r.counters))
	for _, counter := range r.counters {
		result = append(result, *counter.Copy())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (r *Registry) lookup(counterType CounterType) *Counter {
	counter, ok := r.counters[counterType]
	if !ok {
		counter = NewCounter(counterType.String(), 0)
		r.counters[counterType] = counter
	}
	return counter
}
