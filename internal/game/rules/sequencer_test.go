package rules

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerRunsInFIFOOrder(t *testing.T) {
	seq := NewSequencer()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		seq.PushFunc(name, func(done func()) {
			order = append(order, name)
			done()
		})
	}
	require.Equal(t, 3, seq.Len())

	finals := 0
	require.NoError(t, seq.ContinueWith(func() { finals++ }))

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, 1, finals)
	assert.False(t, seq.IsRunning())
	assert.Equal(t, 0, seq.Len())
}

func TestSequencerEmptyQueueFiresImmediately(t *testing.T) {
	seq := NewSequencer()

	fired := false
	require.NoError(t, seq.ContinueWith(func() { fired = true }))
	assert.True(t, fired)
}

func TestSequencerWaitsForCompletion(t *testing.T) {
	seq := NewSequencer()

	var pending func()
	secondRan := false
	seq.PushFunc("animation", func(done func()) {
		pending = done
	})
	seq.PushFunc("damage", func(done func()) {
		secondRan = true
		done()
	})

	finished := false
	require.NoError(t, seq.ContinueWith(func() { finished = true }))

	assert.False(t, secondRan, "second task must not start before the first completes")
	assert.False(t, finished)
	assert.True(t, seq.IsRunning())

	pending()
	assert.True(t, secondRan)
	assert.True(t, finished)
}

func TestSequencerTasksMayPushTasks(t *testing.T) {
	seq := NewSequencer()

	var order []int
	seq.PushFunc("fan-out", func(done func()) {
		order = append(order, 0)
		for i := 1; i <= 3; i++ {
			i := i
			seq.PushFunc("damage", func(done func()) {
				order = append(order, i)
				done()
			})
		}
		done()
	})
	seq.PushFunc("tail", func(done func()) {
		order = append(order, 99)
		done()
	})

	finals := 0
	require.NoError(t, seq.ContinueWith(func() { finals++ }))

	assert.Equal(t, []int{0, 99, 1, 2, 3}, order)
	assert.Equal(t, 1, finals)
}

func TestSequencerIgnoresSecondCompletion(t *testing.T) {
	seq := NewSequencer()

	runs := 0
	seq.PushFunc("double", func(done func()) {
		done()
		done()
	})
	seq.PushFunc("next", func(done func()) {
		runs++
		done()
	})

	finals := 0
	require.NoError(t, seq.ContinueWith(func() { finals++ }))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, finals)
}

func TestSequencerRejectsReentrantStart(t *testing.T) {
	seq := NewSequencer()

	var pending func()
	seq.PushFunc("stall", func(done func()) { pending = done })
	require.NoError(t, seq.ContinueWith(func() {}))

	err := seq.ContinueWith(func() {})
	assert.ErrorIs(t, err, ErrSequencerRunning)

	pending()
	assert.False(t, seq.IsRunning())
}

func TestSequencerAsyncCompletion(t *testing.T) {
	seq := NewSequencer()

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 4; i++ {
		i := i
		seq.PushFunc("timer", func(done func()) {
			time.AfterFunc(time.Millisecond, func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				done()
			})
		})
	}

	finished := make(chan struct{})
	require.NoError(t, seq.ContinueWith(func() { close(finished) }))

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("sequencer stalled")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestSequencerDeepSynchronousQueue(t *testing.T) {
	seq := NewSequencer()

	count := 0
	for i := 0; i < 100000; i++ {
		seq.PushFunc("tick", func(done func()) {
			count++
			done()
		})
	}

	require.NoError(t, seq.ContinueWith(func() {}))
	assert.Equal(t, 100000, count)
}

func TestSequencerAssignsTaskIDs(t *testing.T) {
	seq := NewSequencer()

	var ids []string
	record := func(done func()) { done() }
	seq.Push(Task{ID: "fixed", Run: record})
	seq.Push(Task{Kind: TaskKindDamage, Run: record})

	seq.mu.Lock()
	for _, task := range seq.tasks {
		ids = append(ids, task.ID)
	}
	seq.mu.Unlock()

	require.Len(t, ids, 2)
	assert.Equal(t, "fixed", ids[0])
	assert.NotEmpty(t, ids[1])
}
