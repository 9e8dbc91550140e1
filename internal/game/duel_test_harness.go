package game

import (
	"fmt"
	"sync"
	"testing"

	"github.com/magefree/creature-duel-go/internal/game/counters"
	"github.com/magefree/creature-duel-go/internal/game/rules"
	"go.uber.org/zap/zaptest"
)

// RecordingView records every view call into a shared log as
// "<label>:<call>" and completes animations immediately unless Deferred
// is set, in which case completions wait for Flush.
type RecordingView struct {
	Label    string
	Deferred bool

	log     *ViewLog
	pending []func()
}

// ViewLog is the ordered record shared by several RecordingViews.
type ViewLog struct {
	mu      sync.Mutex
	entries []string
}

// Entries returns a copy of the recorded calls.
func (l *ViewLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *ViewLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// NewRecordingView creates a view writing into log.
func NewRecordingView(label string, log *ViewLog) *RecordingView {
	return &RecordingView{Label: label, log: log}
}

func (v *RecordingView) ShowAttack(onDone func())    { v.animate("attack", onDone) }
func (v *RecordingView) SignalAbility(onDone func()) { v.animate("ability", onDone) }
func (v *RecordingView) SignalDamage(onDone func())  { v.animate("damage", onDone) }
func (v *RecordingView) SignalHeal()                 { v.log.add(v.Label + ":heal") }
func (v *RecordingView) Update()                     { v.log.add(v.Label + ":update") }

// Pending returns how many animations wait for Flush.
func (v *RecordingView) Pending() int {
	return len(v.pending)
}

// Flush completes the oldest pending animation.
func (v *RecordingView) Flush() bool {
	if len(v.pending) == 0 {
		return false
	}
	done := v.pending[0]
	v.pending = v.pending[1:]
	done()
	return true
}

func (v *RecordingView) animate(call string, onDone func()) {
	v.log.add(v.Label + ":" + call)
	if v.Deferred {
		v.pending = append(v.pending, onDone)
		return
	}
	onDone()
}

// DuelTestHarness wires a catalog, engine and two players for scenario tests.
type DuelTestHarness struct {
	t *testing.T

	Bus      *rules.EventBus
	Counters *counters.CounterOperations
	Catalog  *Catalog
	Engine   *Engine
	Sheriff  *Player
	Bandit   *Player
	Views    *ViewLog

	Events       []rules.Event
	BoardUpdates int
}

// NewDuelTestHarness creates a harness with English text and hero power 10.
func NewDuelTestHarness(t *testing.T) *DuelTestHarness {
	logger := zaptest.NewLogger(t)
	bus := rules.NewEventBus()
	ops := counters.NewCounterOperations(counters.NewRegistry(), bus, logger)

	h := &DuelTestHarness{
		t:        t,
		Bus:      bus,
		Counters: ops,
		Catalog:  NewCatalog(ops, nil, logger),
		Engine:   NewEngine(logger, bus),
		Sheriff:  NewPlayer("Sheriff", 10),
		Bandit:   NewPlayer("Bandit", 10),
		Views:    &ViewLog{},
	}
	bus.Subscribe(func(e rules.Event) { h.Events = append(h.Events, e) })
	return h
}

// Opponent returns the other player.
func (h *DuelTestHarness) Opponent(p *Player) *Player {
	if p == h.Sheriff {
		return h.Bandit
	}
	return h.Sheriff
}

// Context returns a context for p acting from position.
func (h *DuelTestHarness) Context(p *Player, position int) *Context {
	return h.Engine.NewContext(p, h.Opponent(p), position, func() { h.BoardUpdates++ })
}

// Watch attaches a recording view labelled label to card.
func (h *DuelTestHarness) Watch(card *Creature, label string) *RecordingView {
	v := NewRecordingView(label, h.Views)
	card.SetView(v)
	return v
}

// Play puts card on p's table and fails the test unless it completes
// synchronously.
func (h *DuelTestHarness) Play(p *Player, card *Creature) {
	h.t.Helper()
	done := false
	h.Engine.PlayCard(h.Context(p, 0), card, func() { done = true })
	if !done {
		h.t.Fatalf("playing %s did not complete", card.NameKey())
	}
}

// Attack resolves the attack of the card in p's slot position and fails the
// test unless it completes synchronously.
func (h *DuelTestHarness) Attack(p *Player, position int) {
	h.t.Helper()
	done := false
	h.Engine.Attack(h.Context(p, position), p.CardAt(position), func() { done = true })
	if !done {
		h.t.Fatalf("attack from slot %d did not complete", position)
	}
}

// Remove takes the card in p's slot position off the table.
func (h *DuelTestHarness) Remove(p *Player, position int) {
	h.t.Helper()
	done := false
	h.Engine.RemoveCard(p, position, func() { done = true })
	if !done {
		h.t.Fatalf("removing slot %d did not complete", position)
	}
}

// EventsOf returns the recorded events of the given type.
func (h *DuelTestHarness) EventsOf(eventType rules.EventType) []rules.Event {
	var out []rules.Event
	for _, e := range h.Events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// String summarizes both tables for failure messages.
func (h *DuelTestHarness) String() string {
	return fmt.Sprintf("sheriff=%s bandit=%s", tableString(h.Sheriff), tableString(h.Bandit))
}

func tableString(p *Player) string {
	s := "["
	for i, card := range p.Table {
		if i > 0 {
			s += " "
		}
		if card == nil {
			s += "_"
			continue
		}
		s += fmt.Sprintf("%s:%d/%d", card.Kind, card.CurrentPower(), card.MaxPower())
	}
	return s + "]"
}
