package watchers

import (
	"github.com/magefree/creature-duel-go/internal/game/rules"
)

// DamageWatcher tallies damage actually applied to creatures and players.
type DamageWatcher struct {
	*rules.BaseWatcher
	toCreatures map[string]int // target card ID -> damage
	toPlayers   map[string]int // player ID -> damage
	bySource    map[string]int // source card ID -> damage dealt
	prevented   int
}

// NewDamageWatcher creates a new damage watcher.
func NewDamageWatcher() *DamageWatcher {
	w := &DamageWatcher{BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame)}
	w.SetKey("DamageWatcher")
	w.clear()
	return w
}

// Watch implements the Watcher interface.
func (w *DamageWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventDamagedCreature:
		w.toCreatures[event.TargetID] += event.Amount
	case rules.EventDamagedPlayer:
		if event.Amount <= 0 {
			return
		}
		w.toPlayers[event.TargetID] += event.Amount
	case rules.EventDamagePrevented:
		w.prevented++
		return
	default:
		return
	}
	if event.SourceID != "" {
		w.bySource[event.SourceID] += event.Amount
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *DamageWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.clear()
}

func (w *DamageWatcher) clear() {
	w.toCreatures = make(map[string]int)
	w.toPlayers = make(map[string]int)
	w.bySource = make(map[string]int)
	w.prevented = 0
}

// DamageToCreature returns the damage a card has taken.
func (w *DamageWatcher) DamageToCreature(cardID string) int {
	return w.toCreatures[cardID]
}

// DamageToPlayer returns the damage a player has taken.
func (w *DamageWatcher) DamageToPlayer(playerID string) int {
	return w.toPlayers[playerID]
}

// DamageBySource returns the damage a card has dealt.
func (w *DamageWatcher) DamageBySource(cardID string) int {
	return w.bySource[cardID]
}

// Prevented returns how many damage applications were reduced to nothing.
func (w *DamageWatcher) Prevented() int {
	return w.prevented
}

// Copy creates a copy of this watcher.
func (w *DamageWatcher) Copy() rules.Watcher {
	cp := NewDamageWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.prevented = w.prevented
	for k, v := range w.toCreatures {
		cp.toCreatures[k] = v
	}
	for k, v := range w.toPlayers {
		cp.toPlayers[k] = v
	}
	for k, v := range w.bySource {
		cp.bySource[k] = v
	}
	return cp
}

// CreaturesRemovedWatcher counts creatures that left the table, per owner.
type CreaturesRemovedWatcher struct {
	*rules.BaseWatcher
	removedByOwner map[string]int
	removedKinds   map[string]int
}

// NewCreaturesRemovedWatcher creates a new creatures removed watcher.
func NewCreaturesRemovedWatcher() *CreaturesRemovedWatcher {
	w := &CreaturesRemovedWatcher{
		BaseWatcher:    rules.NewBaseWatcher(rules.WatcherScopeGame),
		removedByOwner: make(map[string]int),
		removedKinds:   make(map[string]int),
	}
	w.SetKey("CreaturesRemovedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CreaturesRemovedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventLeftTable {
		return
	}
	w.removedByOwner[event.PlayerID]++
	if event.Data != "" {
		w.removedKinds[event.Data]++
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CreaturesRemovedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.removedByOwner = make(map[string]int)
	w.removedKinds = make(map[string]int)
}

// GetCount returns the number of creatures a player lost.
func (w *CreaturesRemovedWatcher) GetCount(playerID string) int {
	return w.removedByOwner[playerID]
}

// GetKindCount returns how many creatures of a kind left the table.
func (w *CreaturesRemovedWatcher) GetKindCount(kind string) int {
	return w.removedKinds[kind]
}

// GetTotal returns the number of creatures removed from both tables.
func (w *CreaturesRemovedWatcher) GetTotal() int {
	total := 0
	for _, n := range w.removedByOwner {
		total += n
	}
	return total
}

// AbilityTransferWatcher records steals and links for a single card, or
// for every card when no source is set.
type AbilityTransferWatcher struct {
	*rules.BaseWatcher
	stolen []string // hook names, in order
	links  []string // prototype names, in order
}

// NewAbilityTransferWatcher creates a watcher for cardID; an empty ID
// watches the whole duel.
func NewAbilityTransferWatcher(cardID string) *AbilityTransferWatcher {
	scope := rules.WatcherScopeGame
	if cardID != "" {
		scope = rules.WatcherScopeCard
	}
	w := &AbilityTransferWatcher{BaseWatcher: rules.NewBaseWatcher(scope)}
	w.SetSourceID(cardID)
	return w
}

// Watch implements the Watcher interface.
func (w *AbilityTransferWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventAbilityStolen && event.Type != rules.EventAbilityLinked {
		return
	}
	if id := w.GetSourceID(); id != "" && event.SourceID != id {
		return
	}
	if event.Type == rules.EventAbilityStolen {
		w.stolen = append(w.stolen, event.Data)
	} else {
		w.links = append(w.links, event.Data)
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *AbilityTransferWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.stolen = nil
	w.links = nil
}

// Stolen returns the hook names taken, in order.
func (w *AbilityTransferWatcher) Stolen() []string {
	return append([]string(nil), w.stolen...)
}

// Links returns the prototype names linked to, in order.
func (w *AbilityTransferWatcher) Links() []string {
	return append([]string(nil), w.links...)
}
