package watchers

import (
	"testing"

	"github.com/magefree/creature-duel-go/internal/game"
	"github.com/magefree/creature-duel-go/internal/game/rules"
)

func TestDamageWatcher(t *testing.T) {
	watcher := NewDamageWatcher()

	if watcher.ConditionMet() {
		t.Fatal("watcher should not have condition met initially")
	}

	watcher.Watch(rules.NewEventWithAmount(rules.EventDamagedCreature, "duck", "dog", "p1", 3))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamagedCreature, "duck", "dog", "p1", 2))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamagedPlayer, "p2", "dog", "p1", 1))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamagedPlayer, "p2", "dog", "p1", 0))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamagePrevented, "lad", "dog", "p1", 0))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDamageCreature, "duck", "dog", "p1", 9))

	if !watcher.ConditionMet() {
		t.Fatal("watcher should have condition met after damage")
	}
	if got := watcher.DamageToCreature("duck"); got != 5 {
		t.Fatalf("expected 5 damage to duck, got %d", got)
	}
	if got := watcher.DamageToPlayer("p2"); got != 1 {
		t.Fatalf("expected 1 damage to p2, got %d", got)
	}
	if got := watcher.DamageBySource("dog"); got != 6 {
		t.Fatalf("expected dog to deal 6, got %d", got)
	}
	if got := watcher.Prevented(); got != 1 {
		t.Fatalf("expected 1 prevented, got %d", got)
	}

	cp := watcher.Copy().(*DamageWatcher)
	watcher.Reset()
	if watcher.ConditionMet() || watcher.DamageToCreature("duck") != 0 {
		t.Fatal("reset should clear damage")
	}
	if cp.DamageToCreature("duck") != 5 || !cp.ConditionMet() {
		t.Fatal("copy should keep its own state")
	}
}

func TestCreaturesRemovedWatcher(t *testing.T) {
	watcher := NewCreaturesRemovedWatcher()

	event := rules.NewEvent(rules.EventLeftTable, "lad1", "lad1", "bandit")
	event.Data = "lad"
	watcher.Watch(event)
	watcher.Watch(rules.NewEvent(rules.EventLeftTable, "duck1", "duck1", "sheriff"))
	watcher.Watch(rules.NewEvent(rules.EventEnteredTable, "duck2", "duck2", "sheriff"))

	if got := watcher.GetCount("bandit"); got != 1 {
		t.Fatalf("expected 1 removed for bandit, got %d", got)
	}
	if got := watcher.GetKindCount("lad"); got != 1 {
		t.Fatalf("expected 1 lad removed, got %d", got)
	}
	if got := watcher.GetTotal(); got != 2 {
		t.Fatalf("expected 2 removed, got %d", got)
	}

	watcher.Reset()
	if watcher.GetTotal() != 0 {
		t.Fatal("reset should clear counts")
	}
}

func TestAbilityTransferWatcherFiltersBySource(t *testing.T) {
	watcher := NewAbilityTransferWatcher("rogue")
	if watcher.GetScope() != rules.WatcherScopeCard {
		t.Fatalf("expected card scope, got %s", watcher.GetScope())
	}

	stolen := rules.NewEvent(rules.EventAbilityStolen, "lad", "rogue", "p1")
	stolen.Data = "modify_taken_damage"
	watcher.Watch(stolen)

	other := rules.NewEvent(rules.EventAbilityStolen, "lad", "another-rogue", "p1")
	other.Data = "modify_dealt_damage_to_creature"
	watcher.Watch(other)

	if got := watcher.Stolen(); len(got) != 1 || got[0] != "modify_taken_damage" {
		t.Fatalf("unexpected stolen hooks %v", got)
	}
	if len(watcher.Links()) != 0 {
		t.Fatal("no links expected")
	}
}

func TestWatchersFollowADuel(t *testing.T) {
	h := game.NewDuelTestHarness(t)
	registry := rules.NewWatcherRegistry()
	damage := NewDamageWatcher()
	removed := NewCreaturesRemovedWatcher()
	transfers := NewAbilityTransferWatcher("")
	registry.AddWatcher(damage)
	registry.AddWatcher(removed)
	registry.AddWatcher(transfers)
	registry.Attach(h.Bus)

	rogue := h.Catalog.NewRogue()
	nemo := h.Catalog.NewNemo()
	lad := h.Catalog.NewLad()
	h.Play(h.Sheriff, rogue)
	h.Play(h.Sheriff, nemo)
	h.Play(h.Bandit, lad)
	h.Play(h.Bandit, h.Catalog.NewTrasher())

	h.Attack(h.Sheriff, 0)
	h.Attack(h.Sheriff, 1)
	h.Remove(h.Bandit, 0)

	if got := transfers.Stolen(); len(got) != 2 {
		t.Fatalf("expected 2 stolen hooks, got %v", got)
	}
	if got := transfers.Links(); len(got) != 1 || got[0] != string(game.KindTrasher) {
		t.Fatalf("expected a link to trasher, got %v", got)
	}
	if got := damage.DamageToCreature(lad.ID); got != 1 {
		t.Fatalf("expected lad to take 1, got %d", got)
	}
	if got := damage.DamageBySource(nemo.ID); got != 3 {
		t.Fatalf("expected nemo to deal 3, got %d", got)
	}
	if got := removed.GetCount(h.Bandit.ID); got != 1 {
		t.Fatalf("expected 1 bandit creature removed, got %d", got)
	}
}
