package spectator

import (
	"time"

	"github.com/magefree/creature-duel-go/internal/game"
)

// View presents one card to spectators. Each animation is broadcast and
// completes after delay on a timer goroutine; a zero delay completes
// immediately.
type View struct {
	out     Broadcaster
	matchID string
	card    *game.Creature
	delay   time.Duration
}

var _ game.View = (*View)(nil)

// NewView creates a view for card. out may be nil.
func NewView(out Broadcaster, matchID string, card *game.Creature, delay time.Duration) *View {
	return &View{out: out, matchID: matchID, card: card, delay: delay}
}

// Attach gives every card a spectator view.
func Attach(out Broadcaster, matchID string, delay time.Duration, cards ...*game.Creature) {
	for _, card := range cards {
		card.SetView(NewView(out, matchID, card, delay))
	}
}

func (v *View) ShowAttack(onDone func()) {
	v.send(MessageShowAttack, nil)
	v.after(onDone)
}

func (v *View) SignalAbility(onDone func()) {
	v.send(MessageSignalAbility, nil)
	v.after(onDone)
}

func (v *View) SignalDamage(onDone func()) {
	v.send(MessageSignalDamage, nil)
	v.after(onDone)
}

func (v *View) SignalHeal() {
	v.send(MessageSignalHeal, v.card.CurrentPower())
}

func (v *View) Update() {
	v.send(MessageUpdate, map[string]int{
		"current_power": v.card.CurrentPower(),
		"max_power":     v.card.MaxPower(),
	})
}

func (v *View) send(kind string, data any) {
	if v.out == nil {
		return
	}
	v.out.Broadcast(Message{Type: kind, MatchID: v.matchID, CardID: v.card.ID, Data: data})
}

func (v *View) after(onDone func()) {
	if v.delay <= 0 {
		onDone()
		return
	}
	time.AfterFunc(v.delay, onDone)
}
