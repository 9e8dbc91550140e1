package game

import (
	"iter"

	"github.com/google/uuid"
)

// Player is one side of the duel.
type Player struct {
	ID    string
	Name  string
	Table []*Creature

	heroPower int
}

// NewPlayer creates a player with an empty table.
func NewPlayer(name string, heroPower int) *Player {
	return &Player{
		ID:        uuid.NewString(),
		Name:      name,
		heroPower: heroPower,
	}
}

// HeroPower returns the player's remaining health.
func (p *Player) HeroPower() int {
	return p.heroPower
}

// TakeDamage lowers hero power, never below zero.
func (p *Player) TakeDamage(value int) {
	if value <= 0 {
		return
	}
	p.heroPower = max(p.heroPower-value, 0)
}

// IsDefeated reports whether the player has no hero power left.
func (p *Player) IsDefeated() bool {
	return p.heroPower <= 0
}

// CardAt returns the card in slot i, or nil for an empty or missing slot.
func (p *Player) CardAt(i int) *Creature {
	if p == nil || i < 0 || i >= len(p.Table) {
		return nil
	}
	return p.Table[i]
}

// Place puts card into the first empty slot, appending a new slot when none
// is free, and returns the slot index.
func (p *Player) Place(card *Creature) int {
	for i, slot := range p.Table {
		if slot == nil {
			p.Table[i] = card
			return i
		}
	}
	p.Table = append(p.Table, card)
	return len(p.Table) - 1
}

// Cards yields occupied slots in table order.
func (p *Player) Cards() iter.Seq2[int, *Creature] {
	return func(yield func(int, *Creature) bool) {
		if p == nil {
			return
		}
		for i, card := range p.Table {
			if card == nil {
				continue
			}
			if !yield(i, card) {
				return
			}
		}
	}
}

// Context is the game state a hook sees while it runs.
type Context struct {
	CurrentPlayer  *Player
	OppositePlayer *Player
	Position       int

	updateView func()
	engine     *Engine
}

// Engine returns the engine resolving this context.
func (c *Context) Engine() *Engine {
	return c.engine
}

// UpdateView asks the presentation to redraw the whole board.
func (c *Context) UpdateView() {
	if c.updateView != nil {
		c.updateView()
	}
}

// OppositeCard returns the card facing Position, or nil.
func (c *Context) OppositeCard() *Creature {
	return c.OppositePlayer.CardAt(c.Position)
}

// At returns a copy of the context pointing at another slot.
func (c *Context) At(position int) *Context {
	cp := *c
	cp.Position = position
	return &cp
}
