package game

import (
	"iter"

	"github.com/magefree/creature-duel-go/internal/game/locale"
)

// Card is anything that can sit in a table slot.
type Card struct {
	ID          string
	Kind        Kind
	name        string
	description string
	view        View
	translator  *locale.Translator
}

// Name returns the translated display name.
func (c *Card) Name() string {
	return c.translator.Text(c.name)
}

// NameKey returns the untranslated name key.
func (c *Card) NameKey() string {
	return c.name
}

// SetDescription replaces the card's description key.
func (c *Card) SetDescription(key string) {
	c.description = key
}

// View returns the card's view, never nil.
func (c *Card) View() View {
	if c.view == nil {
		return NopView{}
	}
	return c.view
}

// SetView attaches a presentation to the card.
func (c *Card) SetView(v View) {
	c.view = v
}

// Descriptions yields the card's display lines. Empty descriptions are
// yielded as empty strings. The sequence can be ranged over repeatedly.
func (c *Card) Descriptions() iter.Seq[string] {
	return func(yield func(string) bool) {
		yield(c.translator.Text(c.description))
	}
}

// Creature is a card with power that can attack and be damaged.
type Creature struct {
	Card

	strength     int
	maxPower     int
	currentPower int
	hooks        *HookSet
}

func newCreature(id string, kind Kind, name, description string, strength int, prototype *HookSet, tr *locale.Translator) *Creature {
	return &Creature{
		Card: Card{
			ID:          id,
			Kind:        kind,
			name:        name,
			description: description,
			translator:  tr,
		},
		strength:     strength,
		maxPower:     strength,
		currentPower: strength,
		hooks:        NewHookSet(id, prototype),
	}
}

// Strength returns the printed power.
func (c *Creature) Strength() int {
	return c.strength
}

// MaxPower returns the current power cap.
func (c *Creature) MaxPower() int {
	return c.maxPower
}

// CurrentPower returns the remaining power.
func (c *Creature) CurrentPower() int {
	return c.currentPower
}

// SetCurrentPower stores v capped at MaxPower. Values at or below zero
// are kept; the turn loop treats them as defeat.
func (c *Creature) SetCurrentPower(v int) {
	c.currentPower = min(v, c.maxPower)
}

// RaiseMaxPower increases the power cap by delta. Negative deltas are ignored.
func (c *Creature) RaiseMaxPower(delta int) {
	if delta > 0 {
		c.maxPower += delta
	}
}

// IsDefeated reports whether the creature has no power left.
func (c *Creature) IsDefeated() bool {
	return c.currentPower <= 0
}

// Hooks returns the creature's own hook set.
func (c *Creature) Hooks() *HookSet {
	return c.hooks
}

// Prototype returns the shared set the creature's lookups fall through to.
func (c *Creature) Prototype() *HookSet {
	return c.hooks.parent
}

// DescriptionKey returns the description key currently displayed, asking
// the creature's describer when one resolves.
func (c *Creature) DescriptionKey() string {
	if describe := c.hooks.describer(); describe != nil {
		return describe(c)
	}
	return c.description
}

// Descriptions yields the classification tag followed by the card's own
// description lines.
func (c *Creature) Descriptions() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(c.translator.Text(Classify(c))) {
			return
		}
		base := c.Card
		base.description = c.DescriptionKey()
		for line := range base.Descriptions() {
			if !yield(line) {
				return
			}
		}
	}
}
