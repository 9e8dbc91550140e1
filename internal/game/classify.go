package game

import "github.com/magefree/creature-duel-go/internal/game/locale"

// IsDuck reports whether the creature both quacks and swims.
func IsDuck(c *Creature) bool {
	return c != nil && c.hooks.HasCapability(CapabilityQuacks) && c.hooks.HasCapability(CapabilitySwims)
}

// IsDog reports whether the creature belongs to the dog lineage.
func IsDog(c *Creature) bool {
	return c != nil && c.hooks.HasCapability(CapabilityDogLineage)
}

// Classify returns the classification tag key for c. It is evaluated on
// every call so capability changes show up immediately.
func Classify(c *Creature) string {
	duck, dog := IsDuck(c), IsDog(c)
	switch {
	case duck && dog:
		return locale.TagDuckDog
	case duck:
		return locale.TagDuck
	case dog:
		return locale.TagDog
	default:
		return locale.TagCreature
	}
}
