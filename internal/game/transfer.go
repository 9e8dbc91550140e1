package game

// Steal moves the named hooks from donor to thief. A hook is taken from
// the donor's own set when installed there, otherwise from the set
// directly above it. Taking from a shared kind set strips the hook from
// every creature of that kind. Hooks inherited from further up are never
// taken. Checking the own set first lets a thief take hooks a previous
// thief already took. Steal returns the names that moved, in the order
// requested.
func Steal(thief, donor *Creature, names ...HookName) []HookName {
	if thief == nil || donor == nil || thief == donor {
		return nil
	}
	var stolen []HookName
	for _, name := range names {
		h, ok := donor.hooks.take(name)
		if !ok && donor.hooks.parent != nil {
			h, ok = donor.hooks.parent.take(name)
		}
		if !ok {
			continue
		}
		thief.hooks.put(name, h)
		stolen = append(stolen, name)
	}
	return stolen
}

// LinkTo repoints the creature's inherited behavior at donor's shared set,
// after which the creature resolves any hook it does not own itself the way
// donor does. It reports false when nothing changed.
func (c *Creature) LinkTo(donor *Creature) bool {
	if donor == nil || donor == c {
		return false
	}
	target := donor.Prototype()
	if target == nil || target == c.hooks.parent {
		return false
	}
	c.hooks.parent = target
	return true
}
