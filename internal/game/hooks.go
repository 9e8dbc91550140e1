package game

import "sort"

// HookName identifies an extension point a creature may implement.
type HookName string

const (
	// HookAttack replaces the base attack.
	HookAttack HookName = "attack"
	// HookBeforeAttack runs before the attacker's attack resolves.
	HookBeforeAttack HookName = "before_attack"
	// HookAfterComingIntoPlay runs right after the card is placed on the table.
	HookAfterComingIntoPlay HookName = "after_coming_into_play"
	// HookBeforeRemoving runs right before the card leaves the table.
	HookBeforeRemoving HookName = "before_removing"
	// HookModifyTakenDamage adjusts damage the card is about to receive.
	HookModifyTakenDamage HookName = "modify_taken_damage"
	// HookModifyDealtDamageToCreature adjusts damage the card deals to a creature.
	HookModifyDealtDamageToCreature HookName = "modify_dealt_damage_to_creature"
	// HookModifyDealtDamageToPlayer adjusts damage the card deals to a player.
	HookModifyDealtDamageToPlayer HookName = "modify_dealt_damage_to_player"
)

// TransferableHooks are the hooks a steal may move between cards.
var TransferableHooks = []HookName{
	HookModifyTakenDamage,
	HookModifyDealtDamageToCreature,
	HookModifyDealtDamageToPlayer,
}

func (n HookName) isAction() bool {
	return n == HookAttack || n == HookBeforeAttack || n == HookAfterComingIntoPlay
}

func (n HookName) isDamage() bool {
	return n == HookModifyTakenDamage || n == HookModifyDealtDamageToCreature || n == HookModifyDealtDamageToPlayer
}

// ActionHook runs when self acts. It must call next exactly once.
type ActionHook func(ctx *Context, self *Creature, next func())

// RemovalHook runs before self leaves the table. It must call next exactly once.
type RemovalHook func(self *Creature, next func())

// DamageHook transforms a proposed damage value and passes the result to
// next exactly once. other is the opposing creature, nil when a player is
// the target.
type DamageHook func(ctx *Context, self *Creature, value int, other *Creature, next func(int))

// Describer returns the description key a creature displays.
type Describer func(self *Creature) string

// Capability is a structural classification tag.
type Capability string

const (
	CapabilityQuacks Capability = "quacks"
	CapabilitySwims  Capability = "swims"
	// CapabilityDogLineage marks the dog lineage.
	CapabilityDogLineage Capability = "dog_lineage"
)

type hook struct {
	action  ActionHook
	removal RemovalHook
	damage  DamageHook
}

// HookSet holds installed hooks, capability tags and an optional describer.
// Lookups that miss fall through to the parent set, so a creature's own set
// whose parent is its kind's shared set sees both. Kind sets are shared by
// every instance of the kind; mutating one affects all of them.
type HookSet struct {
	name         string
	parent       *HookSet
	hooks        map[HookName]hook
	capabilities map[Capability]struct{}
	describe     Describer
}

// NewHookSet creates an empty hook set delegating to parent.
func NewHookSet(name string, parent *HookSet) *HookSet {
	return &HookSet{
		name:         name,
		parent:       parent,
		hooks:        make(map[HookName]hook),
		capabilities: make(map[Capability]struct{}),
	}
}

// Name returns the label used in logs.
func (s *HookSet) Name() string {
	return s.name
}

// Parent returns the set lookups fall through to.
func (s *HookSet) Parent() *HookSet {
	return s.parent
}

// OnAction installs an action hook. Names that are not action hooks are ignored.
func (s *HookSet) OnAction(name HookName, fn ActionHook) *HookSet {
	if fn != nil && name.isAction() {
		s.hooks[name] = hook{action: fn}
	}
	return s
}

// OnRemoval installs the before-removing hook.
func (s *HookSet) OnRemoval(fn RemovalHook) *HookSet {
	if fn != nil {
		s.hooks[HookBeforeRemoving] = hook{removal: fn}
	}
	return s
}

// OnDamage installs a damage modifier. Names that are not modifiers are ignored.
func (s *HookSet) OnDamage(name HookName, fn DamageHook) *HookSet {
	if fn != nil && name.isDamage() {
		s.hooks[name] = hook{damage: fn}
	}
	return s
}

// WithDescriber installs a describer.
func (s *HookSet) WithDescriber(fn Describer) *HookSet {
	s.describe = fn
	return s
}

// Grant adds capability tags to this set.
func (s *HookSet) Grant(caps ...Capability) *HookSet {
	for _, c := range caps {
		s.capabilities[c] = struct{}{}
	}
	return s
}

// Revoke removes a capability tag from this set only.
func (s *HookSet) Revoke(c Capability) {
	delete(s.capabilities, c)
}

// HasOwn reports whether this set itself, ignoring parents, installs name.
func (s *HookSet) HasOwn(name HookName) bool {
	_, ok := s.hooks[name]
	return ok
}

// Has reports whether name resolves anywhere along the chain.
func (s *HookSet) Has(name HookName) bool {
	_, ok := s.lookup(name)
	return ok
}

// Remove deletes an own hook and reports whether it was present.
func (s *HookSet) Remove(name HookName) bool {
	_, ok := s.take(name)
	return ok
}

// OwnHooks returns the names installed directly on this set, sorted.
func (s *HookSet) OwnHooks() []HookName {
	names := make([]HookName, 0, len(s.hooks))
	for name := range s.hooks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// HasCapability reports whether c resolves anywhere along the chain.
func (s *HookSet) HasCapability(c Capability) bool {
	for set := s; set != nil; set = set.parent {
		if _, ok := set.capabilities[c]; ok {
			return true
		}
	}
	return false
}

func (s *HookSet) lookup(name HookName) (hook, bool) {
	for set := s; set != nil; set = set.parent {
		if h, ok := set.hooks[name]; ok {
			return h, true
		}
	}
	return hook{}, false
}

func (s *HookSet) action(name HookName) (ActionHook, bool) {
	h, ok := s.lookup(name)
	if !ok || h.action == nil {
		return nil, false
	}
	return h.action, true
}

func (s *HookSet) removal() (RemovalHook, bool) {
	h, ok := s.lookup(HookBeforeRemoving)
	if !ok || h.removal == nil {
		return nil, false
	}
	return h.removal, true
}

func (s *HookSet) damage(name HookName) (DamageHook, bool) {
	h, ok := s.lookup(name)
	if !ok || h.damage == nil {
		return nil, false
	}
	return h.damage, true
}

func (s *HookSet) describer() Describer {
	for set := s; set != nil; set = set.parent {
		if set.describe != nil {
			return set.describe
		}
	}
	return nil
}

func (s *HookSet) take(name HookName) (hook, bool) {
	h, ok := s.hooks[name]
	if ok {
		delete(s.hooks, name)
	}
	return h, ok
}

func (s *HookSet) put(name HookName, h hook) {
	s.hooks[name] = h
}
