package game

import (
	"github.com/magefree/creature-duel-go/internal/game/rules"
	"go.uber.org/zap"
)

// Engine resolves attacks, damage and table changes by threading
// continuations through creature hooks. Every operation takes a next
// callback and calls it exactly once after all effects, including view
// animations, have finished.
type Engine struct {
	logger *zap.Logger
	bus    *rules.EventBus
}

// NewEngine creates an engine. A nil bus disables event publishing.
func NewEngine(logger *zap.Logger, bus *rules.EventBus) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, bus: bus}
}

// NewContext builds the context hooks receive while current acts from slot
// position against opposite.
func (e *Engine) NewContext(current, opposite *Player, position int, updateView func()) *Context {
	return &Context{
		CurrentPlayer:  current,
		OppositePlayer: opposite,
		Position:       position,
		updateView:     updateView,
		engine:         e,
	}
}

// Logger returns the engine logger.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// Publish sends evt to the event bus, if any.
func (e *Engine) Publish(evt rules.Event) {
	e.bus.Publish(evt)
}

// Run drains seq and then calls next.
func (e *Engine) Run(seq *rules.Sequencer, next func()) {
	if err := seq.ContinueWith(next); err != nil {
		e.logger.Error("failed to start sequencer", zap.Error(err))
	}
}

// Attack resolves attacker's attack from ctx.Position: before-attack hook,
// then the attack override or the base attack, then a board redraw.
func (e *Engine) Attack(ctx *Context, attacker *Creature, next func()) {
	if attacker == nil {
		next()
		return
	}
	evt := rules.NewEvent(rules.EventAttackDeclared, "", attacker.ID, playerID(ctx.CurrentPlayer))
	evt.Position = ctx.Position
	e.Publish(evt)

	e.RunActionHook(ctx, attacker, HookBeforeAttack, func() {
		finish := func() {
			ctx.UpdateView()
			resolved := rules.NewEvent(rules.EventAttackResolved, "", attacker.ID, playerID(ctx.CurrentPlayer))
			resolved.Position = ctx.Position
			e.Publish(resolved)
			next()
		}
		if attack, ok := attacker.hooks.action(HookAttack); ok {
			e.logHook(attacker, HookAttack)
			attack(ctx, attacker, finish)
			return
		}
		e.baseAttack(ctx, attacker, finish)
	})
}

// baseAttack strikes the facing card with current power, or deals 1 to
// the opposing player when the facing slot is empty.
func (e *Engine) baseAttack(ctx *Context, attacker *Creature, next func()) {
	seq := rules.NewSequencer()
	seq.Push(rules.Task{
		Description: "show attack",
		Kind:        rules.TaskKindAnimation,
		Run: func(done func()) {
			attacker.View().ShowAttack(done)
		},
	})
	seq.Push(rules.Task{
		Description: "strike",
		Kind:        rules.TaskKindDamage,
		Run: func(done func()) {
			if target := ctx.OppositeCard(); target != nil {
				e.DealDamageToCreature(ctx, attacker.CurrentPower(), attacker, target, done)
				return
			}
			e.DealDamageToPlayer(ctx, 1, attacker, done)
		},
	})
	e.Run(seq, next)
}

// RunActionHook invokes self's action hook name, or calls next when none
// resolves.
func (e *Engine) RunActionHook(ctx *Context, self *Creature, name HookName, next func()) {
	fn, ok := self.hooks.action(name)
	if !ok {
		next()
		return
	}
	e.logHook(self, name)
	fn(ctx, self, next)
}

// modify passes value through self's damage hook name, or unchanged when
// none resolves.
func (e *Engine) modify(ctx *Context, self *Creature, name HookName, value int, other *Creature, next func(int)) {
	if self == nil {
		next(value)
		return
	}
	fn, ok := self.hooks.damage(name)
	if !ok {
		next(value)
		return
	}
	e.logHook(self, name)
	fn(ctx, self, value, other, next)
}

// DealDamageToCreature routes value from dealer's outgoing modifier into
// the target's TakeDamage. Non-positive values do nothing.
func (e *Engine) DealDamageToCreature(ctx *Context, value int, dealer, target *Creature, next func()) {
	if target == nil || value <= 0 {
		next()
		return
	}
	evt := rules.NewEventWithAmount(rules.EventDamageCreature, target.ID, sourceID(dealer), playerID(ctx.CurrentPlayer), value)
	evt.Position = ctx.Position
	e.Publish(evt)

	e.modify(ctx, dealer, HookModifyDealtDamageToCreature, value, target, func(v int) {
		e.TakeDamage(ctx, v, target, dealer, next)
	})
}

// TakeDamage applies value to target after its incoming modifier. A final
// value of zero or less leaves the target untouched.
func (e *Engine) TakeDamage(ctx *Context, value int, target, from *Creature, next func()) {
	if target == nil {
		next()
		return
	}
	e.modify(ctx, target, HookModifyTakenDamage, value, from, func(v int) {
		v = max(v, 0)
		if v == 0 {
			e.logger.Debug("damage prevented",
				zap.String("card_id", target.ID),
				zap.String("card_kind", string(target.Kind)),
			)
			e.Publish(rules.NewEventWithAmount(rules.EventDamagePrevented, target.ID, sourceID(from), playerID(ctx.CurrentPlayer), 0))
			next()
			return
		}
		target.View().SignalDamage(func() {
			target.SetCurrentPower(target.CurrentPower() - v)
			ctx.UpdateView()
			e.logger.Debug("creature damaged",
				zap.String("card_id", target.ID),
				zap.String("card_kind", string(target.Kind)),
				zap.Int("amount", v),
				zap.Int("current_power", target.CurrentPower()),
			)
			e.Publish(rules.NewEventWithAmount(rules.EventDamagedCreature, target.ID, sourceID(from), playerID(ctx.CurrentPlayer), v))
			next()
		})
	})
}

// DealDamageToPlayer deals value to the opposing player after dealer's
// outgoing modifier.
func (e *Engine) DealDamageToPlayer(ctx *Context, value int, dealer *Creature, next func()) {
	e.Publish(rules.NewEventWithAmount(rules.EventDamagePlayer, playerID(ctx.OppositePlayer), sourceID(dealer), playerID(ctx.CurrentPlayer), value))

	e.modify(ctx, dealer, HookModifyDealtDamageToPlayer, value, nil, func(v int) {
		v = max(v, 0)
		if ctx.OppositePlayer != nil {
			ctx.OppositePlayer.TakeDamage(v)
		}
		ctx.UpdateView()
		e.Publish(rules.NewEventWithAmount(rules.EventDamagedPlayer, playerID(ctx.OppositePlayer), sourceID(dealer), playerID(ctx.CurrentPlayer), v))
		next()
	})
}

// PlayCard places card on the current player's table and runs its
// after-coming-into-play hook with the context pointing at its slot.
func (e *Engine) PlayCard(ctx *Context, card *Creature, next func()) {
	if card == nil || ctx.CurrentPlayer == nil {
		next()
		return
	}
	slot := ctx.CurrentPlayer.Place(card)
	e.logger.Debug("card entered table",
		zap.String("card_id", card.ID),
		zap.String("card_kind", string(card.Kind)),
		zap.Int("position", slot),
	)
	evt := rules.NewEvent(rules.EventEnteredTable, card.ID, card.ID, ctx.CurrentPlayer.ID)
	evt.Position = slot
	evt.Data = string(card.Kind)
	e.Publish(evt)

	e.RunActionHook(ctx.At(slot), card, HookAfterComingIntoPlay, next)
}

// RemoveCard runs the before-removing hook of the card in owner's slot and
// then empties the slot. The slot stays in place. Removing from an empty
// slot does nothing.
func (e *Engine) RemoveCard(owner *Player, position int, next func()) {
	card := owner.CardAt(position)
	if card == nil {
		next()
		return
	}
	finish := func() {
		owner.Table[position] = nil
		e.logger.Debug("card left table",
			zap.String("card_id", card.ID),
			zap.String("card_kind", string(card.Kind)),
			zap.Int("position", position),
		)
		evt := rules.NewEvent(rules.EventLeftTable, card.ID, card.ID, owner.ID)
		evt.Position = position
		evt.Data = string(card.Kind)
		e.Publish(evt)
		next()
	}
	if fn, ok := card.hooks.removal(); ok {
		e.logHook(card, HookBeforeRemoving)
		fn(card, finish)
		return
	}
	finish()
}

// Steal moves the named hooks from donor to thief and reports each move.
func (e *Engine) Steal(ctx *Context, thief, donor *Creature, names ...HookName) []HookName {
	stolen := Steal(thief, donor, names...)
	for _, name := range stolen {
		e.logger.Debug("ability stolen",
			zap.String("thief_id", thief.ID),
			zap.String("donor_id", donor.ID),
			zap.String("hook", string(name)),
		)
		evt := rules.NewEvent(rules.EventAbilityStolen, donor.ID, thief.ID, playerID(ctx.CurrentPlayer))
		evt.Data = string(name)
		e.Publish(evt)
	}
	return stolen
}

// Link repoints card's inherited behavior at donor's and reports whether
// anything changed.
func (e *Engine) Link(ctx *Context, card, donor *Creature) bool {
	if !card.LinkTo(donor) {
		return false
	}
	e.logger.Debug("ability linked",
		zap.String("card_id", card.ID),
		zap.String("donor_id", donor.ID),
		zap.String("prototype", card.Prototype().Name()),
	)
	evt := rules.NewEvent(rules.EventAbilityLinked, donor.ID, card.ID, playerID(ctx.CurrentPlayer))
	evt.Data = card.Prototype().Name()
	e.Publish(evt)
	return true
}

func (e *Engine) logHook(c *Creature, name HookName) {
	e.logger.Debug("running hook",
		zap.String("card_id", c.ID),
		zap.String("card_kind", string(c.Kind)),
		zap.String("hook", string(name)),
	)
}

func playerID(p *Player) string {
	if p == nil {
		return ""
	}
	return p.ID
}

func sourceID(c *Creature) string {
	if c == nil {
		return ""
	}
	return c.ID
}
