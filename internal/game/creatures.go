package game

import (
	"github.com/magefree/creature-duel-go/internal/game/counters"
	"github.com/magefree/creature-duel-go/internal/game/locale"
	"github.com/magefree/creature-duel-go/internal/game/rules"
	"go.uber.org/zap"
)

const (
	gatlingDamage = 2
	brewerMaxGain = 1
	brewerHeal    = 2
)

func (c *Catalog) installKinds() {
	base := NewHookSet(string(KindCreature), nil)
	duck := NewHookSet(string(KindDuck), base).Grant(CapabilityQuacks, CapabilitySwims)
	dog := NewHookSet(string(KindDog), base).Grant(CapabilityDogLineage)

	c.kinds[KindCreature] = base
	c.kinds[KindDuck] = duck
	c.kinds[KindDog] = dog
	c.kinds[KindGatling] = NewHookSet(string(KindGatling), base).
		OnAction(HookAttack, gatlingAttack)
	c.kinds[KindLad] = c.ladSet(dog)
	c.kinds[KindRogue] = NewHookSet(string(KindRogue), base).
		OnAction(HookBeforeAttack, rogueBeforeAttack)
	c.kinds[KindTrasher] = NewHookSet(string(KindTrasher), dog).
		OnDamage(HookModifyTakenDamage, trasherModifyTaken)
	c.kinds[KindBrewer] = NewHookSet(string(KindBrewer), duck).
		OnAction(HookBeforeAttack, brewerBeforeAttack)
	c.kinds[KindPseudoDuck] = NewHookSet(string(KindPseudoDuck), dog).
		Grant(CapabilityQuacks, CapabilitySwims)
	c.kinds[KindNemo] = NewHookSet(string(KindNemo), base).
		OnAction(HookBeforeAttack, nemoBeforeAttack)
}

// gatlingAttack shows one attack and then hits every occupied opposing
// slot in turn.
func gatlingAttack(ctx *Context, self *Creature, next func()) {
	seq := rules.NewSequencer()
	seq.Push(rules.Task{
		Description: "show attack",
		Kind:        rules.TaskKindAnimation,
		Run: func(done func()) {
			self.View().ShowAttack(done)
		},
	})
	for pos, target := range ctx.OppositePlayer.Cards() {
		seq.Push(rules.Task{
			Description: "gatling burst",
			Kind:        rules.TaskKindDamage,
			Run: func(done func()) {
				ctx.Engine().DealDamageToCreature(ctx.At(pos), gatlingDamage, self, target, done)
			},
		})
	}
	ctx.Engine().Run(seq, next)
}

// ladSet wires the Lad counter. Every Lad in play reduces damage taken by
// and sets damage dealt to the triangular number of Lads in play.
func (c *Catalog) ladSet(dog *HookSet) *HookSet {
	lad := NewHookSet(string(KindLad), dog)
	lad.OnAction(HookAfterComingIntoPlay, func(ctx *Context, self *Creature, next func()) {
		n := c.counters.Increment(counters.CounterTypeLadsInPlay, self.ID)
		c.logger.Debug("lad entered", zap.String("card_id", self.ID), zap.Int("lads_in_play", n))
		next()
	})
	lad.OnRemoval(func(self *Creature, next func()) {
		n := c.counters.Decrement(counters.CounterTypeLadsInPlay, self.ID)
		c.logger.Debug("lad left", zap.String("card_id", self.ID), zap.Int("lads_in_play", n))
		next()
	})
	lad.OnDamage(HookModifyTakenDamage, func(ctx *Context, self *Creature, value int, other *Creature, next func(int)) {
		next(max(value-c.RecountDamage(), 0))
	})
	lad.OnDamage(HookModifyDealtDamageToCreature, func(ctx *Context, self *Creature, value int, other *Creature, next func(int)) {
		next(c.RecountDamage())
	})
	lad.WithDescriber(func(self *Creature) string {
		if !lad.HasOwn(HookModifyTakenDamage) && !lad.HasOwn(HookModifyDealtDamageToCreature) {
			return ""
		}
		return locale.DescLad
	})
	return lad
}

// rogueBeforeAttack takes the facing card's transferable hooks and, when
// anything moved, its description.
func rogueBeforeAttack(ctx *Context, self *Creature, next func()) {
	target := ctx.OppositeCard()
	if target != nil {
		description := target.DescriptionKey()
		if stolen := ctx.Engine().Steal(ctx, self, target, TransferableHooks...); len(stolen) > 0 {
			self.SetDescription(description)
		}
		ctx.UpdateView()
	}
	next()
}

func trasherModifyTaken(ctx *Context, self *Creature, value int, other *Creature, next func(int)) {
	self.View().SignalAbility(func() {
		next(value - 1)
	})
}

// brewerBeforeAttack empowers every duck on both tables.
func brewerBeforeAttack(ctx *Context, self *Creature, next func()) {
	for _, player := range []*Player{ctx.CurrentPlayer, ctx.OppositePlayer} {
		for pos, card := range player.Cards() {
			if !IsDuck(card) {
				continue
			}
			card.RaiseMaxPower(brewerMaxGain)
			card.SetCurrentPower(card.CurrentPower() + brewerHeal)
			card.View().SignalHeal()
			card.View().Update()

			evt := rules.NewEventWithAmount(rules.EventCreatureHealed, card.ID, self.ID, playerID(ctx.CurrentPlayer), brewerHeal)
			evt.Position = pos
			ctx.Engine().Publish(evt)
		}
	}
	next()
}

// nemoBeforeAttack adopts the facing card's behavior and then runs the
// before-attack hook it now resolves to.
func nemoBeforeAttack(ctx *Context, self *Creature, next func()) {
	target := ctx.OppositeCard()
	if target == nil || !ctx.Engine().Link(ctx, self, target) {
		next()
		return
	}
	ctx.UpdateView()
	ctx.Engine().RunActionHook(ctx, self, HookBeforeAttack, next)
}
