package game

// View is the visual presentation of a single card. Methods taking onDone
// may complete asynchronously, from any goroutine, but must call onDone
// exactly once.
type View interface {
	// ShowAttack plays the attack animation.
	ShowAttack(onDone func())
	// SignalAbility highlights an ability being used.
	SignalAbility(onDone func())
	// SignalDamage plays the hit animation before damage is applied.
	SignalDamage(onDone func())
	// SignalHeal flashes a power gain.
	SignalHeal()
	// Update redraws the card from its current state.
	Update()
}

// NopView completes every animation immediately.
type NopView struct{}

func (NopView) ShowAttack(onDone func())    { onDone() }
func (NopView) SignalAbility(onDone func()) { onDone() }
func (NopView) SignalDamage(onDone func())  { onDone() }
func (NopView) SignalHeal()                 {}
func (NopView) Update()                     {}
