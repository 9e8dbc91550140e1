package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/magefree/creature-duel-go/internal/game/counters"
	"github.com/magefree/creature-duel-go/internal/game/locale"
	"go.uber.org/zap"
)

// ErrUnknownKind is returned for creature kinds the catalog cannot build.
var ErrUnknownKind = errors.New("unknown creature kind")

// Kind names a creature variant.
type Kind string

const (
	KindCreature   Kind = "creature"
	KindDuck       Kind = "duck"
	KindDog        Kind = "dog"
	KindGatling    Kind = "gatling"
	KindLad        Kind = "lad"
	KindRogue      Kind = "rogue"
	KindTrasher    Kind = "trasher"
	KindBrewer     Kind = "brewer"
	KindPseudoDuck Kind = "pseudo_duck"
	KindNemo       Kind = "nemo"
)

// ParseKind converts a config or CLI name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindSpecs[k]; !ok || k == KindCreature {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Kinds returns every playable kind, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindSpecs))
	for k := range kindSpecs {
		if k != KindCreature {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

type kindSpec struct {
	name        string
	description string
	strength    int
}

var kindSpecs = map[Kind]kindSpec{
	KindCreature:   {},
	KindDuck:       {name: locale.NameDuck, description: locale.DescDuck, strength: 2},
	KindDog:        {name: locale.NameDog, description: locale.DescDog, strength: 3},
	KindGatling:    {name: locale.NameGatling, description: locale.DescGatling, strength: 6},
	KindLad:        {name: locale.NameLad, description: locale.DescLad, strength: 2},
	KindRogue:      {name: locale.NameRogue, description: locale.DescRogue, strength: 2},
	KindTrasher:    {name: locale.NameTrasher, description: locale.DescTrasher, strength: 5},
	KindBrewer:     {name: locale.NameBrewer, description: locale.DescBrewer, strength: 2},
	KindPseudoDuck: {name: locale.NamePseudoDuck, description: locale.DescPseudoDuck, strength: 3},
	KindNemo:       {name: locale.NameNemo, description: locale.DescNemo, strength: 4},
}

// Catalog builds creatures and owns the hook sets shared by every creature
// of a kind. Changes to a kind set, such as a steal, affect every creature
// built by the same catalog and no other.
type Catalog struct {
	logger     *zap.Logger
	translator *locale.Translator
	counters   *counters.CounterOperations
	kinds      map[Kind]*HookSet
}

// NewCatalog creates a catalog with fresh kind sets. Nil arguments fall
// back to a no-op logger, English text and a private counter registry.
func NewCatalog(ops *counters.CounterOperations, translator *locale.Translator, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if translator == nil {
		translator = locale.English()
	}
	if ops == nil {
		ops = counters.NewCounterOperations(nil, nil, logger)
	}
	c := &Catalog{
		logger:     logger,
		translator: translator,
		counters:   ops,
		kinds:      make(map[Kind]*HookSet, len(kindSpecs)),
	}
	c.installKinds()
	return c
}

// Translator returns the catalog's translator.
func (c *Catalog) Translator() *locale.Translator {
	return c.translator
}

// Counters returns the counter operations kind hooks update.
func (c *Catalog) Counters() *counters.CounterOperations {
	return c.counters
}

// KindSet returns the shared hook set for k, or nil.
func (c *Catalog) KindSet(k Kind) *HookSet {
	return c.kinds[k]
}

// New builds a creature of kind k.
func (c *Catalog) New(k Kind) (*Creature, error) {
	spec, ok := kindSpecs[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	creature := newCreature(uuid.NewString(), k, spec.name, spec.description, spec.strength, c.kinds[k], c.translator)
	c.logger.Debug("creature created",
		zap.String("card_id", creature.ID),
		zap.String("card_kind", string(k)),
	)
	return creature, nil
}

func (c *Catalog) mustNew(k Kind) *Creature {
	creature, err := c.New(k)
	if err != nil {
		panic(err)
	}
	return creature
}

func (c *Catalog) NewDuck() *Creature       { return c.mustNew(KindDuck) }
func (c *Catalog) NewDog() *Creature        { return c.mustNew(KindDog) }
func (c *Catalog) NewGatling() *Creature    { return c.mustNew(KindGatling) }
func (c *Catalog) NewLad() *Creature        { return c.mustNew(KindLad) }
func (c *Catalog) NewRogue() *Creature      { return c.mustNew(KindRogue) }
func (c *Catalog) NewTrasher() *Creature    { return c.mustNew(KindTrasher) }
func (c *Catalog) NewBrewer() *Creature     { return c.mustNew(KindBrewer) }
func (c *Catalog) NewPseudoDuck() *Creature { return c.mustNew(KindPseudoDuck) }
func (c *Catalog) NewNemo() *Creature       { return c.mustNew(KindNemo) }

// NewCustom builds a creature outside the fixed kinds, for tests and
// scripted scenarios. Its lookups fall through to the base creature set.
func (c *Catalog) NewCustom(name string, strength int) *Creature {
	return newCreature(uuid.NewString(), KindCreature, name, "", strength, c.kinds[KindCreature], c.translator)
}

// RecountDamage is the Lad bonus for the current number of Lads in play.
func (c *Catalog) RecountDamage() int {
	return counters.Triangular(c.counters.Registry().Get(counters.CounterTypeLadsInPlay))
}
