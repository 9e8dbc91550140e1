package game

import (
	"slices"
	"testing"

	"github.com/magefree/creature-duel-go/internal/game/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSetCurrentPowerClamps(t *testing.T) {
	c := NewCatalog(nil, nil, nil).NewDog()
	require.Equal(t, 3, c.MaxPower())

	c.SetCurrentPower(10)
	assert.Equal(t, 3, c.CurrentPower())

	c.SetCurrentPower(-4)
	assert.Equal(t, -4, c.CurrentPower())
	assert.True(t, c.IsDefeated())

	c.RaiseMaxPower(2)
	c.RaiseMaxPower(-7)
	c.SetCurrentPower(4)
	assert.Equal(t, 5, c.MaxPower())
	assert.Equal(t, 4, c.CurrentPower())
}

func TestNewCreatureStartsAtFullPower(t *testing.T) {
	catalog := NewCatalog(nil, nil, nil)
	for kind, want := range map[Kind]int{
		KindDuck: 2, KindDog: 3, KindGatling: 6, KindLad: 2, KindRogue: 2,
		KindTrasher: 5, KindBrewer: 2, KindPseudoDuck: 3, KindNemo: 4,
	} {
		c, err := catalog.New(kind)
		require.NoError(t, err)
		assert.Equal(t, want, c.Strength(), kind)
		assert.Equal(t, want, c.MaxPower(), kind)
		assert.Equal(t, want, c.CurrentPower(), kind)
		assert.NotEmpty(t, c.ID)
	}
}

func TestDescriptionsAreRestartable(t *testing.T) {
	duck := NewCatalog(nil, nil, nil).NewDuck()

	first := slices.Collect(duck.Descriptions())
	second := slices.Collect(duck.Descriptions())
	assert.Equal(t, []string{"Duck", "just a duck"}, first)
	assert.Equal(t, first, second)

	var taken []string
	for line := range duck.Descriptions() {
		taken = append(taken, line)
		break
	}
	assert.Equal(t, []string{"Duck"}, taken)
}

func TestDescriptionsTranslated(t *testing.T) {
	tr, err := locale.New("ru")
	require.NoError(t, err)
	catalog := NewCatalog(nil, tr, zaptest.NewLogger(t))

	lad := catalog.NewLad()
	assert.Equal(t, "Браток", lad.Name())
	assert.Equal(t, []string{"Собака", "Чем их больше, тем они сильнее"}, slices.Collect(lad.Descriptions()))

	assert.Equal(t, []string{"Утка-Собака", "Амальгама"}, slices.Collect(catalog.NewPseudoDuck().Descriptions()))
}

func TestCustomCreatureHasEmptyDescription(t *testing.T) {
	c := NewCatalog(nil, nil, nil).NewCustom("Dummy", 4)
	assert.Equal(t, []string{"Creature", ""}, slices.Collect(c.Descriptions()))
	assert.Equal(t, "Dummy", c.Name())
}

func TestClassification(t *testing.T) {
	catalog := NewCatalog(nil, nil, nil)
	cases := []struct {
		card *Creature
		want string
	}{
		{catalog.NewDuck(), locale.TagDuck},
		{catalog.NewBrewer(), locale.TagDuck},
		{catalog.NewDog(), locale.TagDog},
		{catalog.NewLad(), locale.TagDog},
		{catalog.NewTrasher(), locale.TagDog},
		{catalog.NewPseudoDuck(), locale.TagDuckDog},
		{catalog.NewGatling(), locale.TagCreature},
		{catalog.NewRogue(), locale.TagCreature},
		{catalog.NewNemo(), locale.TagCreature},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.card), tc.card.Kind)
	}
	assert.Equal(t, locale.TagCreature, Classify(nil))
}

func TestClassificationFollowsCapabilityChanges(t *testing.T) {
	catalog := NewCatalog(nil, nil, nil)
	duck := catalog.NewDuck()
	brewer := catalog.NewBrewer()

	catalog.KindSet(KindDuck).Revoke(CapabilityQuacks)
	assert.Equal(t, locale.TagCreature, Classify(duck))
	assert.Equal(t, locale.TagCreature, Classify(brewer), "brewer inherits from duck")

	catalog.KindSet(KindDuck).Grant(CapabilityQuacks)
	assert.Equal(t, locale.TagDuck, Classify(duck))

	duck.Hooks().Grant(CapabilityDogLineage)
	assert.Equal(t, locale.TagDuckDog, Classify(duck))
	assert.Equal(t, locale.TagDuck, Classify(catalog.NewDuck()), "instance grants stay on the instance")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Pseudo_Duck ")
	require.NoError(t, err)
	assert.Equal(t, KindPseudoDuck, k)

	_, err = ParseKind("dragon")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("creature")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewCatalog(nil, nil, nil).New("dragon")
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.Len(t, Kinds(), 9)
	assert.NotContains(t, Kinds(), KindCreature)
}
