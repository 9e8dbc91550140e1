package match

import (
	"slices"

	"github.com/magefree/creature-duel-go/internal/game"
)

// CardSnapshot captures a creature for presentation.
type CardSnapshot struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Position     int      `json:"position"`
	CurrentPower int      `json:"current_power"`
	MaxPower     int      `json:"max_power"`
	Descriptions []string `json:"descriptions"`
}

// PlayerSnapshot captures one side of the board. Empty slots are nil.
type PlayerSnapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	HeroPower int             `json:"hero_power"`
	DeckCount int             `json:"deck_count"`
	Table     []*CardSnapshot `json:"table"`
}

// Snapshot captures a consistent view of the match.
type Snapshot struct {
	MatchID string           `json:"match_id"`
	Turn    int              `json:"turn"`
	State   string           `json:"state"`
	Players []PlayerSnapshot `json:"players"`
}

// Snapshot returns the current board. It must be called from the match's
// own flow, such as a board view callback.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	snap := Snapshot{
		MatchID: m.id,
		Turn:    m.turn,
		State:   m.state.String(),
	}
	m.mu.Unlock()

	for i, p := range m.players {
		ps := PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			HeroPower: p.HeroPower(),
			DeckCount: len(m.decks[i]),
			Table:     make([]*CardSnapshot, len(p.Table)),
		}
		for pos, card := range p.Cards() {
			ps.Table[pos] = snapshotCard(pos, card)
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}

func snapshotCard(pos int, c *game.Creature) *CardSnapshot {
	return &CardSnapshot{
		ID:           c.ID,
		Kind:         string(c.Kind),
		Name:         c.Name(),
		Position:     pos,
		CurrentPower: c.CurrentPower(),
		MaxPower:     c.MaxPower(),
		Descriptions: slices.Collect(c.Descriptions()),
	}
}
