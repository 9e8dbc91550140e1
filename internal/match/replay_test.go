package match

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/magefree/creature-duel-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("match-1")
	for i := 1; i <= 3; i++ {
		replay.RecordState(Snapshot{MatchID: "match-1", Turn: i})
	}
	assert.Equal(t, 3, replay.Size())

	s, ok := replay.Next()
	require.True(t, ok)
	assert.Equal(t, 1, s.Turn)
	replay.Next()
	s, _ = replay.Next()
	assert.Equal(t, 3, s.Turn)
	_, ok = replay.Next()
	assert.False(t, ok)

	s, ok = replay.Previous()
	require.True(t, ok)
	assert.Equal(t, 3, s.Turn)

	replay.Start()
	_, ok = replay.Previous()
	assert.False(t, ok)

	assert.Equal(t, 1, replay.TurnStart(2))
	assert.Equal(t, -1, replay.TurnStart(9))
}

func TestRecordedMatchRoundTrip(t *testing.T) {
	h := newHarness(t, 10, 2)
	dir := t.TempDir()
	recorder := NewReplayRecorder(zaptest.NewLogger(t), dir)

	m := New(h.Engine, h.Sheriff, h.Bandit,
		[]*game.Creature{h.Catalog.NewDuck()},
		[]*game.Creature{h.Catalog.NewLad()},
		nil, WithMaxTurns(20))
	WithBoardView(recorder.BoardView(m.ID()))(m)
	play(t, m)

	live, ok := recorder.GetReplay(m.ID())
	require.True(t, ok)
	require.Positive(t, live.Size())
	recorded := live.Size()

	require.NoError(t, recorder.SaveReplay(m.ID()))
	_, ok = recorder.GetReplay(m.ID())
	assert.False(t, ok)

	loaded, err := recorder.LoadReplay(m.ID())
	require.NoError(t, err)
	assert.Equal(t, recorded, loaded.Size())
	first, _ := loaded.Next()
	assert.Equal(t, m.ID(), first.MatchID)
	require.Len(t, first.Players, 2)

	assert.Error(t, recorder.SaveReplay("unknown"))
}

func TestLoadReplayDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	replay := NewReplay("match-2")
	replay.RecordState(Snapshot{MatchID: "match-2", Turn: 1})
	require.NoError(t, replay.SaveToFile(dir))

	path := filepath.Join(dir, "match-2.replay")
	in, err := os.Open(path)
	require.NoError(t, err)
	zr, err := gzip.NewReader(in)
	require.NoError(t, err)
	dec := json.NewDecoder(zr)
	var meta replayMetadata
	require.NoError(t, dec.Decode(&meta))
	require.NoError(t, in.Close())

	out, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(out)
	enc := json.NewEncoder(zw)
	require.NoError(t, enc.Encode(&meta))
	require.NoError(t, enc.Encode(Snapshot{MatchID: "match-2", Turn: 7}))
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	_, err = LoadReplayFromFile(dir, "match-2")
	assert.ErrorIs(t, err, ErrReplayCorrupt)
}

func TestLoadMissingReplay(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nope")
	assert.Error(t, err)
}
