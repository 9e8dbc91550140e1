package match

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 1

// ErrReplayCorrupt is returned when a saved board fails its checksum.
var ErrReplayCorrupt = errors.New("replay checksum mismatch")

// Checksum returns a stable digest of the snapshot.
func (s Snapshot) Checksum() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Replay is a recorded match: the board after every redraw, in order.
// It is for playback only and cannot be resumed as a match.
type Replay struct {
	MatchID      string
	States       []Snapshot
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(matchID string) *Replay {
	return &Replay{
		MatchID: matchID,
		States:  make([]Snapshot, 0),
	}
}

// RecordState appends a board.
func (r *Replay) RecordState(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, s)
}

// Start rewinds to the first board.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Next returns the board at the cursor and advances it.
func (r *Replay) Next() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		s := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return s, true
	}
	return Snapshot{}, false
}

// Previous steps the cursor back and returns that board.
func (r *Replay) Previous() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex], true
	}
	return Snapshot{}, false
}

// Size returns the number of recorded boards.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// TurnStart returns the index of the first board recorded during turn, or
// -1 when the turn was never recorded.
func (r *Replay) TurnStart(turn int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, s := range r.States {
		if s.Turn == turn {
			return i
		}
	}
	return -1
}

type replayMetadata struct {
	MatchID    string    `json:"match_id"`
	Timestamp  time.Time `json:"timestamp"`
	Version    int       `json:"version"`
	StateCount int       `json:"state_count"`
	Checksums  []string  `json:"checksums"`
}

func replayPath(directory, matchID string) string {
	return filepath.Join(directory, matchID+".replay")
}

// SaveToFile writes the replay as gzipped JSON documents: metadata first,
// then one document per board.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metadata := replayMetadata{
		MatchID:    r.MatchID,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		StateCount: len(r.States),
		Checksums:  make([]string, 0, len(r.States)),
	}
	for i, s := range r.States {
		sum, err := s.Checksum()
		if err != nil {
			return fmt.Errorf("failed to checksum state %d: %w", i, err)
		}
		metadata.Checksums = append(metadata.Checksums, sum)
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(replayPath(directory, r.MatchID))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := json.NewEncoder(gzipWriter)
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i := range r.States {
		if err := encoder.Encode(&r.States[i]); err != nil {
			return fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	return gzipWriter.Close()
}

// LoadReplayFromFile reads a replay written by SaveToFile and verifies
// every board against its recorded checksum.
func LoadReplayFromFile(directory, matchID string) (*Replay, error) {
	file, err := os.Open(replayPath(directory, matchID))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := json.NewDecoder(gzipReader)
	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}
	if len(metadata.Checksums) != metadata.StateCount {
		return nil, fmt.Errorf("%w: %d checksums for %d states", ErrReplayCorrupt, len(metadata.Checksums), metadata.StateCount)
	}

	replay := NewReplay(metadata.MatchID)
	for i := 0; i < metadata.StateCount; i++ {
		var s Snapshot
		if err := decoder.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		sum, err := s.Checksum()
		if err != nil {
			return nil, err
		}
		if sum != metadata.Checksums[i] {
			return nil, fmt.Errorf("%w: state %d", ErrReplayCorrupt, i)
		}
		replay.States = append(replay.States, s)
	}
	return replay, nil
}

// ReplayRecorder records matches and stores them under a directory.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[string]*Replay // match ID -> replay
	saveDir string
}

// NewReplayRecorder creates a recorder saving into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		saveDir: saveDir,
	}
}

// BoardView starts recording matchID and returns the callback to install
// with WithBoardView.
func (rr *ReplayRecorder) BoardView(matchID string) func(Snapshot) {
	replay := NewReplay(matchID)
	rr.mu.Lock()
	rr.replays[matchID] = replay
	rr.mu.Unlock()

	rr.logger.Info("started replay recording", zap.String("match_id", matchID))
	return replay.RecordState
}

// GetReplay returns the in-memory replay of a match.
func (rr *ReplayRecorder) GetReplay(matchID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	replay, ok := rr.replays[matchID]
	return replay, ok
}

// SaveReplay writes a replay to disk and drops it from memory.
func (rr *ReplayRecorder) SaveReplay(matchID string) error {
	rr.mu.Lock()
	replay, ok := rr.replays[matchID]
	if !ok {
		rr.mu.Unlock()
		return fmt.Errorf("no replay found for match %s", matchID)
	}
	delete(rr.replays, matchID)
	rr.mu.Unlock()

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	rr.logger.Info("saved replay to disk",
		zap.String("match_id", matchID),
		zap.Int("state_count", replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// LoadReplay reads a saved replay.
func (rr *ReplayRecorder) LoadReplay(matchID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(rr.saveDir, matchID)
	if err != nil {
		return nil, err
	}
	rr.logger.Info("loaded replay from disk",
		zap.String("match_id", matchID),
		zap.Int("state_count", replay.Size()),
	)
	return replay, nil
}
