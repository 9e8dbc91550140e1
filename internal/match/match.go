// Package match drives a duel between two players: each turn the current
// player plays the next card of their deck, every occupied slot attacks in
// table order, and defeated creatures leave both tables.
package match

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/magefree/creature-duel-go/internal/game"
	"github.com/magefree/creature-duel-go/internal/game/rules"
	"go.uber.org/zap"
)

// DefaultMaxTurns bounds a match when no limit is configured.
const DefaultMaxTurns = 100

// ErrAlreadyStarted is returned when Play is called twice.
var ErrAlreadyStarted = errors.New("match already started")

// State represents the state of a match.
type State int

const (
	StateWaiting State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Result describes how a match ended. Winner and Loser are nil on a draw.
type Result struct {
	Winner *game.Player
	Loser  *game.Player
	Turns  int
}

// Draw reports whether the turn limit ended the match.
func (r Result) Draw() bool {
	return r.Winner == nil
}

// Option configures a Match.
type Option func(*Match)

// WithMaxTurns bounds the match; non-positive values keep the default.
func WithMaxTurns(n int) Option {
	return func(m *Match) {
		if n > 0 {
			m.maxTurns = n
		}
	}
}

// WithBoardView receives a snapshot every time the engine asks for a
// board redraw. Several board views may be installed.
func WithBoardView(fn func(Snapshot)) Option {
	return func(m *Match) {
		if fn != nil {
			m.boards = append(m.boards, fn)
		}
	}
}

// Match owns the turn loop of one duel.
type Match struct {
	mu    sync.Mutex
	id    string
	state State

	engine   *game.Engine
	logger   *zap.Logger
	players  [2]*game.Player
	decks    [2][]*game.Creature
	maxTurns int
	turn     int
	boards   []func(Snapshot)
	seq      *rules.Sequencer
	result   Result
}

// New creates a match. The sheriff moves first.
func New(engine *game.Engine, sheriff, bandit *game.Player, sheriffDeck, banditDeck []*game.Creature, logger *zap.Logger, opts ...Option) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Match{
		id:       uuid.NewString(),
		state:    StateWaiting,
		engine:   engine,
		logger:   logger,
		players:  [2]*game.Player{sheriff, bandit},
		decks:    [2][]*game.Creature{append([]*game.Creature(nil), sheriffDeck...), append([]*game.Creature(nil), banditDeck...)},
		maxTurns: DefaultMaxTurns,
		seq:      rules.NewSequencer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the match identifier.
func (m *Match) ID() string {
	return m.id
}

// State returns the current state.
func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Turn returns the number of the turn in progress, starting at 1.
func (m *Match) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// Play runs turns until a player is defeated or the turn limit is reached,
// then calls onFinish. With asynchronous views Play returns before the
// match ends.
func (m *Match) Play(onFinish func(Result)) error {
	m.mu.Lock()
	if m.state != StateWaiting {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyStarted, m.id)
	}
	m.state = StateInProgress
	m.mu.Unlock()

	m.logger.Info("match started",
		zap.String("match_id", m.id),
		zap.String("sheriff", m.players[0].Name),
		zap.String("bandit", m.players[1].Name),
		zap.Int("max_turns", m.maxTurns),
	)

	m.seq.Push(m.turnTask())
	return m.seq.ContinueWith(func() {
		m.mu.Lock()
		m.state = StateFinished
		m.result.Turns = m.turn
		result := m.result
		m.mu.Unlock()

		fields := []zap.Field{zap.String("match_id", m.id), zap.Int("turns", result.Turns)}
		if result.Draw() {
			m.logger.Info("match ended in a draw", fields...)
		} else {
			m.logger.Info("match won", append(fields, zap.String("winner", result.Winner.Name))...)
		}
		if onFinish != nil {
			onFinish(result)
		}
	})
}

func (m *Match) turnTask() rules.Task {
	return rules.Task{
		Description: "turn",
		Kind:        rules.TaskKindTurn,
		Run:         m.playTurn,
	}
}

func (m *Match) playTurn(done func()) {
	m.mu.Lock()
	m.turn++
	turn := m.turn
	m.mu.Unlock()

	current, opposite := m.sides(turn)
	m.logger.Debug("turn started", zap.Int("turn", turn), zap.String("player", current.Name))
	m.publish(rules.EventTurnStarted, current, turn)

	steps := rules.NewSequencer()
	steps.Push(rules.Task{
		Description: "play card",
		Kind:        rules.TaskKindTurn,
		Run: func(next func()) {
			m.playNextCard(turn, current, opposite, next)
		},
	})
	steps.Push(rules.Task{
		Description: "attacks",
		Kind:        rules.TaskKindTurn,
		Run: func(next func()) {
			m.attackAll(current, opposite, next)
		},
	})
	steps.Push(rules.Task{
		Description: "remove defeated",
		Kind:        rules.TaskKindTurn,
		Run:         m.removeDefeated,
	})
	m.engine.Run(steps, func() {
		m.publish(rules.EventTurnEnded, current, turn)
		if m.decide(current, opposite) || turn >= m.maxTurns {
			done()
			return
		}
		m.seq.Push(m.turnTask())
		done()
	})
}

func (m *Match) sides(turn int) (*game.Player, *game.Player) {
	i := (turn - 1) % 2
	return m.players[i], m.players[1-i]
}

func (m *Match) context(current, opposite *game.Player, position int) *game.Context {
	return m.engine.NewContext(current, opposite, position, m.updateView)
}

func (m *Match) playNextCard(turn int, current, opposite *game.Player, next func()) {
	i := (turn - 1) % 2
	if len(m.decks[i]) == 0 {
		next()
		return
	}
	card := m.decks[i][0]
	m.decks[i] = m.decks[i][1:]
	m.engine.PlayCard(m.context(current, opposite, 0), card, func() {
		m.updateView()
		next()
	})
}

func (m *Match) attackAll(current, opposite *game.Player, next func()) {
	attacks := rules.NewSequencer()
	for pos := range current.Table {
		attacks.Push(rules.Task{
			Description: "attack",
			Kind:        rules.TaskKindTurn,
			Run: func(done func()) {
				card := current.CardAt(pos)
				if card == nil || card.IsDefeated() {
					done()
					return
				}
				m.engine.Attack(m.context(current, opposite, pos), card, done)
			},
		})
	}
	m.engine.Run(attacks, next)
}

func (m *Match) removeDefeated(next func()) {
	removals := rules.NewSequencer()
	for _, player := range m.players {
		for pos, card := range player.Cards() {
			if !card.IsDefeated() {
				continue
			}
			removals.Push(rules.Task{
				Description: "remove " + card.ID,
				Kind:        rules.TaskKindTurn,
				Run: func(done func()) {
					m.engine.RemoveCard(player, pos, done)
				},
			})
		}
	}
	m.engine.Run(removals, func() {
		m.updateView()
		next()
	})
}

// decide records the result once a player is out of hero power.
func (m *Match) decide(current, opposite *game.Player) bool {
	var winner, loser *game.Player
	switch {
	case opposite.IsDefeated():
		winner, loser = current, opposite
	case current.IsDefeated():
		winner, loser = opposite, current
	default:
		return false
	}
	m.mu.Lock()
	m.result.Winner, m.result.Loser = winner, loser
	m.mu.Unlock()
	m.publish(rules.EventPlayerLost, loser, m.Turn())
	return true
}

func (m *Match) publish(eventType rules.EventType, player *game.Player, turn int) {
	evt := rules.NewEventWithAmount(eventType, player.ID, "", player.ID, turn)
	evt.Description = fmt.Sprintf("%s: %s", eventType, player.Name)
	m.engine.Publish(evt)
}

func (m *Match) updateView() {
	if len(m.boards) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, board := range m.boards {
		board(snap)
	}
}
