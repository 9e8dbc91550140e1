package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/magefree/creature-duel-go/internal/config"
	"github.com/magefree/creature-duel-go/internal/game"
	"github.com/magefree/creature-duel-go/internal/game/counters"
	"github.com/magefree/creature-duel-go/internal/game/locale"
	"github.com/magefree/creature-duel-go/internal/game/rules"
	"github.com/magefree/creature-duel-go/internal/game/watchers"
	"github.com/magefree/creature-duel-go/internal/match"
	"github.com/magefree/creature-duel-go/internal/spectator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting duel",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("language", cfg.Game.Language),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	translator, err := locale.New(cfg.Game.Language)
	if err != nil {
		logger.Fatal("failed to load language", zap.Error(err))
	}

	bus := rules.NewEventBus()
	registry := rules.NewWatcherRegistry()
	damage := watchers.NewDamageWatcher()
	removed := watchers.NewCreaturesRemovedWatcher()
	transfers := watchers.NewAbilityTransferWatcher("")
	registry.AddWatcher(damage)
	registry.AddWatcher(removed)
	registry.AddWatcher(transfers)
	registry.Attach(bus)

	ops := counters.NewCounterOperations(counters.NewRegistry(), bus, logger)
	catalog := game.NewCatalog(ops, translator, logger)
	engine := game.NewEngine(logger, bus)

	sheriffDeck, err := buildDeck(catalog, cfg.Decks.SheriffKinds)
	if err != nil {
		logger.Fatal("failed to build sheriff deck", zap.Error(err))
	}
	banditDeck, err := buildDeck(catalog, cfg.Decks.BanditKinds)
	if err != nil {
		logger.Fatal("failed to build bandit deck", zap.Error(err))
	}

	sheriff := game.NewPlayer(translator.Text(locale.NameSheriff), cfg.Game.HeroPower)
	bandit := game.NewPlayer(translator.Text(locale.NameBandit), cfg.Game.HeroPower)

	opts := []match.Option{match.WithMaxTurns(cfg.Game.MaxTurns)}
	var hub *spectator.Hub
	if cfg.Spectator.Enabled {
		hub = spectator.NewHub(logger)
		opts = append(opts, match.WithBoardView(hub.BoardView()))

		server := spectator.NewServer(cfg.Spectator.Address, hub, logger)
		go func() {
			if serveErr := server.Run(ctx); serveErr != nil {
				logger.Error("spectator server error", zap.Error(serveErr))
			}
		}()
	}

	m := match.New(engine, sheriff, bandit, sheriffDeck, banditDeck, logger, opts...)
	var recorder *match.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = match.NewReplayRecorder(logger, cfg.Replay.Directory)
		match.WithBoardView(recorder.BoardView(m.ID()))(m)
	}
	if hub != nil {
		spectator.Attach(hub, m.ID(), cfg.Game.StepDelay(), append(sheriffDeck, banditDeck...)...)
	}

	results := make(chan match.Result, 1)
	if err := m.Play(func(r match.Result) { results <- r }); err != nil {
		logger.Fatal("failed to start match", zap.Error(err))
	}

	select {
	case result := <-results:
		fields := []zap.Field{
			zap.String("match_id", m.ID()),
			zap.Int("turns", result.Turns),
			zap.Int("sheriff_damage_taken", damage.DamageToPlayer(sheriff.ID)),
			zap.Int("bandit_damage_taken", damage.DamageToPlayer(bandit.ID)),
			zap.Int("damage_prevented", damage.Prevented()),
			zap.Int("creatures_removed", removed.GetTotal()),
			zap.Strings("abilities_stolen", transfers.Stolen()),
		}
		if result.Draw() {
			logger.Info("duel ended in a draw", fields...)
		} else {
			logger.Info("duel won", append(fields, zap.String("winner", result.Winner.Name))...)
		}
		if recorder != nil {
			if err := recorder.SaveReplay(m.ID()); err != nil {
				logger.Error("failed to save replay", zap.Error(err))
			}
		}
		if hub != nil {
			hub.Broadcast(spectator.Message{Type: spectator.MessageResult, MatchID: m.ID(), Data: resultSummary(result)})
			logger.Info("waiting for shutdown signal")
			sig := <-sigChan
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		}

	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()),
			zap.Int("turn", m.Turn()))
	}

	cancel()
	logger.Info("duel stopped")
}

func buildDeck(catalog *game.Catalog, kinds func() ([]game.Kind, error)) ([]*game.Creature, error) {
	list, err := kinds()
	if err != nil {
		return nil, err
	}
	deck := make([]*game.Creature, 0, len(list))
	for _, k := range list {
		card, err := catalog.New(k)
		if err != nil {
			return nil, err
		}
		deck = append(deck, card)
	}
	return deck, nil
}

func resultSummary(r match.Result) map[string]any {
	summary := map[string]any{"turns": r.Turns, "draw": r.Draw()}
	if !r.Draw() {
		summary["winner"] = r.Winner.Name
	}
	return summary
}

// initLogger builds a production logger for json output and a colored
// development logger otherwise.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]any{"app": "duel"}

	return zapCfg.Build()
}
