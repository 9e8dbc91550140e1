// Package config loads duel settings from a YAML file with DUEL_ prefixed
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/magefree/creature-duel-go/internal/game"
	"github.com/magefree/creature-duel-go/internal/game/locale"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. DUEL_GAME_HERO_POWER.
const EnvPrefix = "DUEL"

// Config is the complete duel configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Decks     DecksConfig     `mapstructure:"decks"`
	Spectator SpectatorConfig `mapstructure:"spectator"`
	Replay    ReplayConfig    `mapstructure:"replay"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ZapLevel maps Level onto a zap level. Only debug, info, warn and error
// are accepted.
func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil || level > zapcore.ErrorLevel {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging.level %q", l.Level)
	}
	return level, nil
}

// GameConfig holds rules and pacing settings.
type GameConfig struct {
	Language       string        `mapstructure:"language"`
	SpeedRate      float64       `mapstructure:"speed_rate"`
	AnimationDelay time.Duration `mapstructure:"animation_delay"`
	HeroPower      int           `mapstructure:"hero_power"`
	MaxTurns       int           `mapstructure:"max_turns"`
}

// StepDelay is how long a view animation lasts at the configured speed.
func (g GameConfig) StepDelay() time.Duration {
	if g.SpeedRate <= 0 {
		return g.AnimationDelay
	}
	return time.Duration(float64(g.AnimationDelay) / g.SpeedRate)
}

// DecksConfig lists creature kinds in play order.
type DecksConfig struct {
	Sheriff []string `mapstructure:"sheriff"`
	Bandit  []string `mapstructure:"bandit"`
}

// SheriffKinds parses the sheriff deck.
func (d DecksConfig) SheriffKinds() ([]game.Kind, error) {
	return parseDeck("sheriff", d.Sheriff)
}

// BanditKinds parses the bandit deck.
func (d DecksConfig) BanditKinds() ([]game.Kind, error) {
	return parseDeck("bandit", d.Bandit)
}

// SpectatorConfig controls the websocket stream.
type SpectatorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// ReplayConfig controls recording finished matches to disk.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.language", "en")
	v.SetDefault("game.speed_rate", 1.0)
	v.SetDefault("game.animation_delay", 500*time.Millisecond)
	v.SetDefault("game.hero_power", 10)
	v.SetDefault("game.max_turns", 100)

	v.SetDefault("decks.sheriff", []string{"duck", "duck", "duck", "rogue"})
	v.SetDefault("decks.bandit", []string{"lad", "lad", "lad"})

	v.SetDefault("spectator.enabled", false)
	v.SetDefault("spectator.address", ":8080")

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.directory", "replays")
}

// Load reads path, applies environment overrides and validates the result.
// A missing file or empty path yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		} else if err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}

	if _, err := locale.New(c.Game.Language); err != nil {
		return fmt.Errorf("invalid game.language: %w", err)
	}
	if c.Game.SpeedRate <= 0 {
		return fmt.Errorf("game.speed_rate must be positive, got %v", c.Game.SpeedRate)
	}
	if c.Game.AnimationDelay < 0 {
		return fmt.Errorf("game.animation_delay must not be negative, got %s", c.Game.AnimationDelay)
	}
	if c.Game.HeroPower <= 0 {
		return fmt.Errorf("game.hero_power must be positive, got %d", c.Game.HeroPower)
	}
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive, got %d", c.Game.MaxTurns)
	}

	if _, err := c.Decks.SheriffKinds(); err != nil {
		return err
	}
	if _, err := c.Decks.BanditKinds(); err != nil {
		return err
	}

	if c.Spectator.Enabled && c.Spectator.Address == "" {
		return errors.New("spectator.address is required when the spectator is enabled")
	}
	if c.Replay.Enabled && c.Replay.Directory == "" {
		return errors.New("replay.directory is required when replays are enabled")
	}
	return nil
}

func parseDeck(owner string, names []string) ([]game.Kind, error) {
	kinds := make([]game.Kind, 0, len(names))
	for i, name := range names {
		k, err := game.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("decks.%s[%d]: %w", owner, i, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
