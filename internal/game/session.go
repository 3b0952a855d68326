package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wanderhall/internal/config"
	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/entity"
	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/loot"
	"github.com/samdwyer/wanderhall/internal/player"
	"github.com/samdwyer/wanderhall/internal/skills"
	"github.com/samdwyer/wanderhall/internal/storage"
	"github.com/samdwyer/wanderhall/internal/telemetry"
)

// ErrBattleInProgress is returned by StartBattle while another battle runs.
var ErrBattleInProgress = errors.New("battle already in progress")

// SessionConfig are the collaborators of a play session.
type SessionConfig struct {
	Catalog *gamedata.Catalog
	Gateway *storage.Gateway
	Balance config.Balance
	Rng     dice.Roller
	Bus     *events.Bus  // Created when nil
	Logger  *slog.Logger // May be nil
}

// Session holds everything one player's play session needs. Intents are
// expected to arrive one at a time.
type Session struct {
	catalog *gamedata.Catalog
	player  *player.State
	graph   *skills.Graph
	loot    *loot.Table
	gw      *storage.Gateway
	rng     dice.Roller
	bal     config.Balance
	bus     *events.Bus
	logger  *slog.Logger

	battle *Battle
}

// NewSession loads the player from the gateway and builds the skill graph
// and loot table from the catalog.
func NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if cfg.Catalog == nil || cfg.Gateway == nil || cfg.Rng == nil {
		return nil, errors.New("session needs a catalog, a gateway and a random source")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	ctx, span := telemetry.Tracer("session").Start(ctx, "session.load")
	defer span.End()

	p, err := player.Load(ctx, player.Options{
		Gateway: cfg.Gateway,
		Items:   cfg.Catalog.Items,
		Balance: cfg.Balance,
		Bus:     bus,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	span.SetAttributes(
		attribute.Int("player.coins", p.Stats().Coins),
		attribute.Int("player.skills", len(p.OwnedSkills())),
	)

	return &Session{
		catalog: cfg.Catalog,
		player:  p,
		graph:   skills.NewGraph(cfg.Catalog.Skills, bus, logger),
		loot:    loot.FromCatalog(cfg.Catalog.Items),
		gw:      cfg.Gateway,
		rng:     cfg.Rng,
		bal:     cfg.Balance,
		bus:     bus,
		logger:  logger,
	}, nil
}

// Player returns the session's player.
func (s *Session) Player() *player.State { return s.player }

// Graph returns the skill graph.
func (s *Session) Graph() *skills.Graph { return s.graph }

// Catalog returns the item, skill and monster definitions.
func (s *Session) Catalog() *gamedata.Catalog { return s.catalog }

// Bus returns the event bus the session publishes on.
func (s *Session) Bus() *events.Bus { return s.bus }

// Battle returns the current or most recent battle, or nil.
func (s *Session) Battle() *Battle { return s.battle }

// State reports whether a battle is running.
func (s *Session) State() State {
	if s.battle != nil && !s.battle.Ended() {
		return StateBattle
	}
	return StateExplore
}

// StartBattle spawns a monster by encounter weight and starts a battle
// against it.
func (s *Session) StartBattle(ctx context.Context) (*Battle, error) {
	def := s.catalog.Monsters.SpawnRandom(s.rng)
	if def == nil {
		return nil, errors.New("no monster to spawn")
	}
	return s.StartBattleWith(ctx, entity.NewMonsterFromDef(def, s.rng, s.bal.MonsterVariance))
}

// StartBattleWith starts a battle against a given monster. Health, defense
// and mana are reset to the battle defaults first.
func (s *Session) StartBattleWith(ctx context.Context, m *entity.Monster) (*Battle, error) {
	if s.State() == StateBattle {
		return nil, ErrBattleInProgress
	}
	s.player.RefillBattleStats()
	b := NewBattle(BattleConfig{
		Player:  s.player,
		Monster: m,
		Loot:    s.loot,
		Rng:     s.rng,
		Bus:     s.bus,
		Logger:  s.logger,
	})
	b.Start(ctx)
	s.battle = b
	return b, nil
}

// AttemptUnlock tries to unlock a skill with one of the player's skill books.
func (s *Session) AttemptUnlock(ctx context.Context, key string) skills.Result {
	return s.graph.Unlock(ctx, s.player, key)
}

// UseConsumable applies a held consumable. It is allowed in and out of
// battle and never costs a turn.
func (s *Session) UseConsumable(ctx context.Context, key string) bool {
	return s.player.UseConsumable(ctx, key)
}

// Buy purchases one unit of an item. The shop is closed during battle.
func (s *Session) Buy(ctx context.Context, key string) bool {
	if s.State() == StateBattle {
		return false
	}
	return s.player.Buy(ctx, key)
}

// Sell sells one held unit of an item. The shop is closed during battle.
func (s *Session) Sell(ctx context.Context, key string) bool {
	if s.State() == StateBattle {
		return false
	}
	return s.player.Sell(ctx, key)
}

// ResetAll abandons any running battle, clears every persisted key and
// returns the player to the defaults.
func (s *Session) ResetAll(ctx context.Context) error {
	ctx, span := telemetry.Tracer("session").Start(ctx, "session.reset")
	defer span.End()

	if s.battle != nil {
		s.battle.abandon()
		s.battle = nil
	}
	if err := s.player.Reset(ctx); err != nil {
		return fmt.Errorf("reset player: %w", err)
	}
	s.logger.Info("progress reset")
	return nil
}
