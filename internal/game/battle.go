package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/wanderhall/internal/combat"
	"github.com/samdwyer/wanderhall/internal/config"
	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/entity"
	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/loot"
	"github.com/samdwyer/wanderhall/internal/player"
	"github.com/samdwyer/wanderhall/internal/telemetry"
)

// Phase is the state of a battle's turn machine.
type Phase int

const (
	// PhaseIdle - created but not started
	PhaseIdle Phase = iota
	// PhasePlayerTurn - waiting for the player to pick an action
	PhasePlayerTurn
	// PhaseResolving - an attack is being applied
	PhaseResolving
	// PhaseMonsterTurn - waiting for the caller to run the monster turn
	PhaseMonsterTurn
	// PhaseEnded - terminal
	PhaseEnded
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseResolving:
		return "resolving"
	case PhaseMonsterTurn:
		return "monster_turn"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Action is a player intent during their turn.
type Action string

const (
	ActionAttack Action = "attack"
	ActionSkills Action = "skills"
	ActionGuard  Action = "guard"
	ActionRun    Action = "run"
)

// Outcome is how a battle finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Reward is what a victory paid out.
type Reward struct {
	BaseCoins int      // Roll from the monster's reward tier
	Coins     int      // Credited after the luck bonus
	Loot      []string // Drawn item keys, duplicates included
	Overflow  []string // Drawn keys that did not fit in the inventory
}

// Step describes the effect of one Submit or ResolveMonsterTurn call.
type Step struct {
	Action   Action
	Accepted bool

	PlayerAttack  *combat.AttackResult
	MonsterAttack *combat.AttackResult
	Guarded       bool // The monster attack was discounted by a guard
	RunDraw       int  // Escape roll, valid for ActionRun
	Skills        []string

	// PendingMonsterTurn is set when the caller must invoke
	// ResolveMonsterTurn before the player can act again.
	PendingMonsterTurn bool

	Outcome Outcome
	Reward  *Reward
	Message string
}

// BattleConfig are the collaborators of a single battle.
type BattleConfig struct {
	Player  *player.State
	Monster *entity.Monster
	Loot    *loot.Table
	Rng     dice.Roller
	Bus     *events.Bus  // May be nil
	Logger  *slog.Logger // May be nil
}

// Battle is one player-versus-monster encounter. The player reference is
// dropped once the battle ends.
type Battle struct {
	id      string
	player  *player.State
	monster *entity.Monster
	loot    *loot.Table
	rng     dice.Roller
	bal     config.Balance
	bus     *events.Bus
	logger  *slog.Logger
	tracer  trace.Tracer

	phase       Phase
	inputLocked bool
	guarding    bool
	outcome     Outcome
	reward      *Reward
	turns       int
	lastMessage string
}

// NewBattle creates an idle battle.
func NewBattle(cfg BattleConfig) *Battle {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	return &Battle{
		id:      id,
		player:  cfg.Player,
		monster: cfg.Monster,
		loot:    cfg.Loot,
		rng:     cfg.Rng,
		bal:     cfg.Player.Balance(),
		bus:     cfg.Bus,
		logger:  logger.With("battle", id),
		tracer:  telemetry.Tracer("battle"),
		phase:   PhaseIdle,
	}
}

// ID returns the battle's unique identifier.
func (b *Battle) ID() string { return b.id }

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// Monster returns the opponent.
func (b *Battle) Monster() *entity.Monster { return b.monster }

// InputLocked reports whether Submit is currently refused.
func (b *Battle) InputLocked() bool { return b.inputLocked }

// Guarding reports whether the next monster attack will be discounted.
func (b *Battle) Guarding() bool { return b.guarding }

// Outcome returns the result, or OutcomeNone while the battle runs.
func (b *Battle) Outcome() Outcome { return b.outcome }

// Reward returns the victory reward, or nil.
func (b *Battle) Reward() *Reward { return b.reward }

// Turns returns the number of completed player actions.
func (b *Battle) Turns() int { return b.turns }

// LastMessage returns the latest narration line.
func (b *Battle) LastMessage() string { return b.lastMessage }

// Ended reports whether the battle has finished.
func (b *Battle) Ended() bool { return b.phase == PhaseEnded }

// Start opens the first player turn. It returns false unless the battle
// is idle.
func (b *Battle) Start(ctx context.Context) bool {
	if b.phase != PhaseIdle {
		return false
	}
	_, span := b.tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("monster", b.monster.ID()),
		attribute.Int("monster.health", b.monster.Health),
		attribute.Int("monster.attack", b.monster.Attack),
		attribute.Int("monster.defense", b.monster.Defense),
	)
	span.End()

	b.phase = PhasePlayerTurn
	b.lastMessage = fmt.Sprintf("A %s appears!", b.monster.Name)
	b.logger.Info("battle started", "monster", b.monster.ID())
	return true
}

// Submit applies a player action. Actions are refused while the input is
// locked, outside the player turn and for unknown names.
func (b *Battle) Submit(ctx context.Context, action Action) Step {
	step := Step{Action: action}
	if b.phase != PhasePlayerTurn || b.inputLocked {
		return step
	}

	ctx, span := b.tracer.Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("action", string(action)),
		attribute.Int("turn", b.turns),
	)
	defer span.End()

	switch action {
	case ActionSkills:
		step.Accepted = true
		step.Skills = b.player.OwnedSkills()
		return step

	case ActionAttack:
		b.beginTurn(&step)
		result := combat.ApplyAttack(b.player.Stats().Attack, b.monster)
		step.PlayerAttack = &result
		span.SetAttributes(attribute.Int("damage", result.Damage), attribute.Int("absorbed", result.Absorbed))
		b.lastMessage = fmt.Sprintf("You hit the %s for %d (%d absorbed).", b.monster.Name, result.Damage, result.Absorbed)
		if b.checkEnd(ctx, &step) {
			return step
		}

	case ActionGuard:
		b.beginTurn(&step)
		b.guarding = true
		b.lastMessage = "You raise your guard."

	case ActionRun:
		b.beginTurn(&step)
		step.RunDraw = b.rng.Intn(b.bal.RunRollMax + 1)
		span.SetAttributes(attribute.Int("run.draw", step.RunDraw))
		if combat.RunSucceeds(b.player.Stats().Luck, step.RunDraw) {
			b.lastMessage = "You got away safely."
			b.bus.Publish(events.RunSucceeded{BattleID: b.id})
			b.end(ctx, &step, OutcomeFled)
			return step
		}
		b.lastMessage = "You failed to escape!"

	default:
		return step
	}

	b.phase = PhaseMonsterTurn
	step.PendingMonsterTurn = true
	step.Message = b.lastMessage
	return step
}

// ResolveMonsterTurn runs the pending monster attack. It is the only way
// out of PhaseMonsterTurn and is refused in any other phase.
func (b *Battle) ResolveMonsterTurn(ctx context.Context) Step {
	step := Step{}
	if b.phase != PhaseMonsterTurn {
		return step
	}
	step.Accepted = true
	b.phase = PhaseResolving

	ctx, span := b.tracer.Start(ctx, "battle.monster_turn")
	defer span.End()

	attack := b.monster.Attack
	if b.guarding {
		attack = combat.Guarded(attack, b.bal.GuardDiscount)
		step.Guarded = true
		b.guarding = false
	}
	result := combat.ApplyAttack(attack, b.player)
	step.MonsterAttack = &result
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.Bool("guarded", step.Guarded),
		attribute.Int("attack", attack),
		attribute.Int("damage", result.Damage),
	)
	b.lastMessage = fmt.Sprintf("The %s hits you for %d (%d absorbed).", b.monster.Name, result.Damage, result.Absorbed)

	if b.checkEnd(ctx, &step) {
		return step
	}
	b.phase = PhasePlayerTurn
	b.inputLocked = false
	step.Message = b.lastMessage
	return step
}

func (b *Battle) beginTurn(step *Step) {
	step.Accepted = true
	b.inputLocked = true
	b.phase = PhaseResolving
	b.turns++
}

// checkEnd ends the battle if either side is down. The player is checked
// first, so a mutual knockout is a defeat.
func (b *Battle) checkEnd(ctx context.Context, step *Step) bool {
	switch {
	case b.player.GetHealth() <= 0:
		b.lastMessage = "You have been defeated..."
		b.end(ctx, step, OutcomeDefeat)
	case !b.monster.IsAlive():
		b.lastMessage = fmt.Sprintf("The %s is defeated!", b.monster.Name)
		b.end(ctx, step, OutcomeVictory)
	default:
		return false
	}
	return true
}

// abandon stops the battle without an outcome and releases the player.
func (b *Battle) abandon() {
	b.phase = PhaseEnded
	b.inputLocked = false
	b.guarding = false
	b.player = nil
	b.logger.Info("battle abandoned", "turns", b.turns)
}

func (b *Battle) end(ctx context.Context, step *Step, outcome Outcome) {
	ctx, span := b.tracer.Start(ctx, "battle.end")
	defer span.End()

	b.phase = PhaseEnded
	b.outcome = outcome
	b.inputLocked = false
	b.guarding = false

	switch outcome {
	case OutcomeVictory:
		b.reward = b.payReward(ctx)
		b.bus.Publish(events.BattleOutcome{
			BattleID: b.id,
			Result:   events.ResultVictory,
			Coins:    b.reward.Coins,
			Loot:     b.reward.Loot,
		})
		span.SetAttributes(attribute.Int("coins", b.reward.Coins), attribute.Int("loot", len(b.reward.Loot)))
	case OutcomeDefeat:
		b.bus.Publish(events.BattleOutcome{BattleID: b.id, Result: events.ResultDefeat})
	}

	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", b.turns),
	)
	b.logger.Info("battle ended", "outcome", outcome.String(), "turns", b.turns)

	step.Outcome = outcome
	step.Reward = b.reward
	step.Message = b.lastMessage
	b.player = nil
}

// payReward credits coins and loot, refills the battle stats and persists
// the stat bundle. It runs once, from end.
func (b *Battle) payReward(ctx context.Context) *Reward {
	p := b.player
	luck := p.Stats().Luck

	r := b.bal.CoinRangeFor(b.monster.RewardTier)
	reward := &Reward{BaseCoins: dice.Between(b.rng, r.Min, r.Max)}
	reward.Coins = combat.FinalCoins(reward.BaseCoins, luck, b.bal.CoinLuckDivisor)
	p.AddCoins(ctx, reward.Coins)

	if b.bal.Loot.Drops(luck, b.rng.Float64()) && b.loot != nil {
		reward.Loot = b.loot.ChooseMany(b.rng, b.bal.Loot.DropCount(luck))
		for _, key := range reward.Loot {
			if !p.AddItem(ctx, key, 1) {
				reward.Overflow = append(reward.Overflow, key)
			}
		}
	}
	if len(reward.Overflow) > 0 {
		b.logger.Warn("inventory full, loot lost", "items", reward.Overflow)
	}

	p.RefillBattleStats()
	if err := p.PersistStats(ctx); err != nil {
		b.logger.Warn("persist stats after victory failed", "error", err)
	}
	return reward
}
