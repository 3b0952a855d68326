package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/gamedata"
)

// Monster is the opponent of a single encounter. It is never persisted.
type Monster struct {
	Def        *gamedata.MonsterDef // Archetype this monster was rolled from (nil for hand-built monsters)
	Name       string
	RewardTier string
	Health     int
	MaxHealth  int
	Attack     int
	Defense    int
}

// NewMonster creates a monster with fixed stats.
func NewMonster(name, rewardTier string, health, attack, defense int) *Monster {
	return &Monster{
		Name:       name,
		RewardTier: rewardTier,
		Health:     health,
		MaxHealth:  health,
		Attack:     attack,
		Defense:    defense,
	}
}

// NewMonsterFromDef rolls a monster from an archetype. Each base stat moves
// by up to variance percent in either direction; a variance of 0 copies the
// base stats exactly.
func NewMonsterFromDef(def *gamedata.MonsterDef, rng dice.Roller, variance int) *Monster {
	m := NewMonster(def.Name, def.RewardTier,
		jitter(def.Health, variance, rng),
		jitter(def.Attack, variance, rng),
		jitter(def.Defense, variance, rng),
	)
	m.Def = def
	return m
}

func jitter(base, variance int, rng dice.Roller) int {
	if variance <= 0 || base <= 0 {
		return base
	}
	v := base + base*dice.Between(rng, -variance, variance)/100
	if v < 1 {
		v = 1
	}
	return v
}

// IsAlive returns true if the monster has health remaining.
func (m *Monster) IsAlive() bool { return m.Health > 0 }

// GetHealth returns current health.
func (m *Monster) GetHealth() int { return m.Health }

// GetDefense returns the remaining defense shield.
func (m *Monster) GetDefense() int { return m.Defense }

// SetHealth stores health clamped at zero.
func (m *Monster) SetHealth(v int) {
	if v < 0 {
		v = 0
	}
	m.Health = v
}

// SetDefense stores defense clamped at zero.
func (m *Monster) SetDefense(v int) {
	if v < 0 {
		v = 0
	}
	m.Defense = v
}

// ID returns the archetype identifier, or the name for hand-built monsters.
func (m *Monster) ID() string {
	if m.Def != nil {
		return m.Def.ID
	}
	return m.Name
}

// Color returns the tcell color for this monster.
func (m *Monster) Color() tcell.Color {
	if m.Def != nil {
		return m.Def.TCellColor()
	}
	return tcell.ColorPurple
}
