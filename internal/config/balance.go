package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/wanderhall/internal/combat"
	"github.com/samdwyer/wanderhall/internal/entity"
)

// BattleStats are the values health, defense and mana are refilled to.
type BattleStats struct {
	Health  int `yaml:"health"`
	Defense int `yaml:"defense"`
	Mana    int `yaml:"mana"`
}

// PersistentStats are the defaults merged under persisted player stats.
type PersistentStats struct {
	Coins   int `yaml:"coins"`
	Attack  int `yaml:"attack"`
	Speed   int `yaml:"speed"`
	Luck    int `yaml:"luck"`
	Agility int `yaml:"agility"`
}

// Balance groups every gameplay tunable.
type Balance struct {
	GuardDiscount     float64                     `yaml:"guardDiscount"`
	RunRollMax        int                         `yaml:"runRollMax"`
	Battle            BattleStats                 `yaml:"battle"`
	Persistent        PersistentStats             `yaml:"persistent"`
	RewardTiers       map[string]combat.CoinRange `yaml:"rewardTiers"`
	FallbackTier      combat.CoinRange            `yaml:"fallbackTier"`
	CoinLuckDivisor   float64                     `yaml:"coinLuckDivisor"`
	Loot              combat.LootCurve            `yaml:"loot"`
	InventoryCapacity int                         `yaml:"inventoryCapacity"`
	MonsterVariance   int                         `yaml:"monsterVariance"` // Percent
}

// DefaultBalance returns the shipped tunables.
func DefaultBalance() Balance {
	return Balance{
		GuardDiscount: 0.10,
		RunRollMax:    100,
		Battle:        BattleStats{Health: 1000, Defense: 50, Mana: 80},
		Persistent:    PersistentStats{Coins: 1000, Attack: 5, Speed: 160, Luck: 200, Agility: 80},
		RewardTiers: map[string]combat.CoinRange{
			"weak":   {Min: 20, Max: 50},
			"normal": {Min: 40, Max: 90},
			"strong": {Min: 80, Max: 160},
			"elite":  {Min: 150, Max: 300},
		},
		FallbackTier:      combat.CoinRange{Min: 20, Max: 300},
		CoinLuckDivisor:   10,
		Loot:              combat.LootCurve{Base: 0.33, Decay: 100, Floor: 0.05, Step: 50, Max: 4},
		InventoryCapacity: entity.DefaultCapacity,
		MonsterVariance:   10,
	}
}

// LoadBalance decodes a YAML file over DefaultBalance. An empty path
// returns the defaults.
func LoadBalance(path string) (Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Balance{}, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Balance{}, fmt.Errorf("parse balance file %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return Balance{}, fmt.Errorf("balance file %s: %w", path, err)
	}
	return b, nil
}

// Validate rejects tunables the game cannot run with.
func (b Balance) Validate() error {
	if b.GuardDiscount < 0 || b.GuardDiscount > 1 {
		return fmt.Errorf("guardDiscount %.2f must be within [0,1]", b.GuardDiscount)
	}
	if b.RunRollMax < 0 {
		return errors.New("runRollMax must not be negative")
	}
	if b.InventoryCapacity <= 0 {
		return errors.New("inventoryCapacity must be positive")
	}
	if b.MonsterVariance < 0 || b.MonsterVariance >= 100 {
		return fmt.Errorf("monsterVariance %d must be within [0,100)", b.MonsterVariance)
	}
	for tier, r := range b.RewardTiers {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("reward tier %s: bad range [%d,%d]", tier, r.Min, r.Max)
		}
	}
	if b.FallbackTier.Min < 0 || b.FallbackTier.Max < b.FallbackTier.Min {
		return fmt.Errorf("fallbackTier: bad range [%d,%d]", b.FallbackTier.Min, b.FallbackTier.Max)
	}
	return nil
}

// CoinRangeFor returns the base coin range of a reward tier, falling back
// to FallbackTier for unknown tiers.
func (b Balance) CoinRangeFor(tier string) combat.CoinRange {
	if r, ok := b.RewardTiers[tier]; ok {
		return r
	}
	return b.FallbackTier
}

// DefaultStats returns a full stat record at the battle and persistent
// defaults.
func (b Balance) DefaultStats() entity.Stats {
	return entity.Stats{
		Health:  b.Battle.Health,
		Defense: b.Battle.Defense,
		Mana:    b.Battle.Mana,
		Attack:  b.Persistent.Attack,
		Speed:   b.Persistent.Speed,
		Luck:    b.Persistent.Luck,
		Agility: b.Persistent.Agility,
		Coins:   b.Persistent.Coins,
	}
}
