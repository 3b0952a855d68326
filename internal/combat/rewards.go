package combat

import "math"

// CoinRange is an inclusive range of base coin rewards.
type CoinRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// LootCurve shapes how luck affects loot drops.
//
//	noLootChance = max(Base * e^(-luck/Decay), Floor)
//	drops        = min(1 + floor(luck/Step), Max)
type LootCurve struct {
	Base  float64 `yaml:"base"`
	Decay float64 `yaml:"decay"`
	Floor float64 `yaml:"floor"`
	Step  int     `yaml:"step"`
	Max   int     `yaml:"max"`
}

// FinalCoins returns floor(base + luck/divisor), never negative.
func FinalCoins(base, luck int, divisor float64) int {
	bonus := 0.0
	if divisor > 0 {
		bonus = float64(luck) / divisor
	}
	coins := int(math.Floor(float64(base) + bonus))
	if coins < 0 {
		return 0
	}
	return coins
}

// NoLootChance returns the probability that a victory drops nothing.
func (c LootCurve) NoLootChance(luck int) float64 {
	chance := c.Base
	if c.Decay > 0 {
		chance = c.Base * math.Exp(-float64(luck)/c.Decay)
	}
	return math.Max(chance, c.Floor)
}

// DropCount returns how many items a looting victory awards.
func (c LootCurve) DropCount(luck int) int {
	n := 1
	if c.Step > 0 && luck > 0 {
		n += luck / c.Step
	}
	if c.Max > 0 && n > c.Max {
		n = c.Max
	}
	return n
}

// Drops reports whether the [0,1) draw beats the no-loot chance.
func (c LootCurve) Drops(luck int, draw float64) bool {
	return draw > c.NoLootChance(luck)
}
