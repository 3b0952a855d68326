// Package entity provides the player's stat record and inventory and the
// per-encounter monster.
package entity

// StatKey names one player stat.
type StatKey string

const (
	StatHealth  StatKey = "health"
	StatDefense StatKey = "defense"
	StatMana    StatKey = "mana"
	StatAttack  StatKey = "attack"
	StatSpeed   StatKey = "speed"
	StatLuck    StatKey = "luck"
	StatAgility StatKey = "agility"
	StatCoins   StatKey = "coins"
)

// BattleKeys are reset for every battle and never persisted.
var BattleKeys = []StatKey{StatHealth, StatDefense, StatMana}

// PersistentKeys are saved across sessions.
var PersistentKeys = []StatKey{StatCoins, StatAttack, StatSpeed, StatLuck, StatAgility}

// Stats is the player's stat record. No field is ever stored negative.
type Stats struct {
	Health  int `json:"health"`
	Defense int `json:"defense"`
	Mana    int `json:"mana"`
	Attack  int `json:"attack"`
	Speed   int `json:"speed"`
	Luck    int `json:"luck"`
	Agility int `json:"agility"`
	Coins   int `json:"coins"`
}

// Get returns the value of one stat, or 0 for an unknown key.
func (s *Stats) Get(key StatKey) int {
	if p := s.field(key); p != nil {
		return *p
	}
	return 0
}

// Set stores a stat clamped at zero and returns the previous and stored
// values. Unknown keys are ignored and report (0, 0).
func (s *Stats) Set(key StatKey, value int) (old, stored int) {
	p := s.field(key)
	if p == nil {
		return 0, 0
	}
	if value < 0 {
		value = 0
	}
	old = *p
	*p = value
	return old, value
}

func (s *Stats) field(key StatKey) *int {
	switch key {
	case StatHealth:
		return &s.Health
	case StatDefense:
		return &s.Defense
	case StatMana:
		return &s.Mana
	case StatAttack:
		return &s.Attack
	case StatSpeed:
		return &s.Speed
	case StatLuck:
		return &s.Luck
	case StatAgility:
		return &s.Agility
	case StatCoins:
		return &s.Coins
	default:
		return nil
	}
}
