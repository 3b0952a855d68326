// Package events defines the outbound notifications the core emits for the
// rendering layer and a small synchronous bus to deliver them.
package events

import "github.com/samdwyer/wanderhall/internal/entity"

// Kind identifies an event type.
type Kind string

const (
	KindStatChanged      Kind = "stat_changed"
	KindInventoryChanged Kind = "inventory_changed"
	KindSkillUnlocked    Kind = "skill_unlocked"
	KindBattleOutcome    Kind = "battle_outcome"
	KindRunSucceeded     Kind = "run_succeeded"
)

// Event is implemented by every outbound notification.
type Event interface {
	Kind() Kind
}

// StatChanged reports a stat moving from Old to New.
type StatChanged struct {
	Key entity.StatKey
	Old int
	New int
}

// InventoryChanged carries the inventory after a mutation.
type InventoryChanged struct {
	Slots []entity.Slot
}

// SkillUnlocked reports a newly owned skill.
type SkillUnlocked struct {
	Key string
}

// Result is the terminal result of a battle.
type Result string

const (
	ResultVictory Result = "victory"
	ResultDefeat  Result = "defeat"
)

// BattleOutcome reports how a battle ended and what it paid out.
type BattleOutcome struct {
	BattleID string
	Result   Result
	Coins    int
	Loot     []string
}

// RunSucceeded reports that the player escaped a battle.
type RunSucceeded struct {
	BattleID string
}

func (StatChanged) Kind() Kind      { return KindStatChanged }
func (InventoryChanged) Kind() Kind { return KindInventoryChanged }
func (SkillUnlocked) Kind() Kind    { return KindSkillUnlocked }
func (BattleOutcome) Kind() Kind    { return KindBattleOutcome }
func (RunSucceeded) Kind() Kind     { return KindRunSucceeded }
