// Package game runs the battle engine and the session that ties the player,
// the skill tree, the loot table and persistence together.
package game

// State is what the session is currently doing.
type State int

const (
	// StateExplore is the default between battles; shop and unlock intents are accepted.
	StateExplore State = iota
	// StateBattle is set while a battle is running.
	StateBattle
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateBattle:
		return "battle"
	default:
		return "unknown"
	}
}
