// Package skills implements the skill tree: four linear prerequisite chains
// whose nodes are unlocked by spending a skill book.
package skills

import (
	"context"
	"io"
	"log/slog"

	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/gamedata"
)

// Denial explains why an unlock was refused.
type Denial string

const (
	DenialNone                Denial = ""
	DenialUnknownSkill        Denial = "unknown skill"
	DenialAlreadyUnlocked     Denial = "already unlocked"
	DenialMissingPrerequisite Denial = "missing prerequisite"
	DenialMissingResource     Denial = "missing resource"
)

// NodeState is the unlock state of one skill for a given player.
type NodeState int

const (
	Locked NodeState = iota
	Unlockable
	Unlocked
)

// String returns a human-readable state name.
func (s NodeState) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlockable:
		return "unlockable"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Owner is the player side of an unlock. *player.State satisfies it.
type Owner interface {
	HasSkill(key string) bool
	SkillBook() (string, bool)
	RemoveItem(ctx context.Context, key string, n int) bool
	GrantSkill(ctx context.Context, key string) bool
}

// Result reports the outcome of Unlock.
type Result struct {
	Key      string
	Unlocked bool
	Denial   Denial
	Book     string // Item key spent on a successful unlock
}

// Graph validates and applies skill unlocks against the catalog.
type Graph struct {
	skills *gamedata.SkillRegistry
	bus    *events.Bus
	logger *slog.Logger
}

// NewGraph creates a graph over the skill registry. bus and logger may be nil.
func NewGraph(skills *gamedata.SkillRegistry, bus *events.Bus, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Graph{skills: skills, bus: bus, logger: logger}
}

// Skill returns the definition for key, or nil.
func (g *Graph) Skill(key string) *gamedata.SkillDef {
	return g.skills.GetByKey(key)
}

// Chain lists one tree from root to tip.
func (g *Graph) Chain(category gamedata.SkillCategory) []*gamedata.SkillDef {
	return g.skills.Chain(category)
}

// CanUnlock reports whether owner may unlock key now. The prerequisite is
// checked before the skill book.
func (g *Graph) CanUnlock(owner Owner, key string) (bool, Denial) {
	def := g.skills.GetByKey(key)
	if def == nil {
		return false, DenialUnknownSkill
	}
	if owner.HasSkill(key) {
		return false, DenialAlreadyUnlocked
	}
	if !def.IsRoot() && !owner.HasSkill(def.Prerequisite) {
		return false, DenialMissingPrerequisite
	}
	if _, ok := owner.SkillBook(); !ok {
		return false, DenialMissingResource
	}
	return true, DenialNone
}

// NodeState classifies key for owner.
func (g *Graph) NodeState(owner Owner, key string) NodeState {
	if owner.HasSkill(key) {
		return Unlocked
	}
	if ok, _ := g.CanUnlock(owner, key); ok {
		return Unlockable
	}
	return Locked
}

// Unlock spends one skill book and grants key. A denied unlock changes
// nothing. Unlocking an owned skill is always denied, so repeated calls
// spend at most one book.
func (g *Graph) Unlock(ctx context.Context, owner Owner, key string) Result {
	ok, denial := g.CanUnlock(owner, key)
	if !ok {
		g.logger.Debug("skill unlock denied", "skill", key, "reason", string(denial))
		return Result{Key: key, Denial: denial}
	}

	book, _ := owner.SkillBook()
	if !owner.RemoveItem(ctx, book, 1) {
		return Result{Key: key, Denial: DenialMissingResource}
	}
	owner.GrantSkill(ctx, key)
	g.bus.Publish(events.SkillUnlocked{Key: key})
	g.logger.Info("skill unlocked", "skill", key, "book", book)
	return Result{Key: key, Unlocked: true, Book: book}
}
