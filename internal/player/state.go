// Package player owns the player's stats, inventory and skill set for a
// session and keeps them in step with the persistence gateway.
package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/samdwyer/wanderhall/internal/config"
	"github.com/samdwyer/wanderhall/internal/entity"
	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/storage"
)

// Options are the collaborators a State runs against.
type Options struct {
	Gateway *storage.Gateway
	Items   *gamedata.ItemRegistry
	Balance config.Balance
	Bus     *events.Bus  // May be nil
	Logger  *slog.Logger // May be nil
}

// State is the player for one session. It is not safe for concurrent use.
//
// Write failures after a mutation are logged and never reported to the
// caller; the in-memory state stays authoritative.
type State struct {
	stats  entity.Stats
	inv    *entity.Inventory
	owned  []string
	hasKey map[string]bool

	gw     *storage.Gateway
	items  *gamedata.ItemRegistry
	bal    config.Balance
	bus    *events.Bus
	logger *slog.Logger
}

// New creates a player at the default stats with nothing loaded.
func New(opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &State{
		stats:  opts.Balance.DefaultStats(),
		inv:    entity.NewInventory(opts.Balance.InventoryCapacity),
		hasKey: make(map[string]bool),
		gw:     opts.Gateway,
		items:  opts.Items,
		bal:    opts.Balance,
		bus:    opts.Bus,
		logger: logger,
	}
}

// Load restores the player from the gateway. Persisted stats win over the
// defaults field by field and the merged bundle is written straight back.
// Unknown item keys are dropped.
func Load(ctx context.Context, opts Options) (*State, error) {
	p := New(opts)

	persisted, err := p.gw.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	for _, key := range entity.PersistentKeys {
		if v, ok := persisted.Get(key); ok {
			p.stats.Set(key, v)
		}
	}
	if err := p.gw.SaveStats(ctx, p.stats); err != nil {
		return nil, fmt.Errorf("save merged stats: %w", err)
	}

	slots, err := p.gw.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	for _, s := range slots {
		if p.items.GetByKey(s.Key) == nil {
			p.logger.Warn("dropping unknown item", "key", s.Key, "count", s.Count)
			continue
		}
		if !p.inv.Add(s.Key, s.Count) {
			p.logger.Warn("inventory full, dropping stored slot", "key", s.Key, "count", s.Count)
		}
	}

	skills, err := p.gw.LoadOwnedSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load owned skills: %w", err)
	}
	for _, key := range skills {
		p.addSkill(key)
	}

	p.logger.Debug("player loaded",
		"coins", p.stats.Coins,
		"slots", p.inv.Len(),
		"skills", len(p.owned),
	)
	return p, nil
}

// Stats returns a copy of the stat record.
func (p *State) Stats() entity.Stats { return p.stats }

// Inventory returns a copy of the inventory slots.
func (p *State) Inventory() []entity.Slot { return p.inv.Slots() }

// ItemCount returns how many units of key are held.
func (p *State) ItemCount(key string) int { return p.inv.Count(key) }

// InventoryFull reports whether a new key would be rejected.
func (p *State) InventoryFull() bool { return p.inv.IsFull() }

// OwnedSkills returns the owned skill keys in unlock order.
func (p *State) OwnedSkills() []string {
	out := make([]string, len(p.owned))
	copy(out, p.owned)
	return out
}

// HasSkill reports whether key is owned.
func (p *State) HasSkill(key string) bool { return p.hasKey[key] }

// Balance returns the tunables the player was built with.
func (p *State) Balance() config.Balance { return p.bal }

// GetHealth returns current health.
func (p *State) GetHealth() int { return p.stats.Health }

// GetDefense returns the remaining defense shield.
func (p *State) GetDefense() int { return p.stats.Defense }

// SetHealth stores health, clamped at zero.
func (p *State) SetHealth(v int) { p.set(entity.StatHealth, v) }

// SetDefense stores defense, clamped at zero.
func (p *State) SetDefense(v int) { p.set(entity.StatDefense, v) }

// SetMana stores mana, clamped at zero.
func (p *State) SetMana(v int) { p.set(entity.StatMana, v) }

// AddCoins adds n coins (n may be negative; the total never drops below
// zero) and persists the stat bundle.
func (p *State) AddCoins(ctx context.Context, n int) {
	if n == 0 {
		return
	}
	if p.set(entity.StatCoins, p.stats.Coins+n) {
		p.persistStats(ctx)
	}
}

// RefillBattleStats resets health, defense and mana to the battle defaults.
func (p *State) RefillBattleStats() {
	p.set(entity.StatHealth, p.bal.Battle.Health)
	p.set(entity.StatDefense, p.bal.Battle.Defense)
	p.set(entity.StatMana, p.bal.Battle.Mana)
}

// PersistStats writes the persistent stat subset.
func (p *State) PersistStats(ctx context.Context) error {
	if err := p.gw.SaveStats(ctx, p.stats); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}

// GrantSkill adds key to the owned set and persists it. It returns false if
// the skill was already owned.
func (p *State) GrantSkill(ctx context.Context, key string) bool {
	if !p.addSkill(key) {
		return false
	}
	if err := p.gw.SaveOwnedSkills(ctx, p.owned); err != nil {
		p.logger.Warn("persist owned skills failed", "skill", key, "error", err)
	}
	return true
}

// Reset clears every persisted document and returns the player to the
// defaults with an empty inventory and no skills.
func (p *State) Reset(ctx context.Context) error {
	if err := p.gw.Reset(ctx); err != nil {
		return err
	}
	defaults := p.bal.DefaultStats()
	for _, key := range append(append([]entity.StatKey{}, entity.BattleKeys...), entity.PersistentKeys...) {
		p.set(key, defaults.Get(key))
	}
	p.inv.Clear()
	p.owned = nil
	p.hasKey = make(map[string]bool)
	p.publish(events.InventoryChanged{Slots: p.inv.Slots()})
	return p.PersistStats(ctx)
}

// set stores a stat and publishes StatChanged when the value moved.
func (p *State) set(key entity.StatKey, v int) bool {
	old, stored := p.stats.Set(key, v)
	if old == stored {
		return false
	}
	p.publish(events.StatChanged{Key: key, Old: old, New: stored})
	return true
}

func (p *State) addSkill(key string) bool {
	if key == "" || p.hasKey[key] {
		return false
	}
	p.hasKey[key] = true
	p.owned = append(p.owned, key)
	return true
}

func (p *State) persistStats(ctx context.Context) {
	if err := p.PersistStats(ctx); err != nil {
		p.logger.Warn("persist stats failed", "error", err)
	}
}

func (p *State) publish(e events.Event) {
	p.bus.Publish(e)
}
