package player

import (
	"context"

	"github.com/samdwyer/wanderhall/internal/entity"
	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/gamedata"
)

// AddItem stacks n units of a catalog item and persists the inventory.
// It returns false for unknown keys or when no slot is free.
func (p *State) AddItem(ctx context.Context, key string, n int) bool {
	if p.items.GetByKey(key) == nil {
		return false
	}
	if !p.inv.Add(key, n) {
		return false
	}
	p.inventoryChanged(ctx)
	return true
}

// RemoveItem takes n units of key and persists the inventory. It returns
// false if fewer than n are held.
func (p *State) RemoveItem(ctx context.Context, key string, n int) bool {
	if !p.inv.Remove(key, n) {
		return false
	}
	p.inventoryChanged(ctx)
	return true
}

// SkillBook returns the key of the first held skill book.
func (p *State) SkillBook() (string, bool) {
	for _, s := range p.inv.Slots() {
		if def := p.items.GetByKey(s.Key); def != nil && def.IsSkillBook() {
			return s.Key, true
		}
	}
	return "", false
}

// UseConsumable applies a held consumable's effects and spends one unit.
// Skill books and items without a stat effect are rejected.
func (p *State) UseConsumable(ctx context.Context, key string) bool {
	def := p.items.GetByKey(key)
	if def == nil || !p.inv.Has(key) {
		return false
	}
	effects, ok := def.Consumable()
	if !ok || !effects.HasStatEffect() {
		return false
	}

	p.inv.Remove(key, 1)
	persistent := p.apply(effects)
	p.inventoryChanged(ctx)
	if persistent {
		p.persistStats(ctx)
	}
	p.logger.Debug("consumable used", "item", key)
	return true
}

// apply adds the effects to the stats and reports whether a persistent
// stat moved.
func (p *State) apply(e gamedata.Effects) bool {
	p.set(entity.StatHealth, p.stats.Health+e.HealthRestore)
	p.set(entity.StatMana, p.stats.Mana+e.ManaRestore)
	p.set(entity.StatDefense, p.stats.Defense+e.DefenseRestore)
	luck := p.set(entity.StatLuck, p.stats.Luck+e.LuckBoost)
	agility := p.set(entity.StatAgility, p.stats.Agility+e.DodgeBoost)
	return luck || agility
}

// Buy debits an item's price and stacks one unit. Free items, items the
// player cannot afford and new keys with a full inventory are rejected.
func (p *State) Buy(ctx context.Context, key string) bool {
	def := p.items.GetByKey(key)
	if def == nil || def.Price <= 0 || p.stats.Coins < def.Price {
		return false
	}
	if !p.inv.Add(key, 1) {
		return false
	}
	p.set(entity.StatCoins, p.stats.Coins-def.Price)
	p.inventoryChanged(ctx)
	p.persistStats(ctx)
	p.logger.Debug("item bought", "item", key, "price", def.Price)
	return true
}

// Sell removes one held unit and credits half its price, rounded down.
func (p *State) Sell(ctx context.Context, key string) bool {
	def := p.items.GetByKey(key)
	if def == nil || !p.inv.Remove(key, 1) {
		return false
	}
	p.inventoryChanged(ctx)
	if credit := def.Price / 2; credit > 0 {
		p.set(entity.StatCoins, p.stats.Coins+credit)
		p.persistStats(ctx)
	}
	p.logger.Debug("item sold", "item", key, "price", def.Price)
	return true
}

func (p *State) inventoryChanged(ctx context.Context) {
	slots := p.inv.Slots()
	p.publish(events.InventoryChanged{Slots: slots})
	if err := p.gw.SaveInventory(ctx, slots); err != nil {
		p.logger.Warn("persist inventory failed", "error", err)
	}
}
