// Package loot provides the weighted reward table victories draw from.
package loot

import (
	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/gamedata"
)

// Entry is one obtainable item and its sampling weight.
type Entry struct {
	Key    string
	Weight int
}

// Table samples loot items by cumulative weight in catalog order.
type Table struct {
	entries     []Entry
	totalWeight int
}

// NewTable builds a table from entries, skipping any without a positive weight.
func NewTable(entries []Entry) *Table {
	t := &Table{}
	for _, e := range entries {
		if e.Key == "" || e.Weight <= 0 {
			continue
		}
		t.entries = append(t.entries, e)
		t.totalWeight += e.Weight
	}
	return t
}

// FromCatalog builds a table from every loot-type item in the registry.
func FromCatalog(items *gamedata.ItemRegistry) *Table {
	var entries []Entry
	for _, item := range items.OfType(gamedata.ItemLoot) {
		w, _ := item.LootWeight()
		entries = append(entries, Entry{Key: item.Key, Weight: w})
	}
	return NewTable(entries)
}

// ChooseOne draws an integer in [1, totalWeight] and returns the first entry
// whose cumulative weight reaches it. It returns "" when the table is empty.
func (t *Table) ChooseOne(rng dice.Roller) string {
	if t.totalWeight <= 0 {
		return ""
	}

	roll := rng.Intn(t.totalWeight) + 1

	cumulative := 0
	for _, e := range t.entries {
		cumulative += e.Weight
		if cumulative >= roll {
			return e.Key
		}
	}

	return t.entries[len(t.entries)-1].Key
}

// ChooseMany draws n items independently, with replacement. Duplicates are
// expected. It returns nil when the table is empty or n <= 0.
func (t *Table) ChooseMany(rng dice.Roller, n int) []string {
	if t.totalWeight <= 0 || n <= 0 {
		return nil
	}
	result := make([]string, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, t.ChooseOne(rng))
	}
	return result
}

// Entries returns the sampled entries in order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// TotalWeight returns the sum of all entry weights.
func (t *Table) TotalWeight() int {
	return t.totalWeight
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
