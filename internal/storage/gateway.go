package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/wanderhall/internal/entity"
)

// Keys of the persisted documents.
const (
	KeyStats         = "playerPersistentStats"
	KeyInventory     = "inventory" // Legacy flat list of item keys or {key} objects
	KeyInventoryData = "inventoryData"
	KeyOwnedSkills   = "ownedSkills"
)

// PersistedStats is the persistent stat bundle as read back from storage.
// A nil field was absent or unreadable.
type PersistedStats struct {
	Coins   *int
	Attack  *int
	Speed   *int
	Luck    *int
	Agility *int
}

// Get returns the stored value for a persistent stat key.
func (p PersistedStats) Get(key entity.StatKey) (int, bool) {
	var v *int
	switch key {
	case entity.StatCoins:
		v = p.Coins
	case entity.StatAttack:
		v = p.Attack
	case entity.StatSpeed:
		v = p.Speed
	case entity.StatLuck:
		v = p.Luck
	case entity.StatAgility:
		v = p.Agility
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Gateway gives typed access to the persisted player documents.
//
// Load methods never fail on malformed content: unreadable fields and
// entries are dropped so the caller can merge whatever survives with its
// defaults. They only return errors from the underlying store.
type Gateway struct {
	store Store
}

// NewGateway wraps a store.
func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// Store returns the underlying store.
func (g *Gateway) Store() Store {
	return g.store
}

// LoadStats reads the stat bundle field by field.
func (g *Gateway) LoadStats(ctx context.Context) (PersistedStats, error) {
	var out PersistedStats
	raw, err := g.get(ctx, KeyStats)
	if err != nil || raw == nil {
		return out, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, nil
	}

	out.Coins = decodeStat(fields[string(entity.StatCoins)])
	out.Attack = decodeStat(fields[string(entity.StatAttack)])
	out.Speed = decodeStat(fields[string(entity.StatSpeed)])
	out.Luck = decodeStat(fields[string(entity.StatLuck)])
	out.Agility = decodeStat(fields[string(entity.StatAgility)])
	return out, nil
}

// SaveStats writes the persistent subset of s.
func (g *Gateway) SaveStats(ctx context.Context, s entity.Stats) error {
	bundle := make(map[string]int, len(entity.PersistentKeys))
	for _, key := range entity.PersistentKeys {
		bundle[string(key)] = s.Get(key)
	}
	return g.put(ctx, KeyStats, bundle)
}

// LoadInventory reads inventoryData, falling back to the legacy flat list
// when inventoryData is absent or null. Slots come back in stored order;
// repeated keys are merged into the first slot holding them.
func (g *Gateway) LoadInventory(ctx context.Context) ([]entity.Slot, error) {
	raw, err := g.get(ctx, KeyInventoryData)
	if err != nil {
		return nil, err
	}
	if raw != nil && !isNull(raw) {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			return decodeSlots(entries), nil
		}
	}

	raw, err = g.get(ctx, KeyInventory)
	if err != nil || raw == nil {
		return nil, err
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil
	}
	return decodeLegacy(entries), nil
}

// SaveInventory writes the slots to inventoryData and the flattened keys
// to the legacy inventory list.
func (g *Gateway) SaveInventory(ctx context.Context, slots []entity.Slot) error {
	if slots == nil {
		slots = []entity.Slot{}
	}
	if err := g.put(ctx, KeyInventoryData, slots); err != nil {
		return err
	}
	flat := []string{}
	for _, s := range slots {
		for i := 0; i < s.Count; i++ {
			flat = append(flat, s.Key)
		}
	}
	return g.put(ctx, KeyInventory, flat)
}

// LoadOwnedSkills reads the owned skill keys, skipping non-string and
// duplicate entries.
func (g *Gateway) LoadOwnedSkills(ctx context.Context) ([]string, error) {
	raw, err := g.get(ctx, KeyOwnedSkills)
	if err != nil || raw == nil {
		return nil, err
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil
	}

	seen := make(map[string]bool, len(entries))
	var keys []string
	for _, e := range entries {
		var key string
		if err := json.Unmarshal(e, &key); err != nil || key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}

// SaveOwnedSkills writes the owned skill keys.
func (g *Gateway) SaveOwnedSkills(ctx context.Context, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	return g.put(ctx, KeyOwnedSkills, keys)
}

// Reset removes every persisted document.
func (g *Gateway) Reset(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

func (g *Gateway) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := g.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return raw, nil
}

func (g *Gateway) put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// decodeStat accepts any finite, non-negative JSON number and floors it.
func decodeStat(raw json.RawMessage) *int {
	if raw == nil || isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return nil
	}
	v := int(math.Floor(f))
	return &v
}

type slotJSON struct {
	Key   string   `json:"key"`
	Count *float64 `json:"count"`
}

func decodeSlots(entries []json.RawMessage) []entity.Slot {
	var slots []entity.Slot
	for _, e := range entries {
		if isNull(e) {
			continue
		}
		var s slotJSON
		if err := json.Unmarshal(e, &s); err != nil || s.Key == "" {
			continue
		}
		count := 1
		if s.Count != nil {
			if *s.Count < 1 || *s.Count > math.MaxInt32 {
				continue
			}
			count = int(math.Floor(*s.Count))
		}
		slots = mergeSlot(slots, s.Key, count)
	}
	return slots
}

func decodeLegacy(entries []json.RawMessage) []entity.Slot {
	var slots []entity.Slot
	for _, e := range entries {
		var key string
		if err := json.Unmarshal(e, &key); err != nil {
			var obj slotJSON
			if err := json.Unmarshal(e, &obj); err != nil {
				continue
			}
			key = obj.Key
		}
		if key == "" {
			continue
		}
		slots = mergeSlot(slots, key, 1)
	}
	return slots
}

func mergeSlot(slots []entity.Slot, key string, count int) []entity.Slot {
	for i := range slots {
		if slots[i].Key == key {
			slots[i].Count += count
			return slots
		}
	}
	return append(slots, entity.Slot{Key: key, Count: count})
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
