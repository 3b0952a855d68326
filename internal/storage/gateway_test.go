package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/samdwyer/wanderhall/internal/entity"
)

func put(t *testing.T, s Store, key, value string) {
	t.Helper()
	if err := s.Put(context.Background(), key, []byte(value)); err != nil {
		t.Fatalf("put %s: %v", key, err)
	}
}

func TestLoadStatsAbsent(t *testing.T) {
	gw := NewGateway(NewMemory())
	stats, err := gw.LoadStats(context.Background())
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats != (PersistedStats{}) {
		t.Errorf("absent bundle = %+v, want empty", stats)
	}
}

func TestLoadStatsPartialAndCorruptFields(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyStats, `{"attack": 99, "luck": "lots", "speed": null, "coins": 12.7, "agility": -4}`)

	stats, err := NewGateway(mem).LoadStats(context.Background())
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}

	if v, ok := stats.Get(entity.StatAttack); !ok || v != 99 {
		t.Errorf("attack = %d, %v; want 99", v, ok)
	}
	if v, ok := stats.Get(entity.StatCoins); !ok || v != 12 {
		t.Errorf("coins = %d, %v; want floored 12", v, ok)
	}
	for _, key := range []entity.StatKey{entity.StatLuck, entity.StatSpeed, entity.StatAgility} {
		if _, ok := stats.Get(key); ok {
			t.Errorf("%s should be dropped", key)
		}
	}
}

func TestLoadStatsGarbageDocument(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyStats, `[1,2,3]`)
	stats, err := NewGateway(mem).LoadStats(context.Background())
	if err != nil || stats != (PersistedStats{}) {
		t.Errorf("LoadStats = %+v, %v; want empty, nil", stats, err)
	}
}

func TestSaveStatsWritesPersistentSubset(t *testing.T) {
	mem := NewMemory()
	gw := NewGateway(mem)
	s := entity.Stats{Health: 5, Defense: 6, Mana: 7, Attack: 8, Speed: 9, Luck: 10, Agility: 11, Coins: 12}
	if err := gw.SaveStats(context.Background(), s); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}

	raw, _ := mem.Get(context.Background(), KeyStats)
	want := `{"agility":11,"attack":8,"coins":12,"luck":10,"speed":9}`
	if string(raw) != want {
		t.Errorf("stored %s, want %s", raw, want)
	}
}

func TestInventoryRoundTripWritesBothKeys(t *testing.T) {
	mem := NewMemory()
	gw := NewGateway(mem)
	ctx := context.Background()
	slots := []entity.Slot{{Key: "potion", Count: 2}, {Key: "gem", Count: 1}}

	if err := gw.SaveInventory(ctx, slots); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	got, err := gw.LoadInventory(ctx)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if !reflect.DeepEqual(got, slots) {
		t.Errorf("LoadInventory = %v, want %v", got, slots)
	}

	legacy, _ := mem.Get(ctx, KeyInventory)
	if string(legacy) != `["potion","potion","gem"]` {
		t.Errorf("legacy list = %s", legacy)
	}
}

func TestLoadInventoryFallsBackToLegacy(t *testing.T) {
	tests := []struct {
		name string
		data string // inventoryData, "" for absent
	}{
		{"absent", ""},
		{"null", "null"},
	}

	for _, tt := range tests {
		mem := NewMemory()
		if tt.data != "" {
			put(t, mem, KeyInventoryData, tt.data)
		}
		put(t, mem, KeyInventory, `["potion", {"key": "gem"}, "potion", 17, {"name": "x"}]`)

		got, err := NewGateway(mem).LoadInventory(context.Background())
		if err != nil {
			t.Fatalf("%s: LoadInventory: %v", tt.name, err)
		}
		want := []entity.Slot{{Key: "potion", Count: 2}, {Key: "gem", Count: 1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: LoadInventory = %v, want %v", tt.name, got, want)
		}
	}
}

func TestLoadInventorySkipsBadSlots(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyInventoryData, `[{"key":"potion","count":3}, null, {"count":2}, {"key":"gem","count":0}, {"key":"book"}, {"key":"potion","count":1}]`)

	got, err := NewGateway(mem).LoadInventory(context.Background())
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	want := []entity.Slot{{Key: "potion", Count: 4}, {Key: "book", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadInventory = %v, want %v", got, want)
	}
}

func TestLoadInventoryRejectsOutOfRangeCounts(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyInventoryData, `[{"key":"gem","count":1e19}, {"key":"ore","count":2147483648}, {"key":"dust","count":-3}, {"key":"potion","count":2.9}]`)

	got, err := NewGateway(mem).LoadInventory(context.Background())
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	want := []entity.Slot{{Key: "potion", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadInventory = %v, want %v", got, want)
	}
}

func TestLoadInventoryEmptyDataDoesNotUseLegacy(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyInventoryData, `[]`)
	put(t, mem, KeyInventory, `["potion"]`)

	got, _ := NewGateway(mem).LoadInventory(context.Background())
	if len(got) != 0 {
		t.Errorf("LoadInventory = %v, want empty", got)
	}
}

func TestOwnedSkills(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyOwnedSkills, `["slash", 3, "slash", "", "brace"]`)

	got, err := NewGateway(mem).LoadOwnedSkills(context.Background())
	if err != nil {
		t.Fatalf("LoadOwnedSkills: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"slash", "brace"}) {
		t.Errorf("LoadOwnedSkills = %v", got)
	}

	gw := NewGateway(mem)
	if err := gw.SaveOwnedSkills(context.Background(), nil); err != nil {
		t.Fatalf("SaveOwnedSkills: %v", err)
	}
	raw, _ := mem.Get(context.Background(), KeyOwnedSkills)
	if string(raw) != `[]` {
		t.Errorf("nil skills stored as %s, want []", raw)
	}
}

func TestReset(t *testing.T) {
	mem := NewMemory()
	put(t, mem, KeyStats, `{}`)
	put(t, mem, KeyOwnedSkills, `[]`)

	if err := NewGateway(mem).Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mem.Keys() != 0 {
		t.Errorf("%d keys left after reset", mem.Keys())
	}
}
