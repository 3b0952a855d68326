package gamedata

import (
	"math/rand"
	"strings"
	"testing"
)

func TestLoadMonsters(t *testing.T) {
	monsters, err := LoadMonsters()
	if err != nil {
		t.Fatalf("Failed to load monsters: %v", err)
	}

	expectedIDs := map[string]bool{"slime": false, "goblin": false, "orc": false, "wyvern": false}
	for _, m := range monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
		if m.RewardTier == "" {
			t.Errorf("Monster %q has no reward tier", m.ID)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}
}

func TestMonsterRegistrySpawnDeterministic(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}

	if registry.GetByID("goblin") == nil {
		t.Error("Goblin not found by ID")
	}
	if registry.GetByID("dragon") != nil {
		t.Error("Unknown monster should not be found")
	}
}

func TestMonsterRegistryEmpty(t *testing.T) {
	registry := NewMonsterRegistry(nil)
	if got := registry.SpawnRandom(rand.New(rand.NewSource(1))); got != nil {
		t.Errorf("SpawnRandom on empty registry = %v, want nil", got)
	}
}

func TestSkillChains(t *testing.T) {
	registry, err := LoadSkillRegistry()
	if err != nil {
		t.Fatalf("Failed to load skills: %v", err)
	}

	sizes := map[SkillCategory]int{
		CategoryOffensive: 10,
		CategoryDefensive: 5,
		CategoryMagic:     5,
		CategoryUtility:   5,
	}
	for category, size := range sizes {
		chain := registry.Chain(category)
		if len(chain) != size {
			t.Errorf("%s chain has %d skills, want %d", category, len(chain), size)
			continue
		}
		if !chain[0].IsRoot() {
			t.Errorf("%s root %s has prerequisite %q", category, chain[0].Key, chain[0].Prerequisite)
		}
		for i := 1; i < len(chain); i++ {
			if chain[i].Prerequisite != chain[i-1].Key {
				t.Errorf("%s[%d] prerequisite = %q, want %q", category, i, chain[i].Prerequisite, chain[i-1].Key)
			}
			if chain[i].Magnitude() <= 0 {
				t.Errorf("%s has no %s magnitude", chain[i].Key, category)
			}
		}
	}
}

func TestSkillRegistryRejectsBranching(t *testing.T) {
	skills := []SkillDef{
		{Key: "a", Category: CategoryMagic},
		{Key: "b", Category: CategoryMagic, Prerequisite: "a"},
		{Key: "c", Category: CategoryMagic, Prerequisite: "a"},
	}
	_, err := NewSkillRegistry(skills)
	if err == nil {
		t.Fatal("expected branching chain to be rejected")
	}
	if !strings.Contains(err.Error(), "breaks the magic chain") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSkillRegistryRejectsUnknownCategory(t *testing.T) {
	if _, err := NewSkillRegistry([]SkillDef{{Key: "x", Category: "cooking"}}); err == nil {
		t.Fatal("expected unknown category to be rejected")
	}
}

func TestItemRegistry(t *testing.T) {
	registry, err := LoadItemRegistry()
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}

	book := registry.GetByKey("skill_book")
	if book == nil {
		t.Fatal("skill_book not found")
	}
	if !book.IsSkillBook() {
		t.Error("skill_book should pay for unlocks")
	}

	potion := registry.GetByKey("health_potion")
	effects, ok := potion.Consumable()
	if !ok || effects.HealthRestore <= 0 {
		t.Errorf("health_potion effects = %+v, %v", effects, ok)
	}
	if potion.IsSkillBook() {
		t.Error("health_potion is not a skill book")
	}

	for _, item := range registry.OfType(ItemLoot) {
		if w, ok := item.LootWeight(); !ok || w <= 0 {
			t.Errorf("loot item %s has weight %d", item.Key, w)
		}
	}
	if len(registry.OfType(ItemShop)) == 0 {
		t.Error("expected shop items in the catalog")
	}
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name  string
		item  ItemDef
		valid bool
	}{
		{"loot", ItemDef{Key: "gem", Type: ItemLoot, Weight: 3}, true},
		{"shop", ItemDef{Key: "map", Type: ItemShop, Price: 10}, true},
		{"consumable", ItemDef{Key: "pot", Type: ItemConsumable, Effects: &Effects{HealthRestore: 5}}, true},
		{"consumable without effects", ItemDef{Key: "pot", Type: ItemConsumable}, false},
		{"unknown type", ItemDef{Key: "x", Type: "weapon"}, false},
		{"missing key", ItemDef{Type: ItemLoot}, false},
		{"negative price", ItemDef{Key: "x", Type: ItemShop, Price: -1}, false},
	}

	for _, tt := range tests {
		err := tt.item.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#7744CC", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GGGGGG", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestMustLoadCatalog(t *testing.T) {
	catalog := MustLoadCatalog()
	if catalog.Items == nil || catalog.Skills == nil || catalog.Monsters == nil {
		t.Fatal("catalog has a nil registry")
	}
	if catalog.Skills.Count() != 25 {
		t.Errorf("skill count = %d, want 25", catalog.Skills.Count())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[ItemsFile]("weapons.json"); err == nil {
		t.Error("expected an error for a file that is not embedded")
	}
}
