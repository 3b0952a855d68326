package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/wanderhall/internal/dice"
)

// MonsterRegistry holds loaded monster archetypes and provides spawning utilities.
type MonsterRegistry struct {
	monsters    []MonsterDef
	totalWeight int
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(monsters []MonsterDef) *MonsterRegistry {
	totalWeight := 0
	for _, m := range monsters {
		if m.SpawnWeight > 0 {
			totalWeight += m.SpawnWeight
		}
	}
	return &MonsterRegistry{
		monsters:    monsters,
		totalWeight: totalWeight,
	}
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(monsters), nil
}

// SpawnRandom selects a random monster archetype using weighted probability.
// Monsters with higher spawnWeight are more likely to be selected.
func (r *MonsterRegistry) SpawnRandom(rng dice.Roller) *MonsterDef {
	if r.totalWeight <= 0 || len(r.monsters) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.monsters {
		if r.monsters[i].SpawnWeight <= 0 {
			continue
		}
		cumulative += r.monsters[i].SpawnWeight
		if roll < cumulative {
			return &r.monsters[i]
		}
	}

	return &r.monsters[0]
}

// GetByID returns the monster definition with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// Count returns the number of monster archetypes in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds item definitions in catalog order.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry validates item definitions and indexes them by key.
func NewItemRegistry(items []ItemDef) (*ItemRegistry, error) {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef, len(items)),
		all:   items,
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.items[items[i].Key]; dup {
			return nil, fmt.Errorf("duplicate item key %s", items[i].Key)
		}
		registry.items[items[i].Key] = &items[i]
	}
	return registry, nil
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items)
}

// GetByKey returns the item with the given key, or nil if not found.
func (r *ItemRegistry) GetByKey(key string) *ItemDef {
	return r.items[key]
}

// OfType returns the items of one type in catalog order.
func (r *ItemRegistry) OfType(t ItemType) []ItemDef {
	var result []ItemDef
	for _, item := range r.all {
		if item.Type == t {
			result = append(result, item)
		}
	}
	return result
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// =============================================================================
// SkillRegistry
// =============================================================================

// SkillRegistry holds skill definitions and the per-category chain order.
type SkillRegistry struct {
	skills map[string]*SkillDef
	chains map[SkillCategory][]*SkillDef
	all    []SkillDef
}

// NewSkillRegistry creates a registry and checks that every category forms
// a single linear chain in file order.
func NewSkillRegistry(skills []SkillDef) (*SkillRegistry, error) {
	registry := &SkillRegistry{
		skills: make(map[string]*SkillDef, len(skills)),
		chains: make(map[SkillCategory][]*SkillDef),
		all:    skills,
	}
	for i := range skills {
		s := &skills[i]
		if s.Key == "" {
			return nil, fmt.Errorf("skill %q: key is required", s.Name)
		}
		if _, dup := registry.skills[s.Key]; dup {
			return nil, fmt.Errorf("duplicate skill key %s", s.Key)
		}
		if !knownCategory(s.Category) {
			return nil, fmt.Errorf("skill %s: unknown category %q", s.Key, s.Category)
		}

		chain := registry.chains[s.Category]
		want := ""
		if len(chain) > 0 {
			want = chain[len(chain)-1].Key
		}
		if s.Prerequisite != want {
			return nil, fmt.Errorf("skill %s: prerequisite %q breaks the %s chain, want %q",
				s.Key, s.Prerequisite, s.Category, want)
		}

		registry.skills[s.Key] = s
		registry.chains[s.Category] = append(chain, s)
	}
	return registry, nil
}

// LoadSkillRegistry loads and creates a registry from the embedded skills.json.
func LoadSkillRegistry() (*SkillRegistry, error) {
	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, errors.New("no skills loaded from skills.json")
	}
	return NewSkillRegistry(skills)
}

// GetByKey returns the skill with the given key, or nil if not found.
func (r *SkillRegistry) GetByKey(key string) *SkillDef {
	return r.skills[key]
}

// Chain returns the skills of one category from root to tip.
func (r *SkillRegistry) Chain(category SkillCategory) []*SkillDef {
	return r.chains[category]
}

// All returns all skill definitions.
func (r *SkillRegistry) All() []SkillDef {
	return r.all
}

// Count returns the number of skills in the registry.
func (r *SkillRegistry) Count() int {
	return len(r.all)
}

func knownCategory(c SkillCategory) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles the three registries the game runs on.
type Catalog struct {
	Items    *ItemRegistry
	Skills   *SkillRegistry
	Monsters *MonsterRegistry
}

// LoadCatalog loads every embedded registry.
func LoadCatalog() (*Catalog, error) {
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	skills, err := LoadSkillRegistry()
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	monsters, err := LoadMonsterRegistry()
	if err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	return &Catalog{Items: items, Skills: skills, Monsters: monsters}, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}
