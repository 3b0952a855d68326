package gamedata

import "fmt"

// ItemType tags which variant payload an item carries.
type ItemType string

const (
	ItemConsumable ItemType = "consumable"
	ItemLoot       ItemType = "loot"
	ItemShop       ItemType = "shop"
)

// Effects holds the restore and boost amounts of a consumable item.
// A skill book has UnlocksSkill set and usually no other effect.
type Effects struct {
	HealthRestore  int  `json:"healthRestore,omitempty"`
	ManaRestore    int  `json:"manaRestore,omitempty"`
	DefenseRestore int  `json:"defenseRestore,omitempty"`
	LuckBoost      int  `json:"luckBoost,omitempty"`
	DodgeBoost     int  `json:"dodgeBoost,omitempty"`
	UnlocksSkill   bool `json:"unlocksSkill,omitempty"`
}

// HasStatEffect reports whether applying the effects changes any stat.
func (e Effects) HasStatEffect() bool {
	return e.HealthRestore != 0 || e.ManaRestore != 0 || e.DefenseRestore != 0 ||
		e.LuckBoost != 0 || e.DodgeBoost != 0
}

// ItemDef defines a catalog item loaded from JSON.
//
// Only the payload matching Type is meaningful: Effects for consumables and
// Weight for loot. Use Consumable and LootWeight rather than reading the
// fields directly.
type ItemDef struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Type        ItemType `json:"type"`
	Effects     *Effects `json:"effects,omitempty"`
	Weight      int      `json:"weight,omitempty"` // Loot-table sampling weight
}

// Consumable returns the item's effects if it is a consumable.
func (i *ItemDef) Consumable() (Effects, bool) {
	if i.Type != ItemConsumable || i.Effects == nil {
		return Effects{}, false
	}
	return *i.Effects, true
}

// LootWeight returns the sampling weight if the item is loot.
func (i *ItemDef) LootWeight() (int, bool) {
	if i.Type != ItemLoot {
		return 0, false
	}
	return i.Weight, true
}

// IsSkillBook reports whether the item can pay for a skill unlock.
func (i *ItemDef) IsSkillBook() bool {
	effects, ok := i.Consumable()
	return ok && effects.UnlocksSkill
}

// Validate checks that the item carries the payload its type requires.
func (i *ItemDef) Validate() error {
	if i.Key == "" {
		return fmt.Errorf("item %q: key is required", i.Name)
	}
	if i.Price < 0 {
		return fmt.Errorf("item %s: price must be >= 0, got %d", i.Key, i.Price)
	}
	switch i.Type {
	case ItemConsumable:
		if i.Effects == nil {
			return fmt.Errorf("item %s: consumable without effects", i.Key)
		}
	case ItemLoot, ItemShop:
	default:
		return fmt.Errorf("item %s: unknown type %q", i.Key, i.Type)
	}
	return nil
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
