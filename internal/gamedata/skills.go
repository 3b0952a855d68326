package gamedata

// =============================================================================
// SKILL TREE DESIGN
// =============================================================================
//
// Skills are grouped into four categories. Every category is a single linear
// chain: the first skill has no prerequisite and each later skill requires
// the one before it. Chain order is the order skills appear in skills.json.
//
//   offensive  x10  magnitude: damage
//   defensive  x5   magnitude: defenseBoost
//   magic      x5   magnitude: manaCost
//   utility    x5   magnitude: speedBoost
//
// JSON Schema:
// ------------
// {
//   "key": "power_strike",
//   "name": "Power Strike",
//   "description": "A heavy two-handed blow",
//   "category": "offensive",
//   "cooldown": 2,
//   "prerequisite": "slash",
//   "damage": 18
// }
//
// Unlocking a skill needs its prerequisite owned and one skill book in the
// inventory. The skill book is spent; the prerequisite is not.

// SkillCategory names one of the four skill trees.
type SkillCategory string

const (
	CategoryOffensive SkillCategory = "offensive"
	CategoryDefensive SkillCategory = "defensive"
	CategoryMagic     SkillCategory = "magic"
	CategoryUtility   SkillCategory = "utility"
)

// Categories lists the skill trees in display order.
var Categories = []SkillCategory{
	CategoryOffensive,
	CategoryDefensive,
	CategoryMagic,
	CategoryUtility,
}

// SkillDef defines a skill loaded from JSON.
type SkillDef struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     SkillCategory `json:"category"`
	Cooldown     int           `json:"cooldown"`
	Prerequisite string        `json:"prerequisite,omitempty"` // Empty for the root of a chain
	Damage       int           `json:"damage,omitempty"`
	DefenseBoost int           `json:"defenseBoost,omitempty"`
	ManaCost     int           `json:"manaCost,omitempty"`
	SpeedBoost   int           `json:"speedBoost,omitempty"`
}

// Magnitude returns the effect field that belongs to the skill's category.
func (s *SkillDef) Magnitude() int {
	switch s.Category {
	case CategoryOffensive:
		return s.Damage
	case CategoryDefensive:
		return s.DefenseBoost
	case CategoryMagic:
		return s.ManaCost
	case CategoryUtility:
		return s.SpeedBoost
	default:
		return 0
	}
}

// IsRoot returns true if the skill has no prerequisite.
func (s *SkillDef) IsRoot() bool {
	return s.Prerequisite == ""
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads skill definitions from the embedded skills.json file.
func LoadSkills() ([]SkillDef, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	return file.Skills, nil
}
