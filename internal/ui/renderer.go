package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wanderhall/internal/game"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/skills"
)

// Line is one row of the HUD.
type Line struct {
	Text  string
	Style tcell.Style
}

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlain  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleReward = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Renderer handles drawing the session to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the HUD for the session's current state.
func (r *Renderer) Render(s *game.Session, log []string) {
	r.screen.Clear()
	for y, line := range Lines(s, log) {
		r.screen.DrawText(0, y, line.Text, line.Style)
	}
	r.screen.Show()
}

// Lines lays out the HUD as text rows.
func Lines(s *game.Session, log []string) []Line {
	var lines []Line
	if s.State() == game.StateBattle {
		lines = battleLines(s)
	} else {
		lines = exploreLines(s)
	}

	lines = append(lines, Line{})
	for _, msg := range log {
		lines = append(lines, Line{Text: msg, Style: styleDim})
	}
	return lines
}

func battleLines(s *game.Session) []Line {
	b := s.Battle()
	m := b.Monster()
	st := s.Player().Stats()

	lines := []Line{
		{Text: fmt.Sprintf("== %s ==  (%s)", m.Name, m.RewardTier), Style: tcell.StyleDefault.Foreground(m.Color()).Bold(true)},
		{Text: fmt.Sprintf("Monster  HP %d/%d  DEF %d  ATK %d", m.Health, m.MaxHealth, m.Defense, m.Attack), Style: stylePlain},
		{Text: fmt.Sprintf("You      HP %d  DEF %d  MANA %d  ATK %d  LUCK %d", st.Health, st.Defense, st.Mana, st.Attack, st.Luck), Style: stylePlain},
		{},
		{Text: b.LastMessage(), Style: stylePlain},
	}

	switch {
	case b.Phase() == game.PhaseMonsterTurn:
		lines = append(lines, Line{Text: fmt.Sprintf("The %s is about to strike...", m.Name), Style: styleAlert})
	case b.Guarding():
		lines = append(lines, Line{Text: "Guard raised.", Style: styleDim})
	}

	lines = append(lines,
		Line{},
		Line{Text: "[a] attack  [g] guard  [r] run  [s] skills  [h] health potion", Style: styleDim},
	)
	return lines
}

func exploreLines(s *game.Session) []Line {
	p := s.Player()
	st := p.Stats()

	lines := []Line{
		{Text: "== Wanderhall ==", Style: styleTitle},
		{Text: fmt.Sprintf("Coins %d  ATK %d  SPD %d  LUCK %d  AGI %d", st.Coins, st.Attack, st.Speed, st.Luck, st.Agility), Style: stylePlain},
		{Text: "Bag: " + bagSummary(s), Style: stylePlain},
	}

	if b := s.Battle(); b != nil && b.Ended() {
		lines = append(lines, Line{Text: outcomeSummary(b), Style: styleReward})
	}

	lines = append(lines, Line{}, Line{Text: "Skills", Style: styleTitle})
	for _, category := range gamedata.Categories {
		lines = append(lines, Line{Text: chainSummary(s, category), Style: stylePlain})
	}

	lines = append(lines,
		Line{},
		Line{Text: "[b] battle  [u] unlock next skill  [p] buy potion  [k] buy skill book  [h] drink potion  [R] reset  [q] quit", Style: styleDim},
	)
	return lines
}

func bagSummary(s *game.Session) string {
	slots := s.Player().Inventory()
	if len(slots) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		name := slot.Key
		if def := s.Catalog().Items.GetByKey(slot.Key); def != nil {
			name = def.Name
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, slot.Count))
	}
	return strings.Join(parts, ", ")
}

func outcomeSummary(b *game.Battle) string {
	switch b.Outcome() {
	case game.OutcomeVictory:
		r := b.Reward()
		text := fmt.Sprintf("Last battle: victory, +%d coins", r.Coins)
		if len(r.Loot) > 0 {
			text += ", loot: " + strings.Join(r.Loot, ", ")
		}
		return text
	case game.OutcomeDefeat:
		return "Last battle: defeat"
	case game.OutcomeFled:
		return "Last battle: escaped"
	default:
		return ""
	}
}

// chainSummary shows progress through one tree and its next node.
func chainSummary(s *game.Session, category gamedata.SkillCategory) string {
	graph := s.Graph()
	chain := graph.Chain(category)
	owned := 0
	next := ""
	for _, def := range chain {
		state := graph.NodeState(s.Player(), def.Key)
		if state == skills.Unlocked {
			owned++
			continue
		}
		if next == "" {
			next = fmt.Sprintf("  next: %s (%s)", def.Name, state)
		}
	}
	return fmt.Sprintf("  %-9s %d/%d%s", category, owned, len(chain), next)
}
