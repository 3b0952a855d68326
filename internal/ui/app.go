package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wanderhall/internal/events"
	"github.com/samdwyer/wanderhall/internal/game"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/skills"
)

// MonsterDelay is how long the monster waits before striking back.
const MonsterDelay = 500 * time.Millisecond

const maxLogLines = 6

// App drives a session from the terminal. The session is only touched on
// the goroutine running Run.
type App struct {
	screen   *Screen
	renderer *Renderer
	session  *game.Session
	logger   *slog.Logger

	log        []string
	running    bool
	delay      time.Duration
	monsterDue <-chan time.Time
}

// NewApp creates an app and subscribes it to the session's events.
func NewApp(screen *Screen, session *game.Session, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		session:  session,
		logger:   logger,
		running:  true,
		delay:    MonsterDelay,
	}
	session.Bus().Subscribe(a.onEvent)
	return a
}

// Log returns the recent message lines.
func (a *App) Log() []string { return a.log }

// Run renders and processes input until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	for a.running {
		a.renderer.Render(a.session, a.log)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.HandleKey(ctx, ev)
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-a.monsterDue:
			a.ResolveMonsterTurn(ctx)
		}
	}
	return nil
}

// HandleKey maps one key press to a session intent.
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	if a.session.State() == game.StateBattle {
		a.handleBattleKey(ctx, ev.Rune())
		return
	}
	a.handleExploreKey(ctx, ev.Rune())
}

// ResolveMonsterTurn runs the pending monster turn, if any.
func (a *App) ResolveMonsterTurn(ctx context.Context) {
	a.monsterDue = nil
	b := a.session.Battle()
	if b == nil {
		return
	}
	if step := b.ResolveMonsterTurn(ctx); step.Accepted {
		a.say(step.Message)
	}
}

// MonsterTurnPending reports whether a monster turn is scheduled.
func (a *App) MonsterTurnPending() bool { return a.monsterDue != nil }

func (a *App) handleBattleKey(ctx context.Context, r rune) {
	var action game.Action
	switch r {
	case 'a':
		action = game.ActionAttack
	case 'g':
		action = game.ActionGuard
	case 'r':
		action = game.ActionRun
	case 's':
		action = game.ActionSkills
	case 'h':
		a.drink(ctx)
		return
	case 'q':
		a.running = false
		return
	default:
		return
	}

	step := a.session.Battle().Submit(ctx, action)
	if !step.Accepted {
		return
	}
	switch {
	case action == game.ActionSkills:
		a.say(skillList(a.session, step.Skills))
	case step.Message != "":
		a.say(step.Message)
	}
	if step.PendingMonsterTurn {
		a.monsterDue = time.After(a.delay)
	}
}

func (a *App) handleExploreKey(ctx context.Context, r rune) {
	switch r {
	case 'b':
		b, err := a.session.StartBattle(ctx)
		if err != nil {
			a.logger.Warn("start battle failed", "error", err)
			return
		}
		a.say(b.LastMessage())
	case 'u':
		a.unlockNext(ctx)
	case 'p':
		a.buy(ctx, "health_potion")
	case 'k':
		a.buy(ctx, "skill_book")
	case 'h':
		a.drink(ctx)
	case 'R':
		if err := a.session.ResetAll(ctx); err != nil {
			a.logger.Error("reset failed", "error", err)
			a.say("Reset failed.")
			return
		}
		a.log = nil
		a.say("All progress reset.")
	case 'q':
		a.running = false
	}
}

// unlockNext tries the first node that is not yet owned, tree by tree.
func (a *App) unlockNext(ctx context.Context) {
	graph := a.session.Graph()
	var firstDenial skills.Result
	for _, category := range gamedata.Categories {
		for _, def := range graph.Chain(category) {
			if a.session.Player().HasSkill(def.Key) {
				continue
			}
			result := a.session.AttemptUnlock(ctx, def.Key)
			if result.Unlocked {
				return
			}
			if firstDenial.Key == "" {
				firstDenial = result
			}
			break
		}
	}
	if firstDenial.Key != "" {
		a.say(fmt.Sprintf("Cannot learn %s: %s.", firstDenial.Key, firstDenial.Denial))
	}
}

func (a *App) buy(ctx context.Context, key string) {
	name := key
	if def := a.session.Catalog().Items.GetByKey(key); def != nil {
		name = def.Name
	}
	if a.session.Buy(ctx, key) {
		a.say("Bought " + name + ".")
		return
	}
	a.say("Cannot buy " + name + ".")
}

func (a *App) drink(ctx context.Context) {
	if a.session.UseConsumable(ctx, "health_potion") {
		a.say("You drink a health potion.")
		return
	}
	a.say("No health potion to drink.")
}

func (a *App) onEvent(e events.Event) {
	switch e := e.(type) {
	case events.SkillUnlocked:
		name := e.Key
		if def := a.session.Graph().Skill(e.Key); def != nil {
			name = def.Name
		}
		a.say("Learned " + name + "!")
	case events.BattleOutcome:
		if e.Result == events.ResultVictory {
			a.say(fmt.Sprintf("Victory! +%d coins.", e.Coins))
			return
		}
		a.say("Defeat. Rest and try again.")
	case events.RunSucceeded:
		a.say("Escaped.")
	}
}

func (a *App) say(msg string) {
	if msg == "" {
		return
	}
	a.log = append(a.log, msg)
	if len(a.log) > maxLogLines {
		a.log = a.log[len(a.log)-maxLogLines:]
	}
}

func skillList(s *game.Session, keys []string) string {
	if len(keys) == 0 {
		return "You know no skills yet."
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if def := s.Graph().Skill(key); def != nil {
			names = append(names, def.Name)
		}
	}
	return "Skills: " + strings.Join(names, ", ")
}
