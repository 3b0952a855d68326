package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wanderhall/internal/config"
	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/entity"
	"github.com/samdwyer/wanderhall/internal/game"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/storage"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(120, 30)
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}

	session, err := game.NewSession(context.Background(), game.SessionConfig{
		Catalog: gamedata.MustLoadCatalog(),
		Gateway: storage.NewGateway(storage.NewMemory()),
		Balance: config.DefaultBalance(),
		Rng:     &dice.Scripted{},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	a := NewApp(Wrap(ss), session, nil)
	a.delay = time.Millisecond
	return a
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func joined(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestExploreLines(t *testing.T) {
	a := newTestApp(t)
	out := joined(Lines(a.session, []string{"hello"}))

	for _, want := range []string{"Coins 1000", "Bag: empty", "offensive", "0/10", "next: Slash (locked)", "hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("explore HUD missing %q:\n%s", want, out)
		}
	}
}

func TestBattleFlowThroughKeys(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.HandleKey(ctx, key('b'))
	b := a.session.Battle()
	if b == nil || a.session.State() != game.StateBattle {
		t.Fatal("b should start a battle")
	}
	if !strings.Contains(joined(Lines(a.session, nil)), "Monster  HP") {
		t.Error("battle HUD not shown")
	}

	a.HandleKey(ctx, key('g'))
	if !a.MonsterTurnPending() || b.Phase() != game.PhaseMonsterTurn {
		t.Fatalf("guard should schedule the monster turn, phase %s", b.Phase())
	}
	if !strings.Contains(joined(Lines(a.session, nil)), "about to strike") {
		t.Error("pending monster turn not shown")
	}

	a.HandleKey(ctx, key('a'))
	if b.Turns() != 1 {
		t.Error("attack accepted while the monster turn was pending")
	}

	a.ResolveMonsterTurn(ctx)
	if a.MonsterTurnPending() || b.Phase() != game.PhasePlayerTurn {
		t.Errorf("after monster turn: pending %v, phase %s", a.MonsterTurnPending(), b.Phase())
	}
}

func TestSkillsKeyListsOwnedSkills(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.session.Player().GrantSkill(ctx, "spark")
	if _, err := a.session.StartBattleWith(ctx, entity.NewMonster("Bat", "weak", 50, 5, 0)); err != nil {
		t.Fatal(err)
	}

	a.HandleKey(ctx, key('s'))
	log := a.Log()
	if len(log) == 0 || log[len(log)-1] != "Skills: Spark" {
		t.Errorf("log = %v", log)
	}
	if a.MonsterTurnPending() {
		t.Error("listing skills should not yield the turn")
	}
}

func TestUnlockAndShopKeys(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	a.HandleKey(ctx, key('u'))
	if last := a.Log()[len(a.Log())-1]; !strings.Contains(last, "missing resource") {
		t.Errorf("unlock without book logged %q", last)
	}

	a.HandleKey(ctx, key('k'))
	a.HandleKey(ctx, key('u'))
	if !a.session.Player().HasSkill("slash") {
		t.Fatal("u should unlock the first offensive skill")
	}
	if last := a.Log()[len(a.Log())-1]; last != "Learned Slash!" {
		t.Errorf("last log line = %q", last)
	}
}

func TestResetKey(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.HandleKey(ctx, key('p'))
	if a.session.Player().ItemCount("health_potion") != 1 {
		t.Fatal("p should buy a potion")
	}

	a.HandleKey(ctx, key('R'))
	if a.session.Player().ItemCount("health_potion") != 0 {
		t.Error("R should reset progress")
	}
	if log := a.Log(); len(log) != 1 || log[0] != "All progress reset." {
		t.Errorf("log = %v", log)
	}
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)
	a.HandleKey(context.Background(), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if a.running {
		t.Error("escape should stop the app")
	}
}
