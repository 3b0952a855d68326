// Package combat provides the damage and reward formulas for battles.
package combat

import "math"

// Target is anything that can absorb an attack: it has a defense shield in
// front of its health.
type Target interface {
	GetHealth() int
	GetDefense() int
	SetHealth(v int)
	SetDefense(v int)
}

// AttackResult describes one application of the defense-shield model.
type AttackResult struct {
	Attack        int // Attack value after any guard discount
	Absorbed      int // Points taken by the defense shield
	Damage        int // Points carried into health
	DefenseBefore int
	DefenseAfter  int
	HealthBefore  int
	HealthAfter   int
	Killed        bool
}

// Shield applies attack to a defense/health pair. Defense absorbs damage
// point for point; once it is exhausted the remainder carries into health.
// Neither returned value is negative.
func Shield(attack, defense, health int) (newDefense, newHealth int) {
	if attack < 0 {
		attack = 0
	}
	if defense < 0 {
		defense = 0
	}

	remaining := defense - attack
	if remaining >= 0 {
		return remaining, health
	}

	newHealth = health + remaining
	if newHealth < 0 {
		newHealth = 0
	}
	return 0, newHealth
}

// ApplyAttack resolves attack against target and stores the new values.
func ApplyAttack(attack int, target Target) AttackResult {
	defense, health := target.GetDefense(), target.GetHealth()
	newDefense, newHealth := Shield(attack, defense, health)

	target.SetDefense(newDefense)
	target.SetHealth(newHealth)

	result := AttackResult{
		Attack:        attack,
		Absorbed:      defense - newDefense,
		Damage:        health - newHealth,
		DefenseBefore: defense,
		DefenseAfter:  newDefense,
		HealthBefore:  health,
		HealthAfter:   newHealth,
		Killed:        newHealth <= 0,
	}
	return result
}

// Guarded returns attack reduced by discount (0.1 for 10%), rounded down.
func Guarded(attack int, discount float64) int {
	if discount <= 0 {
		return attack
	}
	if discount >= 1 {
		return 0
	}
	// The epsilon keeps products such as 70*0.9 from flooring to 62.
	return int(math.Floor(float64(attack)*(1-discount) + 1e-9))
}

// RunSucceeds reports whether an escape roll of draw succeeds for luck.
func RunSucceeds(luck, draw int) bool {
	return luck >= draw
}
