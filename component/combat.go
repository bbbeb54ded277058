package component

import "github.com/jakecoffman/cp"

// Team identifies factions for friend/foe checks.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Opposes reports whether two teams are hostile to each other.
func (t Team) Opposes(other Team) bool {
	return t != "" && other != "" && t != other
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
	EventCatch         CombatEventType = "catch"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type       CombatEventType
	AttackerID int
	TargetID   int
	Damage     int
	Frame      int
	Pos        cp.Vector
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans combat events out to handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Combatant is the narrow surface an attacker needs from its target.
type Combatant interface {
	ID() int
	Team() Team
	Center() cp.Vector
	IsDead() bool
	TakeDamage(amount int) bool
}
