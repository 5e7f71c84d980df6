package world

import (
	"fmt"

	"github.com/battlecode-hq/botclient/geometry"
)

// EntityID uniquely identifies an Entity within a game. Ids assigned by the
// server are always positive; locally-built (speculative) statues get
// fresh ids from State's monotone counter, seeded above the highest id the
// server has shown us.
type EntityID int64

// EntityType is one of the three kinds of entity in the world.
type EntityType string

const (
	// Thrower is the one mobile entity type.
	Thrower EntityType = "thrower"
	// Statue is an immobile entity built by a thrower.
	Statue EntityType = "statue"
	// Hedge is an immobile obstacle, present on some maps from the start.
	Hedge EntityType = "hedge"
)

// DefaultStatueHP is the hit-point total given to a speculatively-built
// statue (spec.md section 6). The server is authoritative for the real
// value once it confirms the build.
const DefaultStatueHP = 10

// Entity is a single game object. Entity holds no pointers to other
// entities or to the State that owns it — holding/held_by are ids,
// resolved through State on demand — so the object graph has no cycles.
//
// Do not mutate an Entity's fields directly from bot code; queue an action
// through an EntityHandle instead.
type Entity struct {
	ID       EntityID
	Type     EntityType
	Team     TeamID
	Location geometry.Location
	HP       int32

	// CooldownEnd is the first turn on which this entity can act again.
	// Nil means "no cooldown".
	CooldownEnd *int64

	// Holding is the id of the entity this one is carrying, if any.
	Holding *EntityID
	// HeldBy is the id of the entity carrying this one, if any.
	HeldBy *EntityID
	// HoldingEnd is the turn at which a held entity is auto-dropped.
	HoldingEnd *int64

	// Disintegrated is set by speculation once HP reaches zero; such
	// entities are removed from State immediately afterward.
	Disintegrated bool
}

func (e *Entity) String() string {
	s := fmt.Sprintf("<id:%d,type:%s,team:%d,location:%s,hp:%d", e.ID, e.Type, e.Team, e.Location, e.HP)
	if e.Holding != nil {
		s += fmt.Sprintf(",holding:%d", *e.Holding)
	}
	if e.HeldBy != nil {
		s += fmt.Sprintf(",held_by:%d", *e.HeldBy)
	}
	s += ">"
	return s
}

// Cooldown returns the number of turns left before this entity can act
// again, as of the given turn.
func (e *Entity) Cooldown(turn int64) int64 {
	if e.CooldownEnd == nil {
		return 0
	}
	if *e.CooldownEnd <= turn {
		return 0
	}
	return *e.CooldownEnd - turn
}

// TurnsUntilDrop returns max(0, holding_end - turn); zero if HoldingEnd
// is unset. This resolves an inconsistently-implemented
// property in the original source (spec.md section 9).
func (e *Entity) TurnsUntilDrop(turn int64) int64 {
	if e.HoldingEnd == nil {
		return 0
	}
	if *e.HoldingEnd <= turn {
		return 0
	}
	return *e.HoldingEnd - turn
}

// IsThrower reports whether this entity is a mobile thrower.
func (e *Entity) IsThrower() bool { return e.Type == Thrower }

// IsStatue reports whether this entity is a statue.
func (e *Entity) IsStatue() bool { return e.Type == Statue }

// IsHedge reports whether this entity is a hedge. Hedges are treated as
// neutral, non-interactable obstacles regardless of Team (spec.md
// section 9 open question).
func (e *Entity) IsHedge() bool { return e.Type == Hedge }

// IsHolding reports whether this entity is currently carrying another.
func (e *Entity) IsHolding() bool { return e.Holding != nil }

// IsHeld reports whether this entity is currently being carried.
func (e *Entity) IsHeld() bool { return e.HeldBy != nil }
