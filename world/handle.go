package world

import (
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/protocolerr"
)

// ThrowRange is the maximum number of cells a thrown entity travels before
// landing, absent an obstacle.
const ThrowRange = 7

// ThrowEntityDamage is dealt to whatever a thrown entity collides with.
const ThrowEntityDamage = 4

// ThrowEntityRecoil is dealt to the thrown entity itself on collision.
const ThrowEntityRecoil = 2

// ThrowEntityDirt is extra damage dealt to a thrown entity landing on dirt.
const ThrowEntityDirt = 1

// BuildPickupThrowCooldown is the cooldown, in turns, charged for build,
// pickup, and throw actions.
const BuildPickupThrowCooldown = 10

// MoveCooldown is the cooldown, in turns, charged for a move action.
const MoveCooldown = 1

// EntityHandle is a transient, bot-facing view of one Entity bound to the
// State that owns it. It is cheap to create and meant to be discarded
// after use — it is not a long-lived reference and holds no cycle back
// into State beyond its own lifetime.
type EntityHandle struct {
	entity *Entity
	state  *State
}

// Entity returns the underlying entity data. Callers must not mutate it;
// use the Queue* methods instead.
func (h *EntityHandle) Entity() *Entity { return h.entity }

// ID returns the wrapped entity's id.
func (h *EntityHandle) ID() EntityID { return h.entity.ID }

// Cooldown returns this entity's cooldown as of the state's current turn.
func (h *EntityHandle) Cooldown() int64 { return h.entity.Cooldown(h.state.turn) }

// TurnsUntilDrop returns how many turns remain before a held entity is
// auto-dropped.
func (h *EntityHandle) TurnsUntilDrop() int64 { return h.entity.TurnsUntilDrop(h.state.turn) }

// CanAct reports whether this entity can perform any action this turn:
// it must be an un-cooled-down, unheld, non-disintegrated thrower.
func (h *EntityHandle) CanAct() bool {
	e := h.entity
	return e.Cooldown(h.state.turn) == 0 && e.Type == Thrower && e.HeldBy == nil && !e.Disintegrated
}

// CanMove reports whether this entity can move one cell in d.
func (h *EntityHandle) CanMove(d geometry.Direction) bool {
	if !h.CanAct() {
		return false
	}
	target := h.entity.Location.AdjacentInDirection(d)
	m := h.state.m
	return m.LocationOnMap(target) && !m.Occupied(target)
}

// CanBuild reports whether this entity can build a statue one cell away
// in d. The predicate is identical to CanMove.
func (h *EntityHandle) CanBuild(d geometry.Direction) bool {
	return h.CanMove(d)
}

// CanBePicked reports whether this entity is eligible to be carried: it
// must be an unheld, non-carrying thrower.
func (h *EntityHandle) CanBePicked() bool {
	e := h.entity
	return e.Type == Thrower && e.Holding == nil && e.HeldBy == nil
}

// CanPickup reports whether this entity can pick up other.
func (h *EntityHandle) CanPickup(other *EntityHandle) bool {
	if other == nil || other.entity == h.entity {
		return false
	}
	if !h.CanAct() || h.entity.Holding != nil {
		return false
	}
	if !other.CanBePicked() || other.entity.Disintegrated {
		return false
	}
	return h.entity.Location.DistanceToSquared(other.entity.Location) <= 2
}

// CanThrow reports whether this entity, currently holding something, can
// throw it in d.
func (h *EntityHandle) CanThrow(d geometry.Direction) bool {
	e := h.entity
	if e.Holding == nil || !h.CanAct() {
		return false
	}
	target := e.Location.AdjacentInDirection(d)
	m := h.state.m
	return m.LocationOnMap(target) && !m.Occupied(target)
}

// EntitiesWithinDistance returns every entity (except self) within
// floating-point Euclidean distance r, strictly less than r.
func (h *EntityHandle) EntitiesWithinDistance(r float64, includeHeld bool) []*EntityHandle {
	var out []*EntityHandle
	for _, other := range h.state.Entities(EntityFilter{}) {
		if other.entity == h.entity {
			continue
		}
		if !includeHeld && other.entity.HeldBy != nil {
			continue
		}
		if h.entity.Location.DistanceTo(other.entity.Location) < r {
			out = append(out, other)
		}
	}
	return out
}

// EntitiesWithinDistanceSquared returns every entity (except self) whose
// true squared distance is strictly less than rSquared. The original
// source's equivalent method squares its argument and passes it to a
// non-squared comparison, which spec.md's open questions identify as a
// bug; this implementation filters on genuine squared distance instead.
func (h *EntityHandle) EntitiesWithinDistanceSquared(rSquared int64, includeHeld bool) []*EntityHandle {
	var out []*EntityHandle
	for _, other := range h.state.Entities(EntityFilter{}) {
		if other.entity == h.entity {
			continue
		}
		if !includeHeld && other.entity.HeldBy != nil {
			continue
		}
		if h.entity.Location.DistanceToSquared(other.entity.Location) < rSquared {
			out = append(out, other)
		}
	}
	return out
}

// Holding returns a handle to the entity this one is carrying, if any.
func (h *EntityHandle) Holding() (*EntityHandle, bool) {
	if h.entity.Holding == nil {
		return nil, false
	}
	return h.state.Entity(*h.entity.Holding)
}

// HeldBy returns a handle to the entity carrying this one, if any.
func (h *EntityHandle) HeldBy() (*EntityHandle, bool) {
	if h.entity.HeldBy == nil {
		return nil, false
	}
	return h.state.Entity(*h.entity.HeldBy)
}

func legalityErr(strict bool, op string, id EntityID, reason string) error {
	if !strict {
		return nil
	}
	return &protocolerr.LegalityError{Op: op, EntityID: int64(id), Reason: reason}
}

// QueueMove queues a move in direction d, applying it immediately if the
// state is speculating. In Strict mode, an illegal move returns a
// *protocolerr.LegalityError instead of being silently enqueued anyway.
func (h *EntityHandle) QueueMove(d geometry.Direction) error {
	legal := h.CanMove(d)
	if h.state.Strict && !legal {
		return legalityErr(true, "move", h.entity.ID, "cannot move in given direction")
	}
	h.state.queue(newDeltaAction(ActionMove, h.entity.ID, d.DX, d.DY))
	if h.state.Speculate && legal {
		h.applyMove(d)
	}
	return nil
}

// QueueMoveTowards queues a move toward an adjacent location, computing
// the direction automatically. loc must be within squared distance 2 of
// the entity's current location.
func (h *EntityHandle) QueueMoveTowards(loc geometry.Location) error {
	if h.entity.Location.DistanceToSquared(loc) > 2 {
		return legalityErr(true, "move", h.entity.ID, "target location is not adjacent")
	}
	d := h.entity.Location.DirectionTo(loc)
	return h.QueueMove(d)
}

// QueueBuild queues a statue build one cell away in d.
func (h *EntityHandle) QueueBuild(d geometry.Direction) error {
	legal := h.CanBuild(d)
	if h.state.Strict && !legal {
		return legalityErr(true, "build", h.entity.ID, "cannot build in given direction")
	}
	h.state.queue(newDeltaAction(ActionBuild, h.entity.ID, d.DX, d.DY))
	if h.state.Speculate && legal {
		h.applyBuild(d)
	}
	return nil
}

// QueuePickup queues picking up other.
func (h *EntityHandle) QueuePickup(other *EntityHandle) error {
	legal := h.CanPickup(other)
	if h.state.Strict && !legal {
		return legalityErr(true, "pickup", h.entity.ID, "invalid pickup")
	}
	id := other.entity.ID
	h.state.queue(Action{Kind: ActionPickup, ID: h.entity.ID, PickupID: &id})
	if h.state.Speculate && legal {
		h.applyPickup(other)
	}
	return nil
}

// QueueThrow queues throwing the currently-held entity in direction d.
// When speculating, the throw is applied whenever this entity is holding
// something and the cell in front of it is on the map and free; the
// thrower's own cooldown (e.g. from the pickup) does not hold it back.
func (h *EntityHandle) QueueThrow(d geometry.Direction) error {
	legal := h.CanThrow(d)
	if h.state.Strict && !legal {
		return legalityErr(true, "throw", h.entity.ID, "not enough space to throw")
	}
	h.state.queue(newDeltaAction(ActionThrow, h.entity.ID, d.DX, d.DY))
	if h.state.Speculate && h.entity.Holding != nil {
		target := h.entity.Location.AdjacentInDirection(d)
		if m := h.state.m; m.LocationOnMap(target) && !m.Occupied(target) {
			h.applyThrow(d)
		}
	}
	return nil
}

// QueueDisintegrate queues self-disintegration.
func (h *EntityHandle) QueueDisintegrate() error {
	h.state.queue(Action{Kind: ActionDisintegrate, ID: h.entity.ID})
	if h.state.Speculate {
		h.state.dealDamage(h.entity, h.entity.HP+1)
	}
	return nil
}

func (h *EntityHandle) applyMove(d geometry.Direction) {
	e := h.entity
	m := h.state.m
	m.clearOccupant(e.Location)
	newLoc := e.Location.AdjacentInDirection(d)
	e.Location = newLoc
	if e.Holding != nil {
		if held, ok := h.state.entities[*e.Holding]; ok {
			held.Location = newLoc
		}
	}
	m.setOccupant(newLoc, e.ID)
	end := h.state.turn + MoveCooldown
	e.CooldownEnd = &end
}

func (h *EntityHandle) applyBuild(d geometry.Direction) {
	e := h.entity
	end := h.state.turn + BuildPickupThrowCooldown
	e.CooldownEnd = &end
	h.state.BuildStatue(e.Location.AdjacentInDirection(d))
}

func (h *EntityHandle) applyPickup(other *EntityHandle) {
	e := h.entity
	target := other.entity
	h.state.m.clearOccupant(target.Location)
	id := e.ID
	targetID := target.ID
	e.Holding = &targetID
	target.HeldBy = &id
	target.Location = e.Location

	end := h.state.turn + BuildPickupThrowCooldown
	e.HoldingEnd = &end
	e.CooldownEnd = &end
}

func (h *EntityHandle) applyThrow(d geometry.Direction) {
	e := h.entity
	m := h.state.m
	held := h.state.entities[*e.Holding]
	e.Holding = nil

	targetLoc := e.Location.AdjacentInDirection(d)
	for i := 0; i < ThrowRange; i++ {
		if !m.LocationOnMap(targetLoc) || m.Occupied(targetLoc) {
			break
		}
		targetLoc = targetLoc.AdjacentInDirection(d)
	}

	if targetID, ok := m.EntityAtLocation(targetLoc); ok {
		if target, ok := h.state.entities[targetID]; ok {
			h.state.dealDamage(target, ThrowEntityDamage)
			h.state.dealDamage(held, ThrowEntityRecoil)
		}
	}

	landing := geometry.NewLocation(targetLoc.X-d.DX, targetLoc.Y-d.DY)
	held.Location = landing
	if m.LocationOnMap(landing) && m.TileAt(landing) == Dirt {
		h.state.dealDamage(held, ThrowEntityDirt)
	}
	if !held.Disintegrated {
		m.setOccupant(landing, held.ID)
	}
	held.HeldBy = nil

	end := h.state.turn + BuildPickupThrowCooldown
	e.CooldownEnd = &end
}

// dealDamage subtracts damage from e's hp. If e's hp drops to zero or
// below, e disintegrates: it is removed from the occupancy index (or, if
// it was holding another entity, that entity takes its place) and from
// State's entity table.
func (s *State) dealDamage(e *Entity, damage int32) {
	if e.Disintegrated {
		return
	}
	e.HP -= damage
	if e.HP > 0 {
		return
	}

	if e.HeldBy == nil {
		s.m.clearOccupantIfMatches(e.Location, e.ID)
	}
	if e.Holding != nil {
		if held, ok := s.entities[*e.Holding]; ok {
			held.HeldBy = nil
			s.m.setOccupant(e.Location, held.ID)
		}
	}

	e.Disintegrated = true
	delete(s.entities, e.ID)
}
