package world

import (
	"fmt"

	"github.com/battlecode-hq/botclient/geometry"
)

// EntityUpdate is a transport-agnostic description of one entity's new
// values, as carried by a start/nextTurn/keyframe payload. A nil optional
// field means "unchanged"/"none", per spec.md section 6 — Type and Team
// are only required the first time an entity is seen.
type EntityUpdate struct {
	ID       EntityID
	Type     *EntityType
	Team     *TeamID
	Location geometry.Location
	HP       int32

	CooldownEnd *int64
	HoldingEnd  *int64
	HeldBy      *EntityID
	Holding     *EntityID
}

// EntityFilter narrows a call to State.Entities. A nil field does not
// filter on that dimension. This reproduces the original source's
// get_entities(entity_id, entity_type, location, team) query.
type EntityFilter struct {
	ID       *EntityID
	Type     *EntityType
	Location *geometry.Location
	Team     *TeamID
}

// State is the authoritative client-side mirror of the game world.
//
// Only the goroutine that owns State may touch it (spec.md section 5) — it
// requires no internal locking.
type State struct {
	entities map[EntityID]*Entity
	teams    map[TeamID]*Team
	myTeam   TeamID
	turn     int64
	maxID    EntityID
	m        *Map

	actionQueue []Action

	// Speculate, when true, makes every Queue* call apply its effect to
	// the mirror immediately in addition to enqueueing the wire action.
	Speculate bool

	// Strict makes Queue* calls on illegal actions return a
	// *protocolerr.LegalityError instead of enqueueing the action; with
	// Strict off, an illegal action is enqueued anyway and not speculated.
	// Analogous to the original source's __debug__ assertions.
	Strict bool
}

// NewState builds a State from the server's start.initialState payload,
// already decoded into a Map and a slice of EntityUpdate, plus the team
// roster and which team the bot controls.
func NewState(teams map[TeamID]*Team, myTeam TeamID, m *Map, initialEntities []EntityUpdate) *State {
	s := &State{
		entities:  make(map[EntityID]*Entity),
		teams:     teams,
		myTeam:    myTeam,
		turn:      0,
		m:         m,
		Speculate: true,
	}
	s.UpdateEntities(initialEntities)
	return s
}

// Turn returns the current 0-based turn count.
func (s *State) Turn() int64 { return s.turn }

// SetTurn overwrites the turn counter. Used by the protocol driver after
// applying a nextTurn frame.
func (s *State) SetTurn(turn int64) { s.turn = turn }

// TurnNextSpawn returns the next turn boundary by which a freshly-queued
// statue build's cooldown will have elapsed. This is a heuristic carried
// over from the original source, not a guarantee enforced anywhere.
func (s *State) TurnNextSpawn() int64 {
	return ((s.turn-1)/10 + 1) * 10
}

// MyTeam returns the team this client plays as.
func (s *State) MyTeam() *Team { return s.teams[s.myTeam] }

// Team looks up a team by id.
func (s *State) Team(id TeamID) (*Team, bool) {
	t, ok := s.teams[id]
	return t, ok
}

// Teams returns the full team roster, keyed by id. The returned map is
// shared with State, not copied; callers must treat it as read-only.
func (s *State) Teams() map[TeamID]*Team { return s.teams }

// Map returns the world's tile grid and occupancy index.
func (s *State) Map() *Map { return s.m }

// MaxID returns the highest entity id observed so far.
func (s *State) MaxID() EntityID { return s.maxID }

// Entity returns a handle to the entity with the given id, if it exists.
func (s *State) Entity(id EntityID) (*EntityHandle, bool) {
	e, ok := s.entities[id]
	if !ok {
		return nil, false
	}
	return &EntityHandle{entity: e, state: s}, true
}

// EntityAt returns a handle to whichever entity occupies loc on its
// surface, if any. Held entities are never returned.
func (s *State) EntityAt(loc geometry.Location) (*EntityHandle, bool) {
	id, ok := s.m.EntityAtLocation(loc)
	if !ok {
		return nil, false
	}
	return s.Entity(id)
}

// Entities returns every entity matching filter, in ascending id order.
// Pass a zero-value EntityFilter to list everything.
func (s *State) Entities(filter EntityFilter) []*EntityHandle {
	out := make([]*EntityHandle, 0, len(s.entities))
	for id := EntityID(0); id <= s.maxID; id++ {
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		if filter.ID != nil && *filter.ID != id {
			continue
		}
		if filter.Type != nil && *filter.Type != e.Type {
			continue
		}
		if filter.Location != nil && *filter.Location != e.Location {
			continue
		}
		if filter.Team != nil && *filter.Team != e.Team {
			continue
		}
		out = append(out, &EntityHandle{entity: e, state: s})
	}
	return out
}

// UpdateEntities applies a batch of entity updates, mirroring
// state._update_entities in the original source. New ids create a blank
// entity first; existing ids are updated in place.
//
// The server is expected to emit a holder before the entities it holds, so
// that heldBy/holding references resolve on first pass. If an update
// references an id not yet known (e.g. emitted out of order), it is
// retried in a second pass.
func (s *State) UpdateEntities(updates []EntityUpdate) {
	var deferred []EntityUpdate
	for _, u := range updates {
		if !s.applyUpdate(u) {
			deferred = append(deferred, u)
		}
	}
	for _, u := range deferred {
		s.applyUpdate(u)
	}
}

// applyUpdate applies one update. It returns false if the update could not
// be fully resolved (a referenced holder/held entity isn't known yet) so
// the caller can retry it on a second pass.
func (s *State) applyUpdate(u EntityUpdate) bool {
	if u.HeldBy != nil {
		if _, ok := s.entities[*u.HeldBy]; !ok {
			return false
		}
	}
	if u.Holding != nil {
		if _, ok := s.entities[*u.Holding]; !ok {
			return false
		}
	}

	e, existed := s.entities[u.ID]
	if !existed {
		e = &Entity{}
		s.entities[u.ID] = e
	}

	if e.ID > s.maxID {
		s.maxID = e.ID
	}
	if u.ID > s.maxID {
		s.maxID = u.ID
	}

	// Clear the old occupancy slot before moving/rebinding the entity.
	if existed && e.HeldBy == nil {
		s.m.clearOccupantIfMatches(e.Location, e.ID)
	}

	if existed {
		if u.Type != nil && *u.Type != e.Type {
			panic(fmt.Sprintf("world: entity %d changed immutable type from %q to %q", e.ID, e.Type, *u.Type))
		}
		if u.Team != nil && *u.Team != e.Team {
			panic(fmt.Sprintf("world: entity %d changed immutable team from %d to %d", e.ID, e.Team, *u.Team))
		}
	} else {
		if u.Type == nil || u.Team == nil {
			panic(fmt.Sprintf("world: first sighting of entity %d is missing type/team", u.ID))
		}
	}

	e.ID = u.ID
	if u.Type != nil {
		e.Type = *u.Type
	}
	if u.Team != nil {
		e.Team = *u.Team
	}
	e.HP = u.HP
	e.Location = u.Location
	e.CooldownEnd = u.CooldownEnd
	e.HoldingEnd = u.HoldingEnd

	if u.HeldBy != nil {
		e.HeldBy = u.HeldBy
	} else {
		e.HeldBy = nil
		s.m.setOccupant(e.Location, e.ID)
	}

	if u.Holding != nil {
		e.Holding = u.Holding
	} else {
		e.Holding = nil
	}

	return true
}

// BuildStatue mints a fresh id above MaxID and inserts a full-health statue
// of MyTeam at loc, occupying it on the map. Used only by speculation.
func (s *State) BuildStatue(loc geometry.Location) EntityID {
	s.maxID++
	id := s.maxID
	statueType := Statue
	team := s.myTeam
	e := &Entity{
		ID:       id,
		Type:     statueType,
		Team:     team,
		Location: loc,
		HP:       DefaultStatueHP,
	}
	s.entities[id] = e
	s.m.setOccupant(loc, id)
	return id
}

// KillEntities removes the given ids from the mirror, clearing their
// surface occupancy if they held one. Used for authoritative nextTurn.dead
// processing.
func (s *State) KillEntities(ids []EntityID) {
	for _, id := range ids {
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		if e.HeldBy == nil {
			s.m.clearOccupantIfMatches(e.Location, e.ID)
		}
		delete(s.entities, id)
	}
}

// updateSectors applies sector-ownership updates.
func (s *State) updateSectors(updates []SectorUpdate) {
	for _, u := range updates {
		sec, ok := s.m.sectors[u.TopLeft]
		if !ok {
			panic(fmt.Sprintf("world: unknown sector top-left %v", u.TopLeft))
		}
		sec.update(u.ControllingTeam)
	}
}

// SectorUpdate carries one sector's new controlling team.
type SectorUpdate struct {
	TopLeft         geometry.Location
	ControllingTeam *TeamID
}

// UpdateSectors is the exported form of updateSectors, used by the
// protocol driver.
func (s *State) UpdateSectors(updates []SectorUpdate) {
	s.updateSectors(updates)
}

// queue appends action to the outgoing queue.
func (s *State) queue(a Action) {
	s.actionQueue = append(s.actionQueue, a)
}

// DrainActionQueue returns and clears the pending action queue. Called by
// the protocol driver when submitting a turn.
func (s *State) DrainActionQueue() []Action {
	out := s.actionQueue
	s.actionQueue = nil
	return out
}

// DiscardActionQueue clears the pending action queue without returning it.
// Used when a turn's makeTurn send must be skipped (spec.md section 4.1,
// missedTurn handling).
func (s *State) DiscardActionQueue() {
	s.actionQueue = nil
}
