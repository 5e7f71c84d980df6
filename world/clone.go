package world

import "github.com/battlecode-hq/botclient/geometry"

// Clone returns a deep copy of State: entities, the occupancy index, and
// sectors are all duplicated, so mutating the clone never touches the
// original. Speculate/Strict flags and the team roster (immutable once
// built) are copied by value/reference respectively.
//
// This is the neutral-design replacement for the original source's
// pickle-based snapshot (spec.md section 9): the clone carries no back-
// pointer to whatever protocol driver owns the live State, so the bot can
// hold onto it indefinitely without keeping that driver reachable.
func (s *State) Clone() *State {
	clone := &State{
		entities:  make(map[EntityID]*Entity, len(s.entities)),
		teams:     s.teams,
		myTeam:    s.myTeam,
		turn:      s.turn,
		maxID:     s.maxID,
		m:         s.m.clone(),
		Speculate: s.Speculate,
		Strict:    s.Strict,
	}
	for id, e := range s.entities {
		copied := *e
		clone.entities[id] = &copied
	}
	if len(s.actionQueue) > 0 {
		clone.actionQueue = append([]Action(nil), s.actionQueue...)
	}
	return clone
}

func (m *Map) clone() *Map {
	tiles := make([][]Tile, len(m.Tiles))
	for y, row := range m.Tiles {
		tiles[y] = append([]Tile(nil), row...)
	}

	clone := &Map{
		Width:      m.Width,
		Height:     m.Height,
		Tiles:      tiles,
		SectorSize: m.SectorSize,
		sectors:    make(map[geometry.Location]*Sector, len(m.sectors)),
		occupied:   make(map[geometry.Location]EntityID, len(m.occupied)),
	}
	for loc, sec := range m.sectors {
		copied := *sec
		clone.sectors[loc] = &copied
	}
	for loc, id := range m.occupied {
		clone.occupied[loc] = id
	}
	return clone
}
