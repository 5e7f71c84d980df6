package battletest

import (
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/world"
)

// FlatMap builds a width x height all-grass map tiled into sectorSize
// sectors, with no entities.
func FlatMap(width, height, sectorSize int32) *world.Map {
	tiles := make([][]world.Tile, height)
	for y := range tiles {
		row := make([]world.Tile, width)
		for x := range row {
			row[x] = world.Grass
		}
		tiles[y] = row
	}
	return world.NewMap(width, height, tiles, sectorSize)
}

// Teams builds a two-team roster plus the implicit neutral team, matching
// spec.md section 8 scenario 1.
func Teams() map[world.TeamID]*world.Team {
	return map[world.TeamID]*world.Team{
		world.NeutralTeamID: {ID: world.NeutralTeamID, Name: "neutral"},
		1:                   {ID: 1, Name: "A"},
		2:                   {ID: 2, Name: "B"},
	}
}

func teamID(id int32) *world.TeamID {
	t := world.TeamID(id)
	return &t
}

func entityType(t world.EntityType) *world.EntityType {
	return &t
}

// Thrower builds an EntityUpdate for a full-health thrower, as the server
// would describe it on first sighting.
func Thrower(id world.EntityID, team world.TeamID, loc geometry.Location, hp int32) world.EntityUpdate {
	return world.EntityUpdate{
		ID:       id,
		Type:     entityType(world.Thrower),
		Team:     teamID(int32(team)),
		Location: loc,
		HP:       hp,
	}
}

// Statue builds an EntityUpdate for a full-health statue.
func Statue(id world.EntityID, team world.TeamID, loc geometry.Location, hp int32) world.EntityUpdate {
	return world.EntityUpdate{
		ID:       id,
		Type:     entityType(world.Statue),
		Team:     teamID(int32(team)),
		Location: loc,
		HP:       hp,
	}
}

// Hedge builds an EntityUpdate for a neutral hedge obstacle.
func Hedge(id world.EntityID, loc geometry.Location) world.EntityUpdate {
	return world.EntityUpdate{
		ID:       id,
		Type:     entityType(world.Hedge),
		Team:     teamID(int32(world.NeutralTeamID)),
		Location: loc,
		HP:       1,
	}
}

// LoginStartScenario reproduces spec.md section 8 scenario 1: a 2x1 grass
// map with a single thrower (id 100, team 1) at (0,0), controlled by team
// 1.
func LoginStartScenario() *world.State {
	m := FlatMap(2, 1, 2)
	updates := []world.EntityUpdate{
		Thrower(100, 1, geometry.NewLocation(0, 0), 10),
	}
	return world.NewState(Teams(), 1, m, updates)
}

// PickupThrowScenario reproduces spec.md section 8 scenario 4: a long
// grass row with thrower X at (0,0) and thrower Y at (1,0), both team 1.
// width should be at least 9 to give a throw room to travel THROW_RANGE
// cells.
func PickupThrowScenario(width int32) *world.State {
	m := FlatMap(width, 1, width)
	updates := []world.EntityUpdate{
		Thrower(1, 1, geometry.NewLocation(0, 0), 10),
		Thrower(2, 1, geometry.NewLocation(1, 0), 10),
	}
	return world.NewState(Teams(), 1, m, updates)
}

// BlockedMoveScenario reproduces spec.md section 8 scenario 3: thrower X
// at (0,0), team 1, blocked by a hedge at (1,0).
func BlockedMoveScenario() *world.State {
	m := FlatMap(2, 1, 2)
	updates := []world.EntityUpdate{
		Thrower(1, 1, geometry.NewLocation(0, 0), 10),
		Hedge(200, geometry.NewLocation(1, 0)),
	}
	return world.NewState(Teams(), 1, m, updates)
}

// ThrowRecoilScenario reproduces spec.md section 8 scenario 5: thrower X
// at (0,0) holding thrower Y, with statue Z (HP 10) occupying (3,0).
func ThrowRecoilScenario() *world.State {
	m := FlatMap(4, 1, 4)
	xID, yID, zID := world.EntityID(1), world.EntityID(2), world.EntityID(3)
	st := world.NewState(Teams(), 1, m, []world.EntityUpdate{
		Thrower(xID, 1, geometry.NewLocation(0, 0), 10),
		Statue(zID, 2, geometry.NewLocation(3, 0), 10),
	})

	x, _ := st.Entity(xID)
	y := world.EntityUpdate{
		ID:       yID,
		Type:     entityType(world.Thrower),
		Team:     teamID(1),
		Location: geometry.NewLocation(0, 0),
		HP:       10,
		HeldBy:   &xID,
	}
	st.UpdateEntities([]world.EntityUpdate{y})
	xEntity := x.Entity()
	xEntity.Holding = &yID
	return st
}
