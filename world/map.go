package world

import "github.com/battlecode-hq/botclient/geometry"

// Tile is the terrain type of a single map cell.
type Tile byte

const (
	// Grass is the default, undecorated terrain.
	Grass Tile = 'G'
	// Dirt inflicts extra damage on a thrown entity that lands on it.
	Dirt Tile = 'D'
)

// Sector is a sector_size-aligned square region of the map, reported by
// the server as controlled by at most one team.
type Sector struct {
	TopLeft        geometry.Location
	ControllingTeam *TeamID
}

func (s *Sector) update(controllingTeamID *TeamID) {
	s.ControllingTeam = controllingTeamID
}

// Map is the fixed-size tile grid, partitioned into square sectors, with an
// index of which cell is occupied by which entity's surface presence
// (held entities are excluded).
type Map struct {
	Width      int32
	Height     int32
	Tiles      [][]Tile // indexed [y][x]
	SectorSize int32

	sectors  map[geometry.Location]*Sector
	occupied map[geometry.Location]EntityID
}

// NewMap builds an empty Map and tiles every SectorSize-aligned region
// with a Sector, per spec.md invariant 6.
func NewMap(width, height int32, tiles [][]Tile, sectorSize int32) *Map {
	m := &Map{
		Width:      width,
		Height:     height,
		Tiles:      tiles,
		SectorSize: sectorSize,
		sectors:    make(map[geometry.Location]*Sector),
		occupied:   make(map[geometry.Location]EntityID),
	}
	for x := int32(0); x < width; x += sectorSize {
		for y := int32(0); y < height; y += sectorSize {
			tl := geometry.NewLocation(x, y)
			m.sectors[tl] = &Sector{TopLeft: tl}
		}
	}
	return m
}

// TileAt returns the terrain at loc. Callers must ensure loc is on the map.
func (m *Map) TileAt(loc geometry.Location) Tile {
	return m.Tiles[loc.Y][loc.X]
}

// LocationOnMap reports whether loc falls within the map's bounds.
func (m *Map) LocationOnMap(loc geometry.Location) bool {
	return loc.Y >= 0 && loc.Y < m.Height && loc.X >= 0 && loc.X < m.Width
}

// SectorAt returns the sector containing loc. Panics if loc is off-map.
func (m *Map) SectorAt(loc geometry.Location) *Sector {
	if !m.LocationOnMap(loc) {
		panic("world: SectorAt called with an off-map location")
	}
	tl := geometry.NewLocation(
		loc.X-mod(loc.X, m.SectorSize),
		loc.Y-mod(loc.Y, m.SectorSize),
	)
	return m.sectors[tl]
}

// Sectors returns every sector, keyed by top-left location.
func (m *Map) Sectors() map[geometry.Location]*Sector {
	return m.sectors
}

// EntityAtLocation returns the id of the entity occupying loc on its
// surface, if any. Held entities are never returned here.
func (m *Map) EntityAtLocation(loc geometry.Location) (EntityID, bool) {
	id, ok := m.occupied[loc]
	return id, ok
}

// Occupied reports whether loc currently has a surface occupant.
func (m *Map) Occupied(loc geometry.Location) bool {
	_, ok := m.occupied[loc]
	return ok
}

func (m *Map) setOccupant(loc geometry.Location, id EntityID) {
	m.occupied[loc] = id
}

func (m *Map) clearOccupant(loc geometry.Location) {
	delete(m.occupied, loc)
}

// clearOccupantIfMatches removes the occupancy record at loc only if it
// still points at id — a defensive check used by kill processing, mirroring
// the original source's same guard.
func (m *Map) clearOccupantIfMatches(loc geometry.Location, id EntityID) {
	if existing, ok := m.occupied[loc]; ok && existing == id {
		delete(m.occupied, loc)
	}
}

func mod(a, b int32) int32 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
