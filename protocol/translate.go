package protocol

import (
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/world"
)

func toEntityType(s string) world.EntityType { return world.EntityType(s) }

func entityUpdateFromWire(e wireEntity) world.EntityUpdate {
	u := world.EntityUpdate{
		ID:       world.EntityID(e.ID),
		Location: geometry.NewLocation(e.Location.X, e.Location.Y),
		HP:       e.HP,
	}
	if e.Type != nil {
		t := toEntityType(*e.Type)
		u.Type = &t
	}
	if e.TeamID != nil {
		tid := world.TeamID(*e.TeamID)
		u.Team = &tid
	}
	u.CooldownEnd = e.CooldownEnd
	u.HoldingEnd = e.HoldingEnd
	if e.HeldBy != nil {
		id := world.EntityID(*e.HeldBy)
		u.HeldBy = &id
	}
	if e.Holding != nil {
		id := world.EntityID(*e.Holding)
		u.Holding = &id
	}
	return u
}

func sectorUpdateFromWire(s wireSector) world.SectorUpdate {
	u := world.SectorUpdate{TopLeft: geometry.NewLocation(s.TopLeft.X, s.TopLeft.Y)}
	if s.ControllingTeamID != nil {
		tid := world.TeamID(*s.ControllingTeamID)
		u.ControllingTeam = &tid
	}
	return u
}

func tilesFromWire(rows [][]string) [][]world.Tile {
	out := make([][]world.Tile, len(rows))
	for y, row := range rows {
		tileRow := make([]world.Tile, len(row))
		for x, cell := range row {
			if len(cell) == 0 {
				continue
			}
			tileRow[x] = world.Tile(cell[0])
		}
		out[y] = tileRow
	}
	return out
}

// BuildTeams converts the start frame's team roster into world.Team values
// keyed by id, including the implicit neutral team hedges belong to.
func BuildTeams(teams []wireTeam) map[world.TeamID]*world.Team {
	out := make(map[world.TeamID]*world.Team, len(teams)+1)
	out[world.NeutralTeamID] = &world.Team{ID: world.NeutralTeamID, Name: "neutral"}
	for _, t := range teams {
		id := world.TeamID(t.TeamID)
		out[id] = &world.Team{ID: id, Name: t.Name}
	}
	return out
}

// BuildMap constructs a world.Map and the initial entity updates from a
// start or keyframe payload's state object.
func BuildMap(s wireInitialState) (*world.Map, []world.EntityUpdate, []world.SectorUpdate) {
	m := world.NewMap(s.Width, s.Height, tilesFromWire(s.Tiles), s.SectorSize)

	updates := make([]world.EntityUpdate, len(s.Entities))
	for i, e := range s.Entities {
		updates[i] = entityUpdateFromWire(e)
	}

	sectorUpdates := make([]world.SectorUpdate, len(s.Sectors))
	for i, sec := range s.Sectors {
		sectorUpdates[i] = sectorUpdateFromWire(sec)
	}

	return m, updates, sectorUpdates
}

// NextTurnUpdates extracts the changed-entity, dead-id, and changed-sector
// updates from a nextTurn frame, ready for State.UpdateEntities /
// State.KillEntities / State.UpdateSectors.
func NextTurnUpdates(f NextTurnFrame) (changed []world.EntityUpdate, dead []world.EntityID, sectors []world.SectorUpdate) {
	changed = make([]world.EntityUpdate, len(f.Changed))
	for i, e := range f.Changed {
		changed[i] = entityUpdateFromWire(e)
	}
	dead = make([]world.EntityID, len(f.Dead))
	for i, id := range f.Dead {
		dead[i] = world.EntityID(id)
	}
	sectors = make([]world.SectorUpdate, len(f.ChangedSectors))
	for i, s := range f.ChangedSectors {
		sectors[i] = sectorUpdateFromWire(s)
	}
	return changed, dead, sectors
}

// ActionsToWire converts a drained action queue into the makeTurn wire
// shape.
func ActionsToWire(actions []world.Action) []wireAction {
	out := make([]wireAction, len(actions))
	for i, a := range actions {
		w := wireAction{Action: string(a.Kind), ID: int64(a.ID), DX: a.DX, DY: a.DY}
		if a.PickupID != nil {
			id := int64(*a.PickupID)
			w.PickupID = &id
		}
		out[i] = w
	}
	return out
}

// FailedActions pairs a nextTurn frame's failed[] records with their
// reasons[] for logging, per spec.md section 4.1.
type FailedAction struct {
	Action wireAction
	Reason string
}

// FailedActions zips f.Failed and f.Reasons, truncating to the shorter of
// the two should the server ever send mismatched lengths.
func FailedActions(f NextTurnFrame) []FailedAction {
	n := len(f.Failed)
	if len(f.Reasons) < n {
		n = len(f.Reasons)
	}
	out := make([]FailedAction, n)
	for i := 0; i < n; i++ {
		out[i] = FailedAction{Action: f.Failed[i], Reason: f.Reasons[i]}
	}
	return out
}
