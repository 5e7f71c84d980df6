package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/protocol"
	"github.com/battlecode-hq/botclient/world"
)

func TestBuildTeamsIncludesNeutral(t *testing.T) {
	var start protocol.StartFrame
	raw := `{"command":"start","teams":[{"teamID":1,"name":"A"},{"teamID":2,"name":"B"}],
		"initialState":{"width":1,"height":1,"tiles":[["G"]],"sectorSize":1,"entities":[],"sectors":[]}}`
	if err := json.Unmarshal([]byte(raw), &start); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}

	teams := protocol.BuildTeams(start.Teams)
	if len(teams) != 3 {
		t.Fatalf("len(teams) = %d, want 3 (A, B, neutral)", len(teams))
	}
	if teams[world.NeutralTeamID] == nil || teams[world.NeutralTeamID].Name != "neutral" {
		t.Errorf("neutral team missing or misnamed: %+v", teams[world.NeutralTeamID])
	}
	if teams[1].Name != "A" || teams[2].Name != "B" {
		t.Errorf("team rosters = %+v", teams)
	}
}

func TestBuildMapFromStartFrame(t *testing.T) {
	raw := `{"command":"start","teams":[{"teamID":1,"name":"A"}],
		"initialState":{
			"width":2,"height":1,"tiles":[["G","D"]],"sectorSize":2,
			"entities":[{"id":100,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}}],
			"sectors":[{"topLeft":{"x":0,"y":0},"controllingTeamID":1}]
		}}`
	var start protocol.StartFrame
	if err := json.Unmarshal([]byte(raw), &start); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}

	m, entities, sectors := protocol.BuildMap(start.InitialState)
	if m.Width != 2 || m.Height != 1 {
		t.Errorf("map dims = %dx%d, want 2x1", m.Width, m.Height)
	}
	if m.TileAt(geometry.NewLocation(1, 0)) != world.Dirt {
		t.Errorf("tile(1,0) = %q, want dirt", m.TileAt(geometry.NewLocation(1, 0)))
	}

	if len(entities) != 1 {
		t.Fatalf("len(entities) = %d, want 1", len(entities))
	}
	e := entities[0]
	if e.ID != 100 || e.Type == nil || *e.Type != world.Thrower || e.Team == nil || *e.Team != 1 {
		t.Errorf("entity update = %+v", e)
	}
	if e.Location != geometry.NewLocation(0, 0) || e.HP != 10 {
		t.Errorf("entity location/hp = %v/%d", e.Location, e.HP)
	}

	if len(sectors) != 1 {
		t.Fatalf("len(sectors) = %d, want 1", len(sectors))
	}
	if sectors[0].ControllingTeam == nil || *sectors[0].ControllingTeam != 1 {
		t.Errorf("sector controlling team = %v", sectors[0].ControllingTeam)
	}
}

func TestEntityUpdateFromWireOmittedFieldsMeanUnchanged(t *testing.T) {
	raw := `{"id":100,"hp":9,"location":{"x":1,"y":0},"cooldownEnd":3}`
	var frame protocol.NextTurnFrame
	wrapped := `{"command":"nextTurn","turn":1,"changed":[` + raw + `],"dead":[],"changedSectors":[],"lastTeamID":1,"nextTeamID":2}`
	if err := json.Unmarshal([]byte(wrapped), &frame); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}

	changed, dead, sectors := protocol.NextTurnUpdates(frame)
	if len(changed) != 1 {
		t.Fatalf("len(changed) = %d, want 1", len(changed))
	}
	u := changed[0]
	if u.Type != nil || u.Team != nil {
		t.Errorf("omitted type/teamID should decode as nil, got %+v", u)
	}
	if u.CooldownEnd == nil || *u.CooldownEnd != 3 {
		t.Errorf("cooldownEnd = %v, want 3", u.CooldownEnd)
	}
	if len(dead) != 0 || len(sectors) != 0 {
		t.Errorf("expected no dead ids or sector updates, got %d/%d", len(dead), len(sectors))
	}
}

func TestNextTurnUpdatesDeadIDs(t *testing.T) {
	raw := `{"command":"nextTurn","turn":5,"changed":[],"dead":[7,9],"changedSectors":[],"lastTeamID":1,"nextTeamID":2}`
	var frame protocol.NextTurnFrame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}
	_, dead, _ := protocol.NextTurnUpdates(frame)
	if len(dead) != 2 || dead[0] != 7 || dead[1] != 9 {
		t.Errorf("dead = %v, want [7 9]", dead)
	}
}

func TestActionsToWireRoundTrips(t *testing.T) {
	pickupID := world.EntityID(2)
	dx, dy := int32(1), int32(0)
	actions := []world.Action{
		{Kind: world.ActionMove, ID: 1, DX: &dx, DY: &dy},
		{Kind: world.ActionPickup, ID: 1, PickupID: &pickupID},
		{Kind: world.ActionDisintegrate, ID: 1},
	}

	wire := protocol.ActionsToWire(actions)
	if len(wire) != 3 {
		t.Fatalf("len(wire) = %d, want 3", len(wire))
	}
	if wire[0].Action != "move" || wire[0].DX == nil || *wire[0].DX != 1 {
		t.Errorf("move action = %+v", wire[0])
	}
	if wire[1].Action != "pickup" || wire[1].PickupID == nil || *wire[1].PickupID != 2 {
		t.Errorf("pickup action = %+v", wire[1])
	}
	if wire[2].Action != "disintegrate" || wire[2].DX != nil || wire[2].PickupID != nil {
		t.Errorf("disintegrate action should carry no dx/dy/pickupID, got %+v", wire[2])
	}

	encoded, err := json.Marshal(wire[0])
	if err != nil {
		t.Fatalf("Marshal = %v", err)
	}
	if got := string(encoded); got != `{"action":"move","id":1,"dx":1,"dy":0}` {
		t.Errorf("encoded move action = %s", got)
	}
}

func TestFailedActionsZipsShorterLength(t *testing.T) {
	raw := `{"command":"nextTurn","turn":1,"changed":[],"dead":[],"changedSectors":[],
		"lastTeamID":1,"nextTeamID":2,
		"failed":[{"action":"move","id":1,"dx":1,"dy":0},{"action":"build","id":2,"dx":0,"dy":1}],
		"reasons":["blocked"]}`
	var frame protocol.NextTurnFrame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}

	failed := protocol.FailedActions(frame)
	if len(failed) != 1 {
		t.Fatalf("len(failed) = %d, want 1 (truncated to shorter reasons slice)", len(failed))
	}
	if failed[0].Action.Action != "move" || failed[0].Reason != "blocked" {
		t.Errorf("failed[0] = %+v", failed[0])
	}
}
