// Command analyze prints quick, human-readable heuristics about a
// battlecode scenario fixture: map size, per-team entity counts, the
// hedge count, sector control counts, and any thrower that starts
// adjacent to an enemy thrower. It is meant for eyeballing hand-authored scenarios (like
// the ones in battletest) before wiring them into a test.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/battlecode-hq/botclient/protocol"
	"github.com/battlecode-hq/botclient/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: analyze <scenario.json>")
		os.Exit(1)
	}
	for _, path := range os.Args[1:] {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		analyzeScenario(path)
	}
}

func analyzeScenario(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var frame protocol.StartFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	m, entityUpdates, sectorUpdates := protocol.BuildMap(frame.InitialState)
	teams := protocol.BuildTeams(frame.Teams)
	// myTeam is irrelevant for read-only analysis; pick the first real team.
	var myTeam world.TeamID
	for id := range teams {
		if id != world.NeutralTeamID {
			myTeam = id
			break
		}
	}
	state := world.NewState(teams, myTeam, m, entityUpdates)
	state.UpdateSectors(sectorUpdates)

	fmt.Printf("Map: %d x %d, sectorSize %d\n", frame.InitialState.Width, frame.InitialState.Height, frame.InitialState.SectorSize)
	fmt.Printf("Teams: %d\n", len(frame.Teams))

	byTeam := map[world.TeamID]int{}
	var hedges int
	for _, e := range state.Entities(world.EntityFilter{}) {
		if e.Entity().Type == world.Hedge {
			hedges++
			continue
		}
		byTeam[e.Entity().Team]++
	}
	for _, t := range frame.Teams {
		fmt.Printf("  Team %q (id %d): %d entities\n", t.Name, t.TeamID, byTeam[world.TeamID(t.TeamID)])
	}
	fmt.Printf("  Hedges: %d\n", hedges)

	controlled := map[world.TeamID]int{}
	uncontrolled := 0
	for _, sec := range m.Sectors() {
		if sec.ControllingTeam == nil {
			uncontrolled++
		} else {
			controlled[*sec.ControllingTeam]++
		}
	}
	fmt.Printf("Sectors: %d total, %d uncontrolled\n", len(m.Sectors()), uncontrolled)
	for team, count := range controlled {
		fmt.Printf("  Team %d controls %d sectors\n", team, count)
	}

	warnContestedFrontline(state)
}

// warnContestedFrontline flags throwers sitting adjacent to an enemy
// thrower, a useful sanity check for scenarios meant to exercise combat
// on the very first turn.
func warnContestedFrontline(state *world.State) {
	entities := state.Entities(world.EntityFilter{})
	var warned bool
	for _, a := range entities {
		if a.Entity().Type != world.Thrower {
			continue
		}
		for _, b := range entities {
			if a.Entity().ID == b.Entity().ID || b.Entity().Type != world.Thrower {
				continue
			}
			if a.Entity().Team == b.Entity().Team {
				continue
			}
			d := a.Entity().Location.DistanceToSquared(b.Entity().Location)
			if d <= 2 {
				fmt.Printf("⚠️  thrower %d and enemy thrower %d start adjacent at %v/%v\n",
					a.Entity().ID, b.Entity().ID, a.Entity().Location, b.Entity().Location)
				warned = true
			}
		}
	}
	if !warned {
		fmt.Println("✅ no throwers start adjacent to an enemy thrower")
	}
}
