package world

// TeamID identifies a Team. NeutralTeamID is the team assigned to
// non-interactable entities such as hedges.
type TeamID int32

// NeutralTeamID is used for entities with no owning side.
const NeutralTeamID TeamID = 0

// Team is a side in the game, identified by id.
type Team struct {
	ID   TeamID
	Name string
}

func (t Team) String() string {
	return "<team \"" + t.Name + "\">"
}
