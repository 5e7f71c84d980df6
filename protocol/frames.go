package protocol

// Envelope is decoded first to discover which concrete frame a line of
// wire JSON carries, per the `command` discriminator field.
type Envelope struct {
	Command string `json:"command"`
}

type wireLocation struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// wireEntity mirrors one element of initialState.entities / nextTurn.changed.
// Fields absent on the wire mean "unchanged" (Type/TeamID) or "none"
// (HeldBy/Holding/CooldownEnd/HoldingEnd), per spec.md section 6.
type wireEntity struct {
	ID          int64         `json:"id"`
	Type        *string       `json:"type,omitempty"`
	TeamID      *int32        `json:"teamID,omitempty"`
	Location    wireLocation  `json:"location"`
	HP          int32         `json:"hp"`
	CooldownEnd *int64        `json:"cooldownEnd,omitempty"`
	HoldingEnd  *int64        `json:"holdingEnd,omitempty"`
	HeldBy      *int64        `json:"heldBy,omitempty"`
	Holding     *int64        `json:"holding,omitempty"`
}

type wireSector struct {
	TopLeft           wireLocation `json:"topLeft"`
	ControllingTeamID *int32       `json:"controllingTeamID,omitempty"`
}

type wireTeam struct {
	TeamID int32  `json:"teamID"`
	Name   string `json:"name"`
}

type wireInitialState struct {
	Width      int32      `json:"width"`
	Height     int32      `json:"height"`
	Tiles      [][]string `json:"tiles"`
	SectorSize int32      `json:"sectorSize"`
	Entities   []wireEntity `json:"entities"`
	Sectors    []wireSector `json:"sectors"`
}

type wireAction struct {
	Action   string `json:"action"`
	ID       int64  `json:"id"`
	DX       *int32 `json:"dx,omitempty"`
	DY       *int32 `json:"dy,omitempty"`
	PickupID *int64 `json:"pickupID,omitempty"`
}

// LoginCommand is the first frame the client sends.
type LoginCommand struct {
	Command string `json:"command"`
	Name    string `json:"name"`
	Key     string `json:"key,omitempty"`
}

// NewLoginCommand builds a login command for name, forwarding key only
// if non-empty (spec.md section 6, BATTLECODE_PLAYER_KEY).
func NewLoginCommand(name, key string) LoginCommand {
	return LoginCommand{Command: "login", Name: name, Key: key}
}

// LoginConfirmFrame is the server's reply to login.
type LoginConfirmFrame struct {
	Command string `json:"command"`
	TeamID  int32  `json:"teamID"`
}

// StartFrame carries the initial world snapshot.
type StartFrame struct {
	Command      string           `json:"command"`
	Teams        []wireTeam       `json:"teams"`
	InitialState wireInitialState `json:"initialState"`
}

// MakeTurnCommand is the client's per-turn action submission.
type MakeTurnCommand struct {
	Command string       `json:"command"`
	Turn    int64        `json:"turn"`
	Actions []wireAction `json:"actions"`
}

// NextTurnFrame is the server's per-turn delta broadcast.
type NextTurnFrame struct {
	Command        string       `json:"command"`
	Turn           int64        `json:"turn"`
	Changed        []wireEntity `json:"changed"`
	Dead           []int64      `json:"dead"`
	ChangedSectors []wireSector `json:"changedSectors"`
	LastTeamID     int32        `json:"lastTeamID"`
	NextTeamID     int32        `json:"nextTeamID"`
	Failed         []wireAction `json:"failed,omitempty"`
	Reasons        []string     `json:"reasons,omitempty"`
	WinnerID       *int32       `json:"winnerID,omitempty"`
}

// KeyframeFrame carries a full reference state for reconciliation.
type KeyframeFrame struct {
	Command string           `json:"command"`
	State   wireInitialState `json:"state"`
}

// MissedTurnFrame tells the client its makeTurn for Turn was dropped.
type MissedTurnFrame struct {
	Command string `json:"command"`
	Turn    int64  `json:"turn"`
}

// ErrorFrame is a fatal server-reported rejection.
type ErrorFrame struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}
