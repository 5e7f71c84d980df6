package client

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/battlecode-hq/botclient/protocol"
	"github.com/battlecode-hq/botclient/protocolerr"
	"github.com/battlecode-hq/botclient/transport"
	"github.com/battlecode-hq/botclient/world"
)

const frameBufferSize = 64

const (
	termRed = "\x1b[31m"
	termEnd = "\x1b[0m"
)

type frameMsg struct {
	line []byte
	err  error
}

// Game drives one connection to the server for the lifetime of a match.
type Game struct {
	transport transport.Transport
	logger    *log.Logger
	frames    chan frameMsg

	// ColorLogs enables ANSI-red formatting of failed-action reports.
	ColorLogs bool

	// RunID tags every log line this Game emits, for correlating output
	// across concurrently-run bots.
	RunID string

	myTeamID    world.TeamID
	state       *world.State
	winner      *world.TeamID
	missedTurns map[int64]bool
}

// NewGame dials the default transport, performs the login handshake, and
// fast-forwards past any turns that precede this bot's first turn
// (spec.md section 4.1). name identifies this bot to the server; key, if
// non-empty, is forwarded as the login command's shared secret.
func NewGame(name, key string, opts ...Option) (*Game, error) {
	t, err := transport.Dial()
	if err != nil {
		return nil, err
	}
	return NewGameWithTransport(t, name, key, opts...)
}

// NewGameWithTransport is NewGame but over a caller-supplied transport,
// for tests and for alternate framings.
func NewGameWithTransport(t transport.Transport, name, key string, opts ...Option) (*Game, error) {
	g := &Game{
		transport:   t,
		logger:      log.Default(),
		frames:      make(chan frameMsg, frameBufferSize),
		missedTurns: make(map[int64]bool),
		RunID:       uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}

	go g.receiveLoop()

	if err := g.send(protocol.NewLoginCommand(name, key)); err != nil {
		g.transport.Close()
		return nil, err
	}

	var confirm protocol.LoginConfirmFrame
	if err := g.recvInto(&confirm); err != nil {
		g.transport.Close()
		return nil, err
	}
	g.myTeamID = world.TeamID(confirm.TeamID)

	var start protocol.StartFrame
	if err := g.recvInto(&start); err != nil {
		g.transport.Close()
		return nil, err
	}

	teams := protocol.BuildTeams(start.Teams)
	m, entityUpdates, sectorUpdates := protocol.BuildMap(start.InitialState)
	st := world.NewState(teams, g.myTeamID, m, entityUpdates)
	st.UpdateSectors(sectorUpdates)
	g.state = st

	if _, err := g.awaitTurn(); err != nil {
		g.transport.Close()
		return nil, err
	}

	return g, nil
}

func (g *Game) send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return g.transport.Send(payload)
}

func (g *Game) receiveLoop() {
	for {
		line, err := g.transport.Recv()
		if err != nil {
			g.frames <- frameMsg{err: err}
			close(g.frames)
			return
		}
		g.frames <- frameMsg{line: line}
	}
}

func (g *Game) recvInto(v any) error {
	item, ok := <-g.frames
	if !ok {
		return protocolerr.ErrTransportClosed
	}
	if item.err != nil {
		return item.err
	}
	return json.Unmarshal(item.line, v)
}

// framesPending reports whether more frames are already buffered, used to
// coalesce interleaved opponent-turn updates into a single snapshot
// (spec.md section 4.1).
func (g *Game) framesPending() bool {
	return len(g.frames) > 0
}

// awaitTurn drains frames until either a nextTurn addressed to this team
// arrives with no more frames immediately pending, or the game ends. The
// bool return reports whether play continues.
func (g *Game) awaitTurn() (bool, error) {
	for {
		item, ok := <-g.frames
		if !ok {
			return false, protocolerr.ErrTransportClosed
		}
		if item.err != nil {
			return false, item.err
		}

		var envelope protocol.Envelope
		if err := json.Unmarshal(item.line, &envelope); err != nil {
			return false, protocolerr.ErrMalformedFrame
		}

		switch envelope.Command {
		case "nextTurn":
			var f protocol.NextTurnFrame
			if err := json.Unmarshal(item.line, &f); err != nil {
				return false, protocolerr.ErrMalformedFrame
			}
			changed, dead, sectors := protocol.NextTurnUpdates(f)
			g.state.UpdateEntities(changed)
			g.state.KillEntities(dead)
			g.state.UpdateSectors(sectors)
			g.state.SetTurn(f.Turn + 1)

			if f.LastTeamID == int32(g.myTeamID) {
				g.logFailedActions(f)
			}
			if f.WinnerID != nil {
				winner := world.TeamID(*f.WinnerID)
				g.winner = &winner
				return false, nil
			}
			if f.NextTeamID == int32(g.myTeamID) && !g.framesPending() {
				return true, nil
			}

		case "keyframe":
			var f protocol.KeyframeFrame
			if err := json.Unmarshal(item.line, &f); err != nil {
				return false, protocolerr.ErrMalformedFrame
			}
			m, entityUpdates, sectorUpdates := protocol.BuildMap(f.State)
			reference := world.NewState(g.state.Teams(), g.myTeamID, m, entityUpdates)
			reference.UpdateSectors(sectorUpdates)
			if err := g.state.ValidateAgainstKeyframe(reference); err != nil {
				return false, err
			}

		case "missedTurn":
			var f protocol.MissedTurnFrame
			if err := json.Unmarshal(item.line, &f); err != nil {
				return false, protocolerr.ErrMalformedFrame
			}
			g.missedTurns[f.Turn] = true
			g.logger.Printf("[%s] game: turn %d missed, skipping next submission", g.RunID, f.Turn)

		case "error":
			var f protocol.ErrorFrame
			if err := json.Unmarshal(item.line, &f); err != nil {
				return false, protocolerr.ErrMalformedFrame
			}
			return false, &protocolerr.ServerError{Message: f.Reason}

		default:
			return false, protocolerr.ErrMalformedFrame
		}
	}
}

func (g *Game) logFailedActions(f protocol.NextTurnFrame) {
	for _, fa := range protocol.FailedActions(f) {
		msg := fmt.Sprintf("[%s] game: action %s on entity %d failed: %s", g.RunID, fa.Action.Action, fa.Action.ID, fa.Reason)
		if g.ColorLogs {
			msg = termRed + msg + termEnd
		}
		g.logger.Println(msg)
	}
}

// NextTurn submits the currently-queued actions (or discards them if this
// turn was reported missed) and blocks until the next state addressed to
// this bot is ready. It returns (nil, nil) once the game has a winner.
func (g *Game) NextTurn() (*world.State, error) {
	turn := g.state.Turn()
	if g.missedTurns[turn] {
		delete(g.missedTurns, turn)
		g.state.DiscardActionQueue()
	} else {
		actions := g.state.DrainActionQueue()
		cmd := protocol.MakeTurnCommand{Command: "makeTurn", Turn: turn, Actions: protocol.ActionsToWire(actions)}
		if err := g.send(cmd); err != nil {
			return nil, err
		}
	}

	ok, err := g.awaitTurn()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return g.state, nil
}

// Turns returns a channel yielding one State per turn addressed to this
// bot until the game ends or a fatal error occurs, at which point the
// channel is closed. If speculate is true, copy is forced true so each
// yielded state is a stable clone rather than the live mirror. Fatal
// errors are logged; callers who need the error itself should drive
// NextTurn directly instead.
func (g *Game) Turns(copy, speculate bool) <-chan *world.State {
	if speculate {
		copy = true
	}
	out := make(chan *world.State)
	go func() {
		defer close(out)
		g.state.Speculate = speculate
		for {
			st, err := g.NextTurn()
			if err != nil {
				g.logger.Printf("[%s] game: fatal: %v", g.RunID, err)
				return
			}
			if st == nil {
				return
			}
			if copy {
				out <- st.Clone()
			} else {
				out <- st
			}
		}
	}()
	return out
}

// State returns the live world mirror.
func (g *Game) State() *world.State { return g.state }

// MyTeamID returns the team id this client plays as.
func (g *Game) MyTeamID() world.TeamID { return g.myTeamID }

// Winner returns the winning team id once the game has ended.
func (g *Game) Winner() (world.TeamID, bool) {
	if g.winner == nil {
		return 0, false
	}
	return *g.winner, true
}

// Close shuts down the transport.
func (g *Game) Close() error { return g.transport.Close() }
