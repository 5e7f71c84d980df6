package client_test

import (
	"strings"
	"testing"

	"github.com/battlecode-hq/botclient/battletest"
	"github.com/battlecode-hq/botclient/client"
	"github.com/battlecode-hq/botclient/geometry"
)

func loginStartFrames() [][]byte {
	return [][]byte{
		[]byte(`{"command":"loginConfirm","teamID":1}`),
		[]byte(`{"command":"start","teams":[{"teamID":1,"name":"A"},{"teamID":2,"name":"B"}],"initialState":{"width":2,"height":1,"tiles":[["G","G"]],"sectorSize":2,"entities":[{"id":100,"type":"thrower","teamID":1,"hp":10,"location":{"x":0,"y":0}}],"sectors":[{"topLeft":{"x":0,"y":0},"controllingTeamID":1}]}}`),
		[]byte(`{"command":"nextTurn","turn":0,"changed":[],"dead":[],"changedSectors":[],"lastTeamID":2,"nextTeamID":1}`),
	}
}

func TestNewGameHandshake(t *testing.T) {
	tr := battletest.NewMemoryTransport(loginStartFrames()...)
	game, err := client.NewGameWithTransport(tr, "tester", "")
	if err != nil {
		t.Fatalf("NewGameWithTransport = %v", err)
	}
	defer game.Close()

	if game.MyTeamID() != 1 {
		t.Errorf("MyTeamID = %d, want 1", game.MyTeamID())
	}
	if game.State().Turn() != 1 {
		t.Errorf("Turn = %d, want 1", game.State().Turn())
	}
	if len(tr.Sent) != 1 {
		t.Fatalf("expected exactly the login command sent, got %d frames", len(tr.Sent))
	}
}

func TestNextTurnSubmitsQueuedActions(t *testing.T) {
	frames := append(loginStartFrames(),
		[]byte(`{"command":"nextTurn","turn":1,"changed":[{"id":100,"location":{"x":1,"y":0},"hp":10,"cooldownEnd":2}],"dead":[],"changedSectors":[],"lastTeamID":1,"nextTeamID":1}`),
	)
	tr := battletest.NewMemoryTransport(frames...)
	game, err := client.NewGameWithTransport(tr, "tester", "")
	if err != nil {
		t.Fatalf("NewGameWithTransport = %v", err)
	}
	defer game.Close()

	h, ok := game.State().Entity(100)
	if !ok {
		t.Fatal("entity 100 missing after handshake")
	}
	if err := h.QueueMove(geometry.East); err != nil {
		t.Fatalf("QueueMove = %v", err)
	}

	st, err := game.NextTurn()
	if err != nil {
		t.Fatalf("NextTurn = %v", err)
	}
	if st.Turn() != 2 {
		t.Errorf("Turn = %d, want 2", st.Turn())
	}

	if len(tr.Sent) != 2 {
		t.Fatalf("expected login + makeTurn sent, got %d", len(tr.Sent))
	}
	if !strings.Contains(string(tr.Sent[1]), `"command":"makeTurn"`) || !strings.Contains(string(tr.Sent[1]), `"action":"move"`) {
		t.Errorf("makeTurn frame missing expected content: %s", tr.Sent[1])
	}
}

func TestGameEndsWithWinner(t *testing.T) {
	frames := append(loginStartFrames(),
		[]byte(`{"command":"nextTurn","turn":1,"changed":[],"dead":[],"changedSectors":[],"lastTeamID":1,"nextTeamID":2,"winnerID":1}`),
	)
	tr := battletest.NewMemoryTransport(frames...)
	game, err := client.NewGameWithTransport(tr, "tester", "")
	if err != nil {
		t.Fatalf("NewGameWithTransport = %v", err)
	}
	defer game.Close()

	st, err := game.NextTurn()
	if err != nil {
		t.Fatalf("NextTurn = %v", err)
	}
	if st != nil {
		t.Error("NextTurn should return a nil state once a winner is decided")
	}
	winner, ok := game.Winner()
	if !ok || winner != 1 {
		t.Errorf("Winner() = %d, %v, want 1, true", winner, ok)
	}
}

func TestMissedTurnDiscardsQueue(t *testing.T) {
	frames := append(loginStartFrames(),
		[]byte(`{"command":"missedTurn","turn":1}`),
		[]byte(`{"command":"nextTurn","turn":1,"changed":[],"dead":[],"changedSectors":[],"lastTeamID":2,"nextTeamID":1}`),
	)
	tr := battletest.NewMemoryTransport(frames...)
	game, err := client.NewGameWithTransport(tr, "tester", "")
	if err != nil {
		t.Fatalf("NewGameWithTransport = %v", err)
	}
	defer game.Close()

	h, _ := game.State().Entity(100)
	h.QueueMove(geometry.East)

	if _, err := game.NextTurn(); err != nil {
		t.Fatalf("NextTurn = %v", err)
	}
	// Only the login command should have been sent; the makeTurn for the
	// missed turn must be skipped.
	if len(tr.Sent) != 1 {
		t.Errorf("expected makeTurn to be skipped for a missed turn, sent %d frames", len(tr.Sent))
	}
}
