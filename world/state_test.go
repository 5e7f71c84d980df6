package world_test

import (
	"testing"

	"github.com/battlecode-hq/botclient/battletest"
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/world"
)

func TestLoginStart(t *testing.T) {
	st := battletest.LoginStartScenario()

	h, ok := st.Entity(100)
	if !ok {
		t.Fatal("entity 100 not found")
	}
	if h.Entity().Location != geometry.NewLocation(0, 0) {
		t.Errorf("entity 100 location = %v, want (0,0)", h.Entity().Location)
	}
	if id, ok := st.Map().EntityAtLocation(geometry.NewLocation(0, 0)); !ok || id != 100 {
		t.Errorf("map.occupied[(0,0)] = %v, %v, want 100, true", id, ok)
	}
	if st.MyTeam().ID != 1 {
		t.Errorf("my_team.id = %d, want 1", st.MyTeam().ID)
	}
	if err := st.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestQueueMoveEast(t *testing.T) {
	st := battletest.LoginStartScenario()
	h, _ := st.Entity(100)

	if err := h.QueueMove(geometry.East); err != nil {
		t.Fatalf("QueueMove(East) = %v", err)
	}

	actions := st.DrainActionQueue()
	if len(actions) != 1 {
		t.Fatalf("action queue length = %d, want 1", len(actions))
	}
	a := actions[0]
	if a.Kind != world.ActionMove || a.ID != 100 || *a.DX != 1 || *a.DY != 0 {
		t.Errorf("action = %+v, want move id:100 dx:1 dy:0", a)
	}

	if _, ok := st.Map().EntityAtLocation(geometry.NewLocation(1, 0)); !ok {
		t.Error("map.occupied[(1,0)] missing after speculative move")
	}
	if st.Map().Occupied(geometry.NewLocation(0, 0)) {
		t.Error("map.occupied[(0,0)] should be cleared after speculative move")
	}
	if h.Cooldown() != 1 {
		t.Errorf("cooldown = %d, want 1", h.Cooldown())
	}
}

func TestBlockedMove(t *testing.T) {
	st := battletest.BlockedMoveScenario()
	h, _ := st.Entity(1)

	if h.CanMove(geometry.East) {
		t.Error("CanMove(East) should be false with a hedge blocking")
	}

	st.Strict = true
	if err := h.QueueMove(geometry.East); err == nil {
		t.Error("QueueMove in Strict mode should error on an illegal move")
	}
	st.DrainActionQueue()

	st.Strict = false
	if err := h.QueueMove(geometry.East); err != nil {
		t.Errorf("non-strict QueueMove should not error, got %v", err)
	}
	if len(st.DrainActionQueue()) == 0 {
		t.Error("illegal move should still enqueue in non-strict mode")
	}
	if h.Entity().Location != geometry.NewLocation(0, 0) {
		t.Error("speculative move should not have been applied since it was illegal")
	}
}

func TestPickupAndThrow(t *testing.T) {
	st := battletest.PickupThrowScenario(9)
	x, _ := st.Entity(1)
	y, _ := st.Entity(2)

	if !x.CanPickup(y) {
		t.Fatal("CanPickup should be true for adjacent throwers")
	}
	if err := x.QueuePickup(y); err != nil {
		t.Fatalf("QueuePickup = %v", err)
	}
	if !x.Entity().IsHolding() || *x.Entity().Holding != 2 {
		t.Errorf("x.Holding = %v, want 2", x.Entity().Holding)
	}
	if y.Entity().HeldBy == nil || *y.Entity().HeldBy != 1 {
		t.Errorf("y.HeldBy = %v, want 1", y.Entity().HeldBy)
	}
	if y.Entity().Location != x.Entity().Location {
		t.Error("held entity location should mirror holder's location")
	}
	if st.Map().Occupied(geometry.NewLocation(1, 0)) {
		t.Error("(1,0) should be vacated once Y is picked up")
	}
	st.DrainActionQueue()
	st.SetTurn(st.Turn() + 1)

	if err := x.QueueThrow(geometry.East); err != nil {
		t.Fatalf("QueueThrow = %v", err)
	}
	if x.Entity().Holding != nil {
		t.Error("x should no longer be holding after throw")
	}
	want := geometry.NewLocation(7, 0)
	if y.Entity().Location != want {
		t.Errorf("y landed at %v, want %v", y.Entity().Location, want)
	}
	if y.Entity().HP != 10 {
		t.Errorf("y.hp = %d, want 10 (no obstacle hit)", y.Entity().HP)
	}
	if id, ok := st.Map().EntityAtLocation(want); !ok || id != 2 {
		t.Errorf("map.occupied[%v] = %v,%v want 2,true", want, id, ok)
	}
}

func TestThrowRecoil(t *testing.T) {
	st := battletest.ThrowRecoilScenario()
	x, _ := st.Entity(1)
	y, _ := st.Entity(2)
	z, _ := st.Entity(3)

	if err := x.QueueThrow(geometry.East); err != nil {
		t.Fatalf("QueueThrow = %v", err)
	}
	if z.Entity().HP != 6 {
		t.Errorf("z.hp = %d, want 6", z.Entity().HP)
	}
	if y.Entity().HP != 8 {
		t.Errorf("y.hp = %d, want 8", y.Entity().HP)
	}
	want := geometry.NewLocation(2, 0)
	if y.Entity().Location != want {
		t.Errorf("y landed at %v, want %v", y.Entity().Location, want)
	}
}

func TestDisintegrateRemovesEntity(t *testing.T) {
	st := battletest.LoginStartScenario()
	h, _ := st.Entity(100)

	if err := h.QueueDisintegrate(); err != nil {
		t.Fatalf("QueueDisintegrate = %v", err)
	}
	if _, ok := st.Entity(100); ok {
		t.Error("entity should be gone after disintegration")
	}
	if st.Map().Occupied(geometry.NewLocation(0, 0)) {
		t.Error("occupancy should be cleared after disintegration")
	}
}

func TestBuildStatueSpeculative(t *testing.T) {
	st := battletest.LoginStartScenario()
	h, _ := st.Entity(100)

	if err := h.QueueBuild(geometry.East); err != nil {
		t.Fatalf("QueueBuild = %v", err)
	}

	built, ok := st.EntityAt(geometry.NewLocation(1, 0))
	if !ok {
		t.Fatal("statue should have been speculatively built at (1,0)")
	}
	if !built.Entity().IsStatue() {
		t.Error("built entity should be a statue")
	}
	if built.Entity().HP != world.DefaultStatueHP {
		t.Errorf("built statue hp = %d, want %d", built.Entity().HP, world.DefaultStatueHP)
	}
}

func TestValidateAgainstKeyframeMismatch(t *testing.T) {
	live := battletest.LoginStartScenario()
	reference := battletest.LoginStartScenario()

	h, _ := live.Entity(100)
	h.Entity().Location = geometry.NewLocation(1, 0)

	if err := live.ValidateAgainstKeyframe(reference); err == nil {
		t.Fatal("expected a keyframe mismatch error")
	}
}
