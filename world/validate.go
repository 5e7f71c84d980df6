package world

import (
	"fmt"

	"github.com/battlecode-hq/botclient/protocolerr"
)

// Validate walks both directions of the occupied/entities bijection
// (spec.md section 4.2, invariants 1-2 in section 3) and returns an error
// describing the first disagreement found, or nil if the mirror is
// internally consistent.
func (s *State) Validate() error {
	for loc, id := range s.m.occupied {
		e, ok := s.entities[id]
		if !ok {
			return fmt.Errorf("world: occupied[%s] references unknown entity %d", loc, id)
		}
		if e.Location != loc {
			return fmt.Errorf("world: entity %d location %s disagrees with occupied[%s]", id, e.Location, loc)
		}
		if e.HeldBy != nil {
			return fmt.Errorf("world: entity %d is held but still occupies %s", id, loc)
		}
	}
	for id, e := range s.entities {
		if e.HeldBy != nil {
			continue
		}
		occupant, ok := s.m.occupied[e.Location]
		if !ok || occupant != id {
			return fmt.Errorf("world: entity %d at %s is not reflected in occupied", id, e.Location)
		}
	}
	return nil
}

// ValidateAgainstKeyframe compares the live state to a disposable
// reference State built from a keyframe payload, per spec.md section 4.1.
// It returns a *protocolerr.KeyframeMismatchError describing the first
// disagreement, or nil if they agree.
func (s *State) ValidateAgainstKeyframe(reference *State) error {
	for id, want := range reference.entities {
		got, ok := s.entities[id]
		if !ok {
			return &protocolerr.KeyframeMismatchError{
				Turn:   s.turn,
				Detail: fmt.Sprintf("entity %d present in keyframe but missing locally", id),
			}
		}
		if detail, mismatched := entityMismatch(got, want); mismatched {
			return &protocolerr.KeyframeMismatchError{Turn: s.turn, Detail: detail}
		}
	}
	for id := range s.entities {
		if _, ok := reference.entities[id]; !ok {
			return &protocolerr.KeyframeMismatchError{
				Turn:   s.turn,
				Detail: fmt.Sprintf("entity %d present locally but missing from keyframe", id),
			}
		}
	}

	for loc, sec := range reference.m.sectors {
		got, ok := s.m.sectors[loc]
		if !ok {
			return &protocolerr.KeyframeMismatchError{
				Turn:   s.turn,
				Detail: fmt.Sprintf("sector %s present in keyframe but missing locally", loc),
			}
		}
		if !sameTeamPtr(got.ControllingTeam, sec.ControllingTeam) {
			return &protocolerr.KeyframeMismatchError{
				Turn:   s.turn,
				Detail: fmt.Sprintf("sector %s controlling team disagrees with keyframe", loc),
			}
		}
	}

	for loc, wantID := range reference.m.occupied {
		gotID, ok := s.m.occupied[loc]
		if !ok || gotID != wantID {
			return &protocolerr.KeyframeMismatchError{
				Turn:   s.turn,
				Detail: fmt.Sprintf("occupancy at %s disagrees with keyframe", loc),
			}
		}
	}

	return nil
}

func entityMismatch(got, want *Entity) (string, bool) {
	switch {
	case got.Type != want.Type:
		return fmt.Sprintf("entity %d type %s != keyframe type %s", got.ID, got.Type, want.Type), true
	case got.Team != want.Team:
		return fmt.Sprintf("entity %d team %d != keyframe team %d", got.ID, got.Team, want.Team), true
	case got.Location != want.Location:
		return fmt.Sprintf("entity %d location %s != keyframe location %s", got.ID, got.Location, want.Location), true
	case got.HP != want.HP:
		return fmt.Sprintf("entity %d hp %d != keyframe hp %d", got.ID, got.HP, want.HP), true
	case !sameIDPtr(got.HeldBy, want.HeldBy):
		return fmt.Sprintf("entity %d heldBy disagrees with keyframe", got.ID), true
	case !sameIDPtr(got.Holding, want.Holding):
		return fmt.Sprintf("entity %d holding disagrees with keyframe", got.ID), true
	default:
		return "", false
	}
}

func sameIDPtr(a, b *EntityID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTeamPtr(a, b *TeamID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
