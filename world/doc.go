// Package world is the authoritative client-side mirror of the game world.
//
// The core types are:
//
//   - Team: a small id/name pair identifying one side.
//   - Entity: a thrower, statue, or hedge, tracked by id.
//   - Sector: a sector_size-aligned tile region with a controlling team.
//   - Map: the tile grid plus the occupancy index (location -> entity id).
//   - State: the full mirror — entities by id, the map, the current turn,
//     and the outgoing action queue.
//
// State owns the invariants described in spec.md section 3: every non-held
// entity occupies exactly one cell in Map's occupancy index, holder/held
// pairs agree on location, and no dead entity remains in Entities.
//
// Entities never hold pointers to other entities or to State; a held/holder
// relationship is a pair of EntityIDs resolved through State on demand, so
// the object graph has no cycles (spec.md section 9).
//
// EntityHandle's Queue* methods both enqueue a wire action and, when
// State.Speculate is true and the action can take effect, apply that
// action's effect immediately so a bot can reason about
// its own turn-half before the server confirms it (spec.md section 4.5).
// Speculation is best-effort: the next authoritative nextTurn frame
// overwrites whatever speculation computed.
package world
