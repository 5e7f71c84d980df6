// Package client implements the protocol driver (spec.md section 4.1): it
// owns the transport, performs the login handshake, dispatches server
// frames onto the world mirror, and exposes a turn-by-turn cursor to the
// bot. Only the goroutine that calls into Game is expected to touch the
// State it hands back — see spec.md section 5.
package client
