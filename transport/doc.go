// Package transport provides the newline-delimited JSON stream the
// protocol driver speaks to the game server over (spec.md section 6): a
// Unix domain socket at /tmp/battlecode.sock by default, falling back to
// TCP on platforms without Unix sockets.
package transport
