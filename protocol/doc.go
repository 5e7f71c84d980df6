// Package protocol defines the wire-format JSON frames exchanged with the
// game server (spec.md section 6) and the pure functions that translate
// them to and from the world package's transport-agnostic types. Nothing
// here touches a socket; see package transport for framing and package
// client for the driver that ties the two together.
package protocol
