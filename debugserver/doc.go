// Package debugserver serves a running client.Game's mirror as read-only
// JSON over HTTP, for external introspection tooling (SPEC_FULL.md
// section 3). It is observability, not a game-rules surface: every
// handler is a GET.
package debugserver
