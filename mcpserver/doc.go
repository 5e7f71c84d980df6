// Package mcpserver exposes a running client.Game as a Model Context
// Protocol server, so an external agent or IDE can inspect state and
// queue actions interactively (SPEC_FULL.md section 3). It is optional
// and additive — the core protocol driver has no dependency on it.
package mcpserver
