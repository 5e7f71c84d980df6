package client

import "log"

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger overrides the default logger (log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithColorLogs turns on ANSI-red formatting for failed-action reports,
// matching the original source's terminal output (spec.md section 4 /
// SPEC_FULL.md's recovered "failed-action coloring" feature). Off by
// default, since a non-interactive log consumer shouldn't see escape
// codes.
func WithColorLogs(enabled bool) Option {
	return func(g *Game) { g.ColorLogs = enabled }
}
