// Package spectate rebroadcasts each snapshot a client.Game yields over
// its Turns channel to any number of locally-connected WebSocket
// observers, for a GUI or dashboard built outside this library
// (SPEC_FULL.md section 3). It keeps no history — a newly-connected
// observer only sees snapshots broadcast after it joins.
package spectate
