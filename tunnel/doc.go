// Package tunnel optionally exposes a debugserver.Server over a public
// ngrok tunnel, mirroring the teacher's main.go ngrok bring-up
// (SPEC_FULL.md section 3). It starts only on an explicit call to Serve;
// no environment variable enables it. Never required by the core library.
package tunnel
