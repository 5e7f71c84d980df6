// Package protocolerr defines the typed errors the client and the world
// mirror can produce: transport failures, malformed wire frames, server-
// reported rejections, an illegal action queued in strict mode (returned
// to the caller of the Queue* method), and the fatal desync condition of
// a keyframe that disagrees with the speculative mirror.
package protocolerr
