package botenv

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the connection settings a bot reads from the
// environment (spec.md section 6).
type Config struct {
	// PlayerKey is forwarded in the login command as the shared secret,
	// from BATTLECODE_PLAYER_KEY.
	PlayerKey string
	// ServerAddr holds BATTLECODE_SERVER. Nothing in this module applies
	// it: transport.Dial and client.NewGame always use the transport
	// package defaults.
	ServerAddr string
	// LogLevel is an opaque string from BATTLECODE_LOG_LEVEL, left for
	// callers to interpret; the library itself doesn't filter on it.
	LogLevel string
}

// Load reads a .env file if present (silently ignoring its absence, same
// as the teacher's main.go) and returns the resulting Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("botenv: warning: error loading .env file: %v", err)
		}
	}
	return Config{
		PlayerKey:  os.Getenv("BATTLECODE_PLAYER_KEY"),
		ServerAddr: os.Getenv("BATTLECODE_SERVER"),
		LogLevel:   os.Getenv("BATTLECODE_LOG_LEVEL"),
	}
}
