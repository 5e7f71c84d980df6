// Package botenv loads a bot's connection configuration from the process
// environment, optionally seeded from a .env file via godotenv (spec.md
// section 6, SPEC_FULL.md section 2.3).
package botenv
