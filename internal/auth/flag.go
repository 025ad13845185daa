package auth

import "strings"

// MigrationMode selects which token generation the gateway accepts. It is
// resolved once at process start and never changes for the lifetime of the
// process; flipping it requires a restart.
type MigrationMode string

const (
	// ModeOff accepts legacy tokens only.
	ModeOff MigrationMode = "off"
	// ModeShadow accepts both generations during rollover.
	ModeShadow MigrationMode = "shadow"
	// ModeOn accepts new-scheme tokens only.
	ModeOn MigrationMode = "on"
)

// ParseMigrationMode maps a configured string to a MigrationMode. Anything
// unrecognized fails closed to ModeOff so a typo can never widen the set of
// accepted tokens.
func ParseMigrationMode(s string) MigrationMode {
	switch MigrationMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeShadow:
		return ModeShadow
	case ModeOn:
		return ModeOn
	default:
		return ModeOff
	}
}
