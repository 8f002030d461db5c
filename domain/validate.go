package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Protocol limits and defaults.
const (
	MaxNameLength      = 32
	MaxMessageLength   = 500
	MinStrokeSize      = 2
	MaxStrokeSize      = 16
	DefaultStrokeSize  = 4
	DefaultStrokeColor = "#111111"
	DefaultRoom        = "demo"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidRoom reports whether a room identifier is usable for routing.
func ValidRoom(room string) bool {
	return strings.TrimSpace(room) != ""
}

// ValidColor reports whether color is a 6-hex-digit RGB string.
func ValidColor(color string) bool {
	return colorPattern.MatchString(color)
}

// ValidCoordinate reports whether a normalized coordinate is in [0,1].
func ValidCoordinate(c float64) bool {
	return c >= 0 && c <= 1
}

// SanitizeName trims and truncates a display name. An empty result means
// the caller should fall back to a generated name.
func SanitizeName(name string) string {
	return truncate(strings.TrimSpace(name), MaxNameLength)
}

// SanitizeMessage trims and truncates chat text.
func SanitizeMessage(text string) string {
	return truncate(strings.TrimSpace(text), MaxMessageLength)
}

// FallbackName derives a display name from a session id.
func FallbackName(sessionID string) string {
	if len(sessionID) > 4 {
		sessionID = sessionID[:4]
	}
	return "User-" + sessionID
}

// truncate limits s to max characters, not bytes, so a multi-byte rune is
// never split at the boundary.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
