package utils

import "strings"

// ParseBoolish interprets the loose boolean strings accepted by query
// parameters: "true", "1" and "yes", case-insensitive. Everything else is
// false.
func ParseBoolish(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
