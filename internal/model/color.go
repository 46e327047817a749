package model

import "regexp"

// DefaultColor is applied when a category or tag omits one.
const DefaultColor = "#808080"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidHexColor reports whether s is a #RRGGBB color string.
func ValidHexColor(s string) bool {
	return hexColor.MatchString(s)
}
