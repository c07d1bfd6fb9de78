package layout

import "strings"

// DefaultSpacing is the spacing token applied when none is given.
const DefaultSpacing = "Default"

var spacingPixels = map[string]string{
	"none":       "0px",
	"extrasmall": "4px",
	"small":      "8px",
	"default":    "12px",
	"medium":     "16px",
	"large":      "24px",
	"extralarge": "32px",
	"padding":    "16px",
}

var horizontalAlignment = map[string]string{
	"left":   "flex-start",
	"center": "center",
	"right":  "flex-end",
}

var verticalAlignment = map[string]string{
	"top":    "flex-start",
	"center": "center",
	"bottom": "flex-end",
}

// SpacingValue resolves a spacing token to a CSS length. Unknown tokens
// resolve to the Default spacing.
func SpacingValue(token string) string {
	if value, ok := spacingPixels[normalizeToken(token)]; ok {
		return value
	}
	return spacingPixels["default"]
}

// HorizontalAlignmentValue maps Left/Center/Right to a flex main-axis value,
// falling back to center.
func HorizontalAlignmentValue(token string) string {
	if value, ok := horizontalAlignment[normalizeToken(token)]; ok {
		return value
	}
	return "center"
}

// VerticalAlignmentValue maps Top/Center/Bottom to a flex cross-axis value,
// falling back to flex-start.
func VerticalAlignmentValue(token string) string {
	if value, ok := verticalAlignment[normalizeToken(token)]; ok {
		return value
	}
	return "flex-start"
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
