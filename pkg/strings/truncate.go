package strings

import "strings"

// DefaultDescriptionMaxLen is the default maximum length for descriptions in
// formatted output.
const DefaultDescriptionMaxLen = 60

// minTruncateLen leaves room for at least one character plus "...".
const minTruncateLen = 4

// TruncateDescription collapses a string to a single line and truncates it
// to maxLen characters, appending "..." when it was cut. Slicing is
// rune-based so multi-byte characters are never split.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
