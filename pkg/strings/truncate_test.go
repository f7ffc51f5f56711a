package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDescription(t *testing.T) {
	assert.Equal(t, "short", TruncateDescription("short", 10))
	assert.Equal(t, "exactly", TruncateDescription("exactly", 7))
	assert.Equal(t, "long...", TruncateDescription("long description", 7))
}

func TestTruncateDescription_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", TruncateDescription("a\nb\t\t c", 20))
}

func TestTruncateDescription_Unicode(t *testing.T) {
	assert.Equal(t, "héllo...", TruncateDescription("héllo wörld", 8))
}

func TestTruncateDescription_ClampsMaxLen(t *testing.T) {
	assert.Equal(t, "a...", TruncateDescription("abcdef", 0))
}
