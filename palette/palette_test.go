package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor(t *testing.T) {
	assert.Equal(t, "00ADD8", ColorFor("Go", 0))
	assert.Equal(t, "3776AB", ColorFor("Python", 17))
	assert.Equal(t, "A0A0A0", ColorFor("Other", 3))

	// Unknown languages cycle through the fallback palette.
	assert.Equal(t, Fallback[0], ColorFor("Zig", 0))
	assert.Equal(t, Fallback[3], ColorFor("Zig", 3))
	assert.Equal(t, Fallback[1], ColorFor("Zig", len(Fallback)+1))
	assert.Equal(t, Fallback[2], ColorFor("Zig", -2))
}
