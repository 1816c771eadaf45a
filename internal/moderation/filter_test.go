package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_MasksDenyListedWord(t *testing.T) {
	assert.Equal(t, "this ** is bad", Filter("this dm is bad"))
}

func TestFilter_MaskLengthMatchesRuneCount(t *testing.T) {
	// Multi-byte terms still mask one star per rune.
	clean, masked := Clean("thật là vãi")
	assert.True(t, masked)
	assert.Equal(t, "thật là ***", clean)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "**** this", Filter("FUCK this"))
}

func TestFilter_WordBoundaries(t *testing.T) {
	// "dm" inside a longer word is left alone.
	assert.Equal(t, "admin panel", Filter("admin panel"))
}

func TestFilter_MultipleMatches(t *testing.T) {
	assert.Equal(t, "** and ****", Filter("dm and shit"))
}

func TestFilter_CleanTextUnchanged(t *testing.T) {
	clean, masked := Clean("a perfectly nice comment")
	assert.False(t, masked)
	assert.Equal(t, "a perfectly nice comment", clean)
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter("this dm is bad")
	assert.Equal(t, once, Filter(once))
}

func TestFilter_EmptyString(t *testing.T) {
	assert.Equal(t, "", Filter(""))
}
