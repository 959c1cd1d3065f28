package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamKey(t *testing.T) {
	// Full franchise names collapse to the short key.
	assert.Equal(t, "LG", TeamKey("LG 트윈스"))
	assert.Equal(t, "두산", TeamKey("두산 베어스"))
	assert.Equal(t, "SSG", TeamKey("SSG 랜더스"))
	assert.Equal(t, "키움", TeamKey("키움 히어로즈"))

	// Legacy schedule API codes resolve too.
	assert.Equal(t, "두산", TeamKey("OB"))
	assert.Equal(t, "KIA", TeamKey("HT"))
	assert.Equal(t, "삼성", TeamKey("SS"))
	assert.Equal(t, "SSG", TeamKey("SK"))

	// Canonical keys are stable under repeated normalization.
	assert.Equal(t, "한화", TeamKey(TeamKey("한화 이글스")))

	// Whitespace is trimmed before lookup.
	assert.Equal(t, "NC", TeamKey("  NC 다이노스 "))

	// Unknown names pass through trimmed, not dropped.
	assert.Equal(t, "쌍방울", TeamKey(" 쌍방울 "))
}

func TestKnownTeam(t *testing.T) {
	assert.True(t, KnownTeam("LG"))
	assert.True(t, KnownTeam("두산"))
	assert.False(t, KnownTeam("OB"), "legacy code is an alias, not a canonical key")
	assert.False(t, KnownTeam("쌍방울"))
}
