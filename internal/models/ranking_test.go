package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOf(t *testing.T) {
	assert.Equal(t, Rank{Number: 1}, RankOf("1"))
	assert.Equal(t, Rank{Number: 10}, RankOf(" 10 "))
	assert.Equal(t, Rank{Text: "-"}, RankOf("-"))
	assert.True(t, RankOf("-").IsPlaceholder())
	assert.False(t, RankOf("3").IsPlaceholder())
}

func TestRankJSON(t *testing.T) {
	// Numeric ranks marshal as JSON numbers, placeholders as strings.
	data, err := json.Marshal(Rank{Number: 3})
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	data, err = json.Marshal(Rank{Text: RankPlaceholder})
	require.NoError(t, err)
	assert.Equal(t, `"-"`, string(data))

	var r Rank
	require.NoError(t, json.Unmarshal([]byte("7"), &r))
	assert.Equal(t, Rank{Number: 7}, r)

	require.NoError(t, json.Unmarshal([]byte(`"-"`), &r))
	assert.Equal(t, Rank{Text: "-"}, r)

	assert.Error(t, json.Unmarshal([]byte("true"), &r))
}
