package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrames(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		frames, err := ParseFrames("1, 8,17")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 8, 17}, frames)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := ParseFrames("0")
		assert.Error(t, err)
		_, err = ParseFrames("37")
		assert.Error(t, err)
	})

	t.Run("NotANumber", func(t *testing.T) {
		_, err := ParseFrames("one")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseFrames("")
		assert.Error(t, err)
	})
}

func TestConfig_ParseExclusiveSets(t *testing.T) {
	cfg := Config{ExclusiveSets: "TEXTILE|LEATHER; WOOD | METAL ;SINGLE"}
	sets := cfg.ParseExclusiveSets()
	require.Len(t, sets, 2) // single-member set is meaningless, dropped
	assert.Equal(t, []string{"TEXTILE", "LEATHER"}, sets[0])
	assert.Equal(t, []string{"WOOD", "METAL"}, sets[1])

	assert.Empty(t, Config{ExclusiveSets: ""}.ParseExclusiveSets())
}

func TestParseAllowList(t *testing.T) {
	allow := ParseAllowList("t1, t2,,l1")
	assert.Len(t, allow, 3)
	assert.Contains(t, allow, "t2")

	assert.Empty(t, ParseAllowList(""))
}
