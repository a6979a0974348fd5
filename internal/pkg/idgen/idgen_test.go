package idgen

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIsBase36Millis(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewGeneratorWithClock(func() time.Time { return fixed })

	assert.Equal(t, strconv.FormatInt(1700000000000, 36), gen.Next())
}

func TestNextAppendsCounterWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewGeneratorWithClock(func() time.Time { return fixed })

	base := gen.Next()
	assert.Equal(t, base+"-1", gen.Next())
	assert.Equal(t, base+"-2", gen.Next())
}

func TestNextResetsCounterOnNewMillisecond(t *testing.T) {
	ms := int64(1700000000000)
	gen := NewGeneratorWithClock(func() time.Time { return time.UnixMilli(ms) })

	first := gen.Next()
	second := gen.Next()
	require.Equal(t, first+"-1", second)

	ms++
	third := gen.Next()
	assert.NotContains(t, third, "-")
	assert.NotEqual(t, first, third)
}

func TestNextUniqueUnderBurst(t *testing.T) {
	gen := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
