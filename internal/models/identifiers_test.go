package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomDigitID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := RandomDigitID()
		require.NoError(t, err)
		assert.Len(t, id, 8)
		assert.NotEqual(t, byte('0'), id[0], "ids never carry a leading zero")
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestNewOrderID(t *testing.T) {
	now := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	id := NewOrderID(now)

	assert.Regexp(t, `^ORD-20250309-\d{5}$`, id)
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"S", "M", "L"}

	value, err := list.Value()
	require.NoError(t, err)

	var back StringList
	require.NoError(t, back.Scan(value))
	assert.Equal(t, list, back)

	assert.True(t, back.Contains("M"))
	assert.False(t, back.Contains("XL"))
}

func TestStringListScanNil(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
}
