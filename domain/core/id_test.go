package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestNewRunID_IsTimeOrderedUUID(t *testing.T) {
	id := NewRunID()
	parsed, err := uuid.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestComputeTableHash(t *testing.T) {
	species := []string{"oak", "ash"}
	a := ComputeTableHash(species, [][]float64{{1, 2}, {3, 4}})
	b := ComputeTableHash(species, [][]float64{{1, 2}, {3, 4}})
	c := ComputeTableHash(species, [][]float64{{1, 2}, {3, 5}})
	d := ComputeTableHash([]string{"oa", "kash"}, [][]float64{{1, 2}, {3, 4}})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Len(t, a.String(), 64)
	assert.Equal(t, a.String()[:12], a.Short())
}
