package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePublicID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GeneratePublicID()
		assert.Len(t, id, 22)
		// URL-safe alphabet only
		assert.NotContains(t, id, "+")
		assert.NotContains(t, id, "/")
		assert.NotContains(t, id, "=")
		assert.False(t, seen[id], "public IDs must not repeat")
		seen[id] = true
	}
}

func TestImageIdentifier(t *testing.T) {
	data := []byte("png-bytes")

	first := ImageIdentifier(data, 1)
	assert.Len(t, first, 64)
	assert.Equal(t, first, ImageIdentifier(data, 1))

	// same bytes on another campaign produce a different identifier
	assert.NotEqual(t, first, ImageIdentifier(data, 2))
	assert.NotEqual(t, first, ImageIdentifier([]byte("other-bytes"), 1))
}

func TestCostScaling(t *testing.T) {
	assert.Equal(t, int64(10000), ScaleCost(100))
	assert.Equal(t, int64(100), UnscaleCost(10000))
	assert.Equal(t, int64(0), ScaleCost(0))
}
