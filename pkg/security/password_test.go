package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	digest, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))

	assert.NoError(t, hasher.Compare(digest, "correct-horse"))
	assert.Error(t, hasher.Compare(digest, "wrong"))
}

func TestHashRejectsOversizedPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	// bcrypt caps input at 72 bytes
	_, err := hasher.Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestHashProducesUniqueDigests(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	second, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99)

	digest, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(digest, "correct-horse"))
}
