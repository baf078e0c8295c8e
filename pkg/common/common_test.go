package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.Positive(t, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestSha256HashWithSalt(t *testing.T) {
	a := Sha256HashWithSalt("primehomes", "salt-a")
	b := Sha256HashWithSalt("primehomes", "salt-a")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Sha256HashWithSalt("primehomes", "salt-b"))
	assert.NotEqual(t, a, Sha256HashWithSalt("other", "salt-a"))
}
