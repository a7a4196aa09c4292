package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "userProfile:abc", RedisKey(PfxUserProfile, "abc"))
}

func TestGetPrefix(t *testing.T) {
	assert.Equal(t, "", GetPrefix("plain"))
	assert.Equal(t, "userProfile", GetPrefix("userProfile:abc"))
	assert.Equal(t, "httpCache:listings", GetPrefix("httpCache:listings:123"))
}
