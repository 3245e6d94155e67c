package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "rel:f:42", CacheKey(CacheFriends, 42))
	assert.Equal(t, "rel:fr:42", CacheKey(CacheRequests, 42))
	assert.Equal(t, "rel:sfr:7", CacheKey(CacheSentRequests, 7))
	assert.Equal(t, "rel:frurc:7", CacheKey(CacheUnrejectedRequestCount, 7))
}

func TestBustKeys_RequestsGroup(t *testing.T) {
	keys := BustKeys(CacheRequests, 5)

	// Busting the requests category drops every view derived from the same
	// request rows, but not the sender-side sent_requests key.
	assert.ElementsMatch(t, []string{
		"rel:fr:5",
		"rel:fru:5",
		"rel:fruc:5",
		"rel:frr:5",
		"rel:frj:5",
		"rel:frur:5",
		"rel:frurc:5",
	}, keys)
	assert.NotContains(t, keys, CacheKey(CacheSentRequests, 5))
}

func TestBustKeys_SelfOnlyCategories(t *testing.T) {
	for _, category := range []string{
		CacheFriends, CacheFollowers, CacheFollowing,
		CacheBlocked, CacheBlocking, CacheSentRequests,
	} {
		assert.Equal(t, []string{CacheKey(category, 9)}, BustKeys(category, 9), category)
	}
}
