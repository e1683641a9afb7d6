package redis

import (
	"fmt"
	"strconv"
)

const (
	// KeyOptions holds the GlobalOptions record
	KeyOptions = "stickybar:options"
	// KeySelection holds the StickySelection record
	KeySelection = "stickybar:selection"
	// KeyPrefixPost is the prefix for post catalog keys
	KeyPrefixPost = "stickybar:post:"
	// KeyAllPosts is the key for the set of all catalog post IDs
	KeyAllPosts = "stickybar:posts:all"
)

// PostKey returns the Redis key for a post by ID
func PostKey(id int64) string {
	return KeyPrefixPost + strconv.FormatInt(id, 10)
}

// AllPostsKey returns the key for the set of all post IDs
func AllPostsKey() string {
	return KeyAllPosts
}

// ExtractPostID extracts the post ID from a Redis key
func ExtractPostID(key string) (int64, error) {
	if len(key) <= len(KeyPrefixPost) || key[:len(KeyPrefixPost)] != KeyPrefixPost {
		return 0, fmt.Errorf("invalid post key: %s", key)
	}
	id, err := strconv.ParseInt(key[len(KeyPrefixPost):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post key %s: %w", key, err)
	}
	return id, nil
}
