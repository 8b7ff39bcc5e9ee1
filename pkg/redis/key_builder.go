package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeyPollList() string {
	return kb.BuildKey(KeyPollList)
}

func (kb *KeyBuilder) KeyPollDetail(pollID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPollDetail, pollID))
}

func (kb *KeyBuilder) KeyPollResults(pollID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPollResults, pollID))
}

// KeyPollPattern builds the glob covering every per-poll entry (detail,
// results) for one poll. Intended for pattern invalidation.
func (kb *KeyBuilder) KeyPollPattern(pollID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPollPattern, pollID))
}

func (kb *KeyBuilder) KeyCategoryList() string {
	return kb.BuildKey(KeyCategoryList)
}

func (kb *KeyBuilder) KeyCampaignList() string {
	return kb.BuildKey(KeyCampaignList)
}

func (kb *KeyBuilder) KeyPasswordReset(token string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPasswordReset, token))
}

func (kb *KeyBuilder) KeyIdempotency(key string) string {
	return kb.BuildKey(fmt.Sprintf(KeyIdempotency, key))
}

// KeyCustom builds a key from an arbitrary pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(pattern, args...))
}
