package redis

import (
	"testing"
)

func TestKeyBuilder_Environment_Prefixes(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{
			name:           "Production environment should use prod prefix",
			environment:    "production",
			expectedPrefix: "prod",
		},
		{
			name:           "Development environment should use staging prefix",
			environment:    "development",
			expectedPrefix: "staging",
		},
		{
			name:           "Staging environment should use staging prefix",
			environment:    "staging",
			expectedPrefix: "staging",
		},
		{
			name:           "Test environment should use staging prefix",
			environment:    "test",
			expectedPrefix: "staging",
		},
		{
			name:           "Unknown environment should default to prod prefix",
			environment:    "unknown",
			expectedPrefix: "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("NewKeyBuilder(%s).GetPrefix() = %s, want %s",
					tt.environment, kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_KeyGeneration(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		method   func() string
		expected string
	}{
		{
			name:     "PollList key",
			method:   kb.KeyPollList,
			expected: "prod:poll:list",
		},
		{
			name:     "PollDetail key",
			method:   func() string { return kb.KeyPollDetail("poll123") },
			expected: "prod:poll:poll123:detail",
		},
		{
			name:     "PollResults key",
			method:   func() string { return kb.KeyPollResults("poll123") },
			expected: "prod:poll:poll123:results",
		},
		{
			name:     "PollPattern glob",
			method:   func() string { return kb.KeyPollPattern("poll123") },
			expected: "prod:poll:poll123:*",
		},
		{
			name:     "CategoryList key",
			method:   kb.KeyCategoryList,
			expected: "prod:category:list",
		},
		{
			name:     "CampaignList key",
			method:   kb.KeyCampaignList,
			expected: "prod:campaign:list",
		},
		{
			name:     "PasswordReset key",
			method:   func() string { return kb.KeyPasswordReset("tok123") },
			expected: "prod:pwreset:tok123",
		},
		{
			name:     "Idempotency key",
			method:   func() string { return kb.KeyIdempotency("req123") },
			expected: "prod:idem:req123",
		},
		{
			name:     "Custom key",
			method:   func() string { return kb.KeyCustom("poll:%s:voters", "poll123") },
			expected: "prod:poll:poll123:voters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.method(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}
