package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"https://a.example.com, https://b.example.com ,", []string{"https://a.example.com", "https://b.example.com"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{AllowedOrigins: tt.raw}.Origins(), tt.raw)
	}
}

func TestWarnings(t *testing.T) {
	assert.Len(t, Config{}.Warnings(), 3)
	assert.Empty(t, Config{
		DatabaseURL:         "postgres://localhost/catering",
		StripeKey:           "sk_test_x",
		StripeWebhookSecret: "whsec_x",
	}.Warnings())
}

func TestProxies(t *testing.T) {
	assert.Nil(t, Config{}.Proxies())
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, Config{TrustedProxies: "10.0.0.0/8, 192.0.2.1"}.Proxies())
}
