package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name         string
		providerName string
		storedName   string
		email        string
		expected     string
	}{
		{"provider name wins", "Provider Ann", "Stored Ann", "ann@x.com", "Provider Ann"},
		{"stored name second", "", "Stored Ann", "ann@x.com", "Stored Ann"},
		{"email local part last", "", "", "ann@x.com", "ann"},
		{"email without at sign", "", "", "ann", "ann"},
		{"email with leading at sign", "", "", "@x.com", "@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveName(tt.providerName, tt.storedName, tt.email))
		})
	}
}

func TestResolveImage(t *testing.T) {
	assert.Equal(t, "stored.png", ResolveImage("stored.png", "avatar.png"))
	assert.Equal(t, "avatar.png", ResolveImage("", "avatar.png"))
	assert.Equal(t, "", ResolveImage("", ""))
}
