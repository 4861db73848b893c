package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_Length(t *testing.T) {
	password, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	password, err = GeneratePassword(32)
	require.NoError(t, err)
	assert.Len(t, password, 32)
}

func TestGeneratePassword_DefaultLength(t *testing.T) {
	password, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, password, DefaultPasswordLength)

	password, err = GeneratePassword(-5)
	require.NoError(t, err)
	assert.Len(t, password, DefaultPasswordLength)
}

func TestGeneratePassword_Alphabet(t *testing.T) {
	password, err := GeneratePassword(200)
	require.NoError(t, err)

	for _, ch := range password {
		assert.True(t, strings.ContainsRune(passwordAlphabet, ch),
			"unexpected character %q in password", ch)
	}
}

func TestGeneratePassword_NotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		password, err := GeneratePassword(12)
		require.NoError(t, err)
		assert.False(t, seen[password], "duplicate password generated")
		seen[password] = true
	}
}
