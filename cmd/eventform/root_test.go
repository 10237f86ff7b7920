package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanxingzhi/event-form-multi/internal/gauth"
)

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["token"])
}

func TestTokenScopeDefault(t *testing.T) {
	f := tokenCmd.Flags().Lookup("scope")
	require.NotNil(t, f)
	assert.Equal(t, gauth.ScopeSpreadsheetsReadOnly, f.DefValue)
}

func TestServeFailsWithoutCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_EMAIL", "")
	t.Setenv("GOOGLE_PRIVATE_KEY", "")
	t.Setenv("SHEET_ID", "")

	err := runServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_EMAIL")
}
