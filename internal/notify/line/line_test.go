package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/bot/message/push", r.URL.Path)
		assert.Equal(t, "Bearer channel-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	p := New("channel-token", server.URL+"/v2/bot/message/push", server.Client())
	require.NoError(t, p.Push(context.Background(), "U4af4980629", "hello"))

	assert.Equal(t, map[string]any{
		"to": "U4af4980629",
		"messages": []any{
			map[string]any{"type": "text", "text": "hello"},
		},
	}, got)
}

func TestPushRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Authentication failed"}`)
	}))
	defer server.Close()

	err := New("bad", server.URL, server.Client()).Push(context.Background(), "U1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestPushRequiresRecipient(t *testing.T) {
	err := New("t", "http://127.0.0.1:1", nil).Push(context.Background(), " ", "hello")
	assert.Error(t, err)
}
