package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanxingzhi/event-form-multi/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(context.Background(), "access-token", "sheet-1", Options{
		HTTPClient: server.Client(),
		Endpoint:   server.URL,
	})
	require.NoError(t, err)
	return c
}

func TestReadRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/A:E", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"range":"Sheet1!A1:E2","majorDimension":"ROWS","values":[["X1","Bob","555","user@example.com","hi"],["X2","Amy"]]}`)
	})

	rows, err := c.ReadRange(context.Background(), "A:E")
	require.NoError(t, err)
	assert.Equal(t, []models.Row{
		{"X1", "Bob", "555", "user@example.com", "hi"},
		{"X2", "Amy"},
	}, rows)
}

func TestReadRangeWithoutValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"range":"Sheet1!A1:E1000","majorDimension":"ROWS"}`)
	})

	rows, err := c.ReadRange(context.Background(), "A:E")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestReadRangeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`)
	})

	_, err := c.ReadRange(context.Background(), "A:E")
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "read", opErr.Op)
	assert.Equal(t, http.StatusForbidden, opErr.StatusCode)
}

func TestAppendRow(t *testing.T) {
	var got struct {
		Values [][]string `json:"values"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-1/values/A:E:append", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1","updates":{"updatedRows":1}}`)
	})

	s := models.Submission{ActivityID: "X1", Name: "Bob", Phone: "555", Email: "user@example.com", Message: "hi"}
	require.NoError(t, c.AppendSubmission(context.Background(), "A:E", s))
	assert.Equal(t, [][]string{{"X1", "Bob", "555", "user@example.com", "hi"}}, got.Values)
}

func TestAppendRowFailureKeepsRawBody(t *testing.T) {
	const body = `{"error":{"code":400,"message":"Unable to parse range: Nope!A:E","status":"INVALID_ARGUMENT"}}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, body)
	})

	err := c.AppendRow(context.Background(), "A:E", models.Row{"a"})
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "append", opErr.Op)
	assert.Equal(t, http.StatusBadRequest, opErr.StatusCode)
	assert.Equal(t, body, opErr.Detail())
}

func TestNewRequiresTokenAndSheet(t *testing.T) {
	_, err := New(context.Background(), "", "sheet-1", Options{})
	assert.Error(t, err)

	_, err = New(context.Background(), "token", " ", Options{})
	assert.Error(t, err)
}
