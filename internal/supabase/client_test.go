package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/projects-backend/internal/supabase"
)

func newClient(t *testing.T, serverURL string) *supabase.Client {
	t.Helper()
	c, err := supabase.New(supabase.Config{URL: serverURL, APIKey: "service-key"})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := supabase.New(supabase.Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = supabase.New(supabase.Config{URL: "https://x.supabase.co"})
	assert.Error(t, err)
}

func TestSelect_SendsAuthAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/projects", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.3", r.URL.Query().Get("id"))

		w.Write([]byte(`[{"id":3,"name":"Alpha"}]`))
	}))
	defer server.Close()

	c := newClient(t, server.URL)

	params := url.Values{}
	params.Set("id", "eq.3")

	var rows []map[string]any
	require.NoError(t, c.Select(context.Background(), "projects", params, false, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0]["name"])
}

func TestSelect_SingleSetsAcceptHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		w.Write([]byte(`{"id":3,"name":"Alpha"}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL)

	var row map[string]any
	require.NoError(t, c.Select(context.Background(), "projects", nil, true, &row))
	assert.Equal(t, "Alpha", row["name"])
}

func TestInsert_RequestsRepresentation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Alpha", body["name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"name":"Alpha"}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL)

	var row map[string]any
	require.NoError(t, c.Insert(context.Background(), "projects", map[string]any{"name": "Alpha"}, &row))
	assert.Equal(t, float64(1), row["id"])
}

func TestDo_NonSuccessBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate key value"}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL)

	err := c.Select(context.Background(), "projects", nil, false, nil)
	require.Error(t, err)

	var se *supabase.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)
	assert.Equal(t, "duplicate key value", se.Message)
}
