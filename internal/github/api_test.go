package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deverrors "github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/token"
)

const threeRepos = `{
  "total_count": 3,
  "incomplete_results": false,
  "items": [
    {"id": 1, "name": "a", "private": false, "html_url": "https://github.com/alice/a", "description": "first",
     "fork": false, "created_at": "2020-01-01T00:00:00Z", "updated_at": "2021-01-01T00:00:00Z",
     "pushed_at": "2022-01-01T00:00:00Z", "size": 10, "language": "Go", "default_branch": "main"},
    {"id": 2, "name": "b", "private": true, "html_url": "https://github.com/alice/b", "description": null,
     "fork": true, "created_at": "2020-01-01T00:00:00Z", "updated_at": "2021-01-01T00:00:00Z",
     "pushed_at": "2022-01-01T00:00:00Z", "size": 0, "language": null, "default_branch": "master"},
    {"id": 3, "name": "c", "private": false, "html_url": "https://github.com/alice/c", "description": "third",
     "fork": false, "created_at": "2020-01-01T00:00:00Z", "updated_at": "2021-01-01T00:00:00Z",
     "pushed_at": "2022-01-01T00:00:00Z", "size": 2048, "language": "Python", "default_branch": "trunk"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), token.Token{Value: "ghp_test"}, Options{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestListRepositories(t *testing.T) {
	var gotPath, gotQuery, gotPerPage, gotAuth, gotUA string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotPerPage = r.URL.Query().Get("per_page")
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(threeRepos))
	})

	result, err := client.ListRepositories(context.Background(), "alice", 50)
	require.NoError(t, err)

	assert.Equal(t, "/search/repositories", gotPath)
	assert.Equal(t, "user:alice", gotQuery)
	assert.Equal(t, "50", gotPerPage)
	assert.Equal(t, "Bearer ghp_test", gotAuth)
	assert.Equal(t, userAgent, gotUA)

	assert.Equal(t, 3, result.TotalCount)
	assert.False(t, result.IncompleteResults)
	assert.False(t, result.Truncated())
	require.Len(t, result.Items, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{result.Items[0].Name, result.Items[1].Name, result.Items[2].Name})
	assert.Equal(t, "https://github.com/alice/b", result.Items[1].CloneURL)
	assert.Nil(t, result.Items[1].Description)
	assert.Nil(t, result.Items[1].Language)
	assert.True(t, result.Items[1].Private)
	assert.True(t, result.Items[1].Fork)
}

func TestListRepositoriesClampsPageSize(t *testing.T) {
	var perPage string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":[]}`))
	})

	result, err := client.ListRepositories(context.Background(), "alice", 1000)
	require.NoError(t, err)
	assert.Equal(t, "100", perPage)
	assert.Empty(t, result.Items)
}

func TestListRepositoriesQueryFailed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`},
		{name: "validation failed", status: http.StatusUnprocessableEntity, body: `{"message":"Validation Failed"}`},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			result, err := client.ListRepositories(context.Background(), "alice", 100)
			assert.Nil(t, result)

			var queryErr *deverrors.CatalogQueryError
			require.ErrorAs(t, err, &queryErr)
			assert.Equal(t, tt.status, queryErr.Status)
			assert.Contains(t, queryErr.Body, tt.body)
			assert.Equal(t, 1, calls, "catalog queries are never retried")
		})
	}
}

func TestListRepositoriesParseFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_count":1,"incomplete_results":false,"items":[{"id":1}]}`))
	})

	_, err := client.ListRepositories(context.Background(), "alice", 100)

	var parseErr *deverrors.CatalogParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 0, parseErr.Index)
	assert.Equal(t, "name", parseErr.Field)
}

func TestListRepositoriesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(context.Background(), token.Token{Value: "ghp_test"}, Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ListRepositories(context.Background(), "alice", 100)
	require.Error(t, err)

	var queryErr *deverrors.CatalogQueryError
	assert.NotErrorAs(t, err, &queryErr)
	assert.Contains(t, err.Error(), "catalog request failed")
}

func TestListRepositoriesRequiresAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.ListRepositories(context.Background(), "  ", 100)
	assert.ErrorContains(t, err, "account must be specified")
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), token.Token{}, Options{})
	assert.ErrorIs(t, err, token.ErrTokenInvalid)

	client, err := NewClient(context.Background(), token.Token{Value: "x"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", client.gh.BaseURL.String())

	client, err = NewClient(context.Background(), token.Token{Value: "x"}, Options{BaseURL: "https://ghe.example.com/api/v3"})
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", client.gh.BaseURL.String())
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 100, ClampPageSize(0))
	assert.Equal(t, 100, ClampPageSize(-5))
	assert.Equal(t, 1, ClampPageSize(1))
	assert.Equal(t, 42, ClampPageSize(42))
	assert.Equal(t, 100, ClampPageSize(1000))
}
