package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gogithub "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "social-verifier-backend/internal/common/errors"
)

func newStubClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := gogithub.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return NewClientWithGithub(gh, "owner", "verified-list"), srv
}

func TestGist(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gists/g1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "g1",
			"owner": {"login": "octocat", "id": 583231},
			"files": {
				"z-notes.txt": {"filename": "z-notes.txt", "content": "unrelated"},
				"a-proof.txt": {"filename": "a-proof.txt", "content": "sig:0xabc"}
			}
		}`)
	})

	client, _ := newStubClient(t, mux)
	gist, err := client.Gist(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, "octocat", gist.Owner)
	assert.Equal(t, int64(583231), gist.OwnerID)
	// Files come back in name order so extraction is reproducible.
	require.Len(t, gist.Posts, 2)
	assert.Equal(t, "sig:0xabc", gist.Posts[0].Text)
	assert.Equal(t, "octocat", gist.Posts[0].AuthorHandle)
	assert.Equal(t, "g1", gist.Posts[0].ID)
}

func TestGistNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gists/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, _ := newStubClient(t, mux)
	_, err := client.Gist(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSourceNotFound, apperrors.CodeOf(err))
}

func TestReadDocument(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte(`{"0xA": {}}`))
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/verified-list/contents/verified.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"type": "file",
			"name": "verified.json",
			"path": "verified.json",
			"sha": "abc123",
			"encoding": "base64",
			"content": %q
		}`, content)
	})

	client, _ := newStubClient(t, mux)
	got, tag, err := client.Read(context.Background(), "verified.json")
	require.NoError(t, err)
	assert.Equal(t, `{"0xA": {}}`, string(got))
	assert.Equal(t, "abc123", tag)
}

func TestReadMissingDocumentIsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/verified-list/contents/verified.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, _ := newStubClient(t, mux)
	got, tag, err := client.Read(context.Background(), "verified.json")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, tag)
}

func TestWriteStaleShaIsConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/verified-list/contents/verified.json", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		http.Error(w, `{"message": "verified.json does not match"}`, http.StatusConflict)
	})

	client, _ := newStubClient(t, mux)
	err := client.Write(context.Background(), "verified.json", []byte(`{}`), "stale-sha")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.CodeOf(err))
}

func TestWriteSendsShaPrecondition(t *testing.T) {
	var sawSHA string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/verified-list/contents/verified.json", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			SHA     string `json:"sha"`
			Content string `json:"content"`
		}
		require.NoError(t, decodeJSONBody(r, &payload))
		sawSHA = payload.SHA

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content": {"sha": "def456"}}`)
	})

	client, _ := newStubClient(t, mux)
	err := client.Write(context.Background(), "verified.json", []byte(`{}`), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sawSHA)
}

func decodeJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
