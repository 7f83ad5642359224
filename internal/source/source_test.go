package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

func TestTwitterAPISource_FetchPosts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twitter/user/last_tweets", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "trader", r.URL.Query().Get("userName"))

		if r.URL.Query().Get("cursor") == "" {
			fmt.Fprint(w, `{"data":{"tweets":[
				{"id":"2","url":"https://x.com/trader/status/2","text":"Buying $AAPL",
				 "createdAt":"Fri May 31 14:00:00 +0000 2024","author":{"userName":"trader"}},
				{"id":"1","url":"https://x.com/trader/status/1","text":"Sold $TSLA",
				 "createdAt":"Thu May 30 09:30:00 +0000 2024","author":{"userName":"trader"}}
			],"has_next_page":true,"next_cursor":"c2"}}`)
			return
		}

		assert.Equal(t, "c2", r.URL.Query().Get("cursor"))
		fmt.Fprint(w, `{"data":{"tweets":[
			{"id":"0","url":"https://x.com/trader/status/0","text":"Watching $NVDA",
			 "createdAt":"2024-05-29T08:00:00Z","author":{"userName":"trader"}}
		],"has_next_page":false,"next_cursor":""}}`)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	s := NewTwitterAPISource(config.SocialConfig{APIKey: "secret", BaseURL: server.URL}, logger.NewNop())
	s.http.DisableRetry()

	posts, err := s.FetchPosts(context.Background(), "trader", 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "2", posts[0].ID)
	assert.Equal(t, "Buying $AAPL", posts[0].Text)
	assert.Equal(t, "trader", posts[0].AuthorHandle)
	assert.Equal(t, time.Date(2024, 5, 31, 14, 0, 0, 0, time.UTC), posts[0].CreatedAt.UTC())

	// RFC3339 timestamps on the second page parse too.
	assert.Equal(t, time.Date(2024, 5, 29, 8, 0, 0, 0, time.UTC), posts[2].CreatedAt.UTC())
}

func TestTwitterAPISource_LimitStopsPagination(t *testing.T) {
	var requests atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"data":{"tweets":[
			{"id":"1","url":"u","text":"t","createdAt":"2024-05-29T08:00:00Z"},
			{"id":"2","url":"u","text":"t","createdAt":"2024-05-29T09:00:00Z"}
		],"has_next_page":true,"next_cursor":"more"}}`)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	s := NewTwitterAPISource(config.SocialConfig{APIKey: "k", BaseURL: server.URL}, logger.NewNop())
	s.http.DisableRetry()

	posts, err := s.FetchPosts(context.Background(), "trader", 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int64(1), requests.Load())

	// Author falls back to the requested handle when absent.
	assert.Equal(t, "trader", posts[0].AuthorHandle)
}

func TestTwitterAPISource_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := NewTwitterAPISource(config.SocialConfig{APIKey: "bad", BaseURL: server.URL}, logger.NewNop())
	s.http.DisableRetry()

	_, err := s.FetchPosts(context.Background(), "trader", 5)
	assert.ErrorContains(t, err, "status 403")
}

func TestJSONLSource_FetchPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.jsonl")
	content := `{"id":"1","author_handle":"Trader","text":"Buying $AAPL","created_at":"2024-05-30T09:15:00Z","url":"https://x.com/trader/status/1"}

{"id":"2","author_handle":"someoneelse","text":"Sold $TSLA","created_at":"2024-05-30T10:00:00Z","url":"https://x.com/someoneelse/status/2"}
{"id":"3","author_handle":"trader","text":"Shorting $GME","created_at":"2024-05-31T11:00:00Z","url":"https://x.com/trader/status/3"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewJSONLSource(path)
	posts, err := s.FetchPosts(context.Background(), "trader", 10)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "3", posts[1].ID)

	limited, err := s.FetchPosts(context.Background(), "trader", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJSONLSource_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0o644))

	_, err := NewJSONLSource(path).FetchPosts(context.Background(), "trader", 10)
	assert.ErrorContains(t, err, "line 1")
}
