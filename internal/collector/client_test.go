package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tagdraw/internal/config"
)

func newTestClient(base string) *Client {
	return NewClient(Options{
		Base:         base,
		UserAgent:    "tagdraw-test",
		RateInterval: time.Millisecond,
	})
}

func TestClientFetchesAndDecodesPosts(t *testing.T) {
	var gotPath, gotUA string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": 123, "tag_string_general": "solo smile", "tag_string_artist": "zun"},
			{"id": 456, "tag_string_copyright": "touhou"}
		]`)
	}))
	defer srv.Close()

	posts, err := newTestClient(srv.URL).RandomPosts(context.Background(), 100)
	require.NoError(t, err)

	require.Equal(t, "/posts.json", gotPath)
	require.Equal(t, "100", gotQuery.Get("limit"))
	require.Equal(t, "true", gotQuery.Get("random"))
	require.Equal(t, "tagdraw-test", gotUA)
	require.False(t, gotQuery.Has("login"))

	require.Len(t, posts, 2)
	require.Equal(t, 123, posts[0].ID)
	require.Equal(t, "solo smile", posts[0].TagsGeneral)
	require.Equal(t, "zun", posts[0].TagsArtist)
	// Fields the API omits stay zero valued.
	require.Empty(t, posts[1].TagsGeneral)
	require.Equal(t, "touhou", posts[1].TagsCopyright)
}

func TestClientSendsCredentialsWhenConfigured(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(Options{
		Base:         srv.URL,
		Login:        "someone",
		APIKey:       "secret",
		RateInterval: time.Millisecond,
	})
	_, err := c.RandomPosts(context.Background(), 10)
	require.NoError(t, err)

	require.Equal(t, "someone", gotQuery.Get("login"))
	require.Equal(t, "secret", gotQuery.Get("api_key"))
}

func TestClientRejectsMalformedBase(t *testing.T) {
	_, err := newTestClient("http://danbooru.example/\n").RandomPosts(context.Background(), 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "build posts request")
}

func TestClientRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).RandomPosts(context.Background(), 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "danbooru status: 429")
}

func TestClientRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"this is": "not a post array"`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).RandomPosts(context.Background(), 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode posts page")
}

func TestClientPacesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(Options{Base: srv.URL, RateInterval: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.RandomPosts(context.Background(), 10)
	require.NoError(t, err)
	_, err = c.RandomPosts(context.Background(), 10)
	require.NoError(t, err)

	require.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond,
		"second request must wait for the rate limiter")
}

func TestMockClientFabricatesPosts(t *testing.T) {
	posts, err := NewMockClient().RandomPosts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	for _, p := range posts {
		require.Positive(t, p.ID)
		require.NotEmpty(t, p.TagsGeneral)
		require.NotEmpty(t, p.TagsCopyright)
		require.NotEmpty(t, p.TagsArtist)
	}
}

func TestMockClientHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockClient().RandomPosts(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFactorySelectsImplementation(t *testing.T) {
	viper.Reset()
	config.ApplyDefaults()
	t.Cleanup(viper.Reset)

	viper.Set(config.KeyCollectorMode, "mock")
	col, err := New(zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &MockClient{}, col)

	viper.Set(config.KeyCollectorMode, "danbooru")
	col, err = New(zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &Client{}, col)

	viper.Set(config.KeyCollectorMode, "carrier-pigeon")
	_, err = New(zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown collector.mode")
}
