package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tagdraw/internal/domain"
)

// Client fetches random post pages from a live Danbooru instance.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	base       string
	userAgent  string
	login      string
	apiKey     string
	log        *zap.Logger
}

// Options configures the live client. Zero values fall back to the
// documented API etiquette: 15 s timeout, one request per second.
type Options struct {
	Base         string // instance root, e.g. https://danbooru.donmai.us
	UserAgent    string
	Login        string // optional account credentials; anonymous works
	APIKey       string // at a lower rate ceiling
	Timeout      time.Duration
	RateInterval time.Duration
	Logger       *zap.Logger
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RateInterval <= 0 {
		opts.RateInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		// Token bucket keeps sequential requests under the API ceiling
		limiter:   rate.NewLimiter(rate.Every(opts.RateInterval), 1),
		base:      opts.Base,
		userAgent: opts.UserAgent,
		login:     opts.Login,
		apiKey:    opts.APIKey,
		log:       opts.Logger,
	}
}

// RandomPosts issues one GET {base}/posts.json?limit=N&random=true and
// decodes the page. Any transport error or non-2xx status is returned as-is;
// the client never retries.
func (c *Client) RandomPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("random", "true")
	if c.login != "" && c.apiKey != "" {
		q.Set("login", c.login)
		q.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.base+"/posts.json?"+q.Encode(), nil)
	if err != nil {
		// base comes from configuration, so a broken value is reachable
		return nil, fmt.Errorf("build posts request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("danbooru status: %d", resp.StatusCode)
	}

	var posts []domain.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts page: %w", err)
	}

	c.log.Debug("fetched post page",
		zap.Int("posts", len(posts)),
		zap.Int("limit", limit))
	return posts, nil
}
