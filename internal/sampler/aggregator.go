// Package sampler implements the fetch-aggregate-sample pipeline. It pulls
// pages of randomly selected posts until enough unique tag candidates have
// accumulated, then draws a uniform sample without replacement from the
// combined pool. Artist tags keep their own pool and join the final one
// under the "artist: " prefix.
package sampler

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tagdraw/internal/config"
	"tagdraw/internal/domain"
)

// Progress reports aggregation progress after each completed request:
// requests spent so far, the request budget, and unique candidates collected.
type Progress func(requests, maxRequests, candidates int)

// Policy bundles the tuning constants of a run. Zero fields are replaced by
// the defaults from DefaultPolicy when handed to New.
type Policy struct {
	PageLimit        int    // posts requested per page
	MaxRequests      int    // safety bound against an unbounded loop
	OversampleFactor int    // candidates needed = count*factor + base
	OversampleBase   int    // additive buffer on top of the multiplier
	PostBase         string // instance root for provenance URLs
}

// DefaultPolicy returns the empirically tuned constants the tool has always
// shipped with.
func DefaultPolicy() Policy {
	return Policy{
		PageLimit:        100,
		MaxRequests:      10,
		OversampleFactor: 3,
		OversampleBase:   20,
		PostBase:         "https://danbooru.donmai.us",
	}
}

// PolicyFromConfig builds the policy from the loaded configuration.
func PolicyFromConfig() Policy {
	return Policy{
		PageLimit:        config.PageLimit(),
		MaxRequests:      config.MaxRequests(),
		OversampleFactor: config.OversampleFactor(),
		OversampleBase:   config.OversampleBase(),
		PostBase:         config.APIBase(),
	}
}

// Aggregator runs the pipeline against a Collector. All accumulation state
// is local to a single Fetch call; an Aggregator may be reused run after run
// but is not safe for concurrent fetches (the rng is shared).
type Aggregator struct {
	collector domain.Collector
	policy    Policy
	rng       *rand.Rand
	log       *zap.Logger
	progress  Progress
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithRand injects a deterministic random source. Tests use this; the
// default is seeded from the wall clock.
func WithRand(rng *rand.Rand) Option {
	return func(a *Aggregator) { a.rng = rng }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *Aggregator) { a.log = log }
}

// WithProgress registers a callback fired after every completed request.
func WithProgress(fn Progress) Option {
	return func(a *Aggregator) { a.progress = fn }
}

func New(c domain.Collector, policy Policy, opts ...Option) *Aggregator {
	def := DefaultPolicy()
	if policy.PageLimit <= 0 {
		policy.PageLimit = def.PageLimit
	}
	if policy.MaxRequests <= 0 {
		policy.MaxRequests = def.MaxRequests
	}
	if policy.OversampleFactor <= 0 {
		policy.OversampleFactor = def.OversampleFactor
	}
	if policy.OversampleBase < 0 {
		policy.OversampleBase = def.OversampleBase
	}
	if policy.PostBase == "" {
		policy.PostBase = def.PostBase
	}

	a := &Aggregator{
		collector: c,
		policy:    policy,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch collects tag candidates until the oversampling threshold
// (targetCount*factor + base unique candidates) is met or the request budget
// runs out, then draws targetCount distinct tags uniformly from the combined
// pool. A transport or HTTP failure aborts the whole run with an error and
// no partial result; a pool smaller than targetCount is degraded success and
// returns everything collected in randomized order.
func (a *Aggregator) Fetch(ctx context.Context, targetCount int) (*domain.FetchResult, error) {
	if targetCount < 0 {
		return nil, fmt.Errorf("target count must not be negative, got %d", targetCount)
	}

	runID := uuid.NewString()[:8]
	log := a.log.With(zap.String("run", runID))

	general := make(map[string]struct{})
	artist := make(map[string]struct{})
	sourceSet := make(map[string]struct{})
	counts := make(map[string]int)
	categories := make(map[string]int)

	needed := targetCount*a.policy.OversampleFactor + a.policy.OversampleBase
	requests := 0
	postsSeen := 0

	for len(general)+len(artist) < needed && requests < a.policy.MaxRequests {
		requests++

		page, err := a.collector.RandomPosts(ctx, a.policy.PageLimit)
		if err != nil {
			// Fail fast: no partial pool survives a transport error.
			log.Error("post page fetch failed",
				zap.Int("request", requests),
				zap.Error(err))
			return nil, fmt.Errorf("fetch posts from danbooru: %w", err)
		}
		if len(page) == 0 {
			// Counts against the budget, same as the success case.
			a.report(requests, len(general)+len(artist))
			continue
		}

		for _, post := range page {
			postsSeen++
			if post.ID > 0 {
				sourceSet[domain.PostURL(a.policy.PostBase, post.ID)] = struct{}{}
			}
			absorb(general, counts, categories, domain.CategoryGeneral, "", post.TagsGeneral)
			absorb(general, counts, categories, domain.CategoryCopyright, "", post.TagsCopyright)
			absorb(general, counts, categories, domain.CategoryCharacter, "", post.TagsCharacter)
			absorb(general, counts, categories, domain.CategoryMeta, "", post.TagsMeta)
			absorb(artist, counts, categories, domain.CategoryArtist, domain.ArtistPrefix, post.TagsArtist)
		}

		a.report(requests, len(general)+len(artist))
	}

	pool := make([]string, 0, len(general)+len(artist))
	for t := range general {
		pool = append(pool, t)
	}
	for t := range artist {
		pool = append(pool, domain.ArtistPrefix+t)
	}

	urls := make([]string, 0, len(sourceSet))
	for u := range sourceSet {
		urls = append(urls, u)
	}

	res := &domain.FetchResult{
		RunID:      runID,
		SourceURLs: urls,
		Pool:       pool,
		Counts:     counts,
		Categories: categories,
		Requests:   requests,
		Posts:      postsSeen,
	}

	tags := append([]string(nil), pool...)
	a.rng.Shuffle(len(tags), func(i, j int) {
		tags[i], tags[j] = tags[j], tags[i]
	})

	if len(pool) < targetCount {
		// Not enough unique tags; hand back the whole pool shuffled.
		res.Tags = tags
		res.Status = domain.StatusShortfall
		res.Message = fmt.Sprintf("Warning: found only %d unique tags, returning all of them", len(pool))
	} else {
		// Shuffle-then-prefix is a uniform draw without replacement.
		res.Tags = tags[:targetCount]
		res.Status = domain.StatusOK
		res.Message = fmt.Sprintf("Success: generated %d tags from random posts", targetCount)
	}

	log.Info("aggregation finished",
		zap.Int("target", targetCount),
		zap.Int("needed", needed),
		zap.Int("pool", len(pool)),
		zap.Int("sample", len(res.Tags)),
		zap.Int("requests", requests),
		zap.Int("posts", postsSeen),
		zap.Bool("shortfall", res.Shortfall()))

	return res, nil
}

func (a *Aggregator) report(requests, candidates int) {
	if a.progress != nil {
		a.progress(requests, a.policy.MaxRequests, candidates)
	}
}

// absorb splits a whitespace-delimited tag field into the pool set and
// bumps the occurrence tallies. keyPrefix namespaces the count key so that
// artist counts line up with the prefixed pool entries.
func absorb(set map[string]struct{}, counts, categories map[string]int, category, keyPrefix, raw string) {
	if raw == "" {
		return
	}
	for _, t := range strings.Fields(raw) {
		set[t] = struct{}{}
		counts[keyPrefix+t]++
		categories[category]++
	}
}
