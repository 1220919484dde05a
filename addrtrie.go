package addrtrie

import (
	"context"
	"time"

	"github.com/hupe1980/addrtrie/cache"
	"github.com/hupe1980/addrtrie/match"
	"github.com/hupe1980/addrtrie/trie"
)

// Resolver resolves token sequences against serialized trie blobs.
//
// It owns an LRU cache of decoded tries keyed by blob content hash, so
// repeated lookups against the same blob pay the decode cost once. The
// cache is not synchronized: a Resolver belongs to exactly one worker
// goroutine. Decoded tries are immutable and may outlive the Resolver.
type Resolver struct {
	cache   *cache.TrieCache
	params  match.Params
	logger  *Logger
	metrics MetricsCollector
}

// NewResolver creates a Resolver with the given options.
func NewResolver(optFns ...Option) *Resolver {
	o := applyOptions(optFns)

	return &Resolver{
		cache:   cache.New(o.cacheCapacity),
		params:  o.params,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// Params returns the matching parameters used by this Resolver.
func (r *Resolver) Params() match.Params {
	return r.params
}

// CacheStats returns the decode cache hit/miss counters.
func (r *Resolver) CacheStats() (hits, misses uint64) {
	return r.cache.Stats()
}

// Find resolves tokens against blob and returns the unique UPRN.
// ok is false when the tokens do not resolve to exactly one property,
// when tokens is empty, or when blob is not a valid serialized trie.
func (r *Resolver) Find(blob []byte, tokens []string) (uprn uint64, ok bool) {
	ctx := context.Background()

	if len(tokens) == 0 {
		return 0, false
	}
	t := r.decode(ctx, blob)
	if t == nil {
		return 0, false
	}

	start := time.Now()
	out := match.Classify(t, tokens, r.params)

	r.metrics.RecordResolve(out.Status.String(), time.Since(start))
	r.logger.LogResolve(ctx, len(tokens), out.Status.String(), out.UPRN)

	return out.UPRN, out.Status == match.StatusExact
}

// Classify resolves tokens against blob and explains the outcome.
// Empty tokens or an invalid blob yield a NO_PATH outcome.
func (r *Resolver) Classify(blob []byte, tokens []string) match.Outcome {
	ctx := context.Background()

	if len(tokens) == 0 {
		return match.Outcome{Status: match.StatusNoPath}
	}
	t := r.decode(ctx, blob)
	if t == nil {
		return match.Outcome{Status: match.StatusNoPath}
	}

	start := time.Now()
	out := match.Classify(t, tokens, r.params)

	r.metrics.RecordResolve(out.Status.String(), time.Since(start))
	r.logger.LogResolve(ctx, len(tokens), out.Status.String(), out.UPRN)

	return out
}

// Candidates enumerates the UPRNs reachable from the best partial walk.
// Empty tokens or an invalid blob yield an empty result.
func (r *Resolver) Candidates(blob []byte, tokens []string) match.CandidateResult {
	ctx := context.Background()

	if len(tokens) == 0 {
		return match.CandidateResult{Status: match.StatusNoPath}
	}
	t := r.decode(ctx, blob)
	if t == nil {
		return match.CandidateResult{Status: match.StatusNoPath}
	}

	start := time.Now()
	res := match.Candidates(t, tokens, r.params)

	r.metrics.RecordResolve(res.Status.String(), time.Since(start))
	r.logger.LogCandidates(ctx, len(tokens), len(res.UPRNs), res.Status.String())

	return res
}

// Peel strips statistically implausible trailing tokens from tokens.
// An invalid blob or empty input returns tokens unchanged.
func (r *Resolver) Peel(blob []byte, tokens []string, steps, maxK int) []string {
	ctx := context.Background()

	if len(tokens) == 0 {
		return tokens
	}
	t := r.decode(ctx, blob)
	if t == nil {
		return tokens
	}

	start := time.Now()
	out := trie.PeelEndTokens(tokens, t, steps, maxK)

	r.metrics.RecordPeel(len(tokens)-len(out), time.Since(start))
	r.logger.LogPeel(ctx, len(tokens), len(out))

	return out
}

// SuffixCounts returns the occurrence count of every reversed suffix of
// tokens, outermost first. Returns nil for empty tokens or an invalid
// blob.
func (r *Resolver) SuffixCounts(blob []byte, tokens []string) []uint32 {
	ctx := context.Background()

	if len(tokens) == 0 {
		return nil
	}
	t := r.decode(ctx, blob)
	if t == nil {
		return nil
	}

	return t.SuffixCounts(tokens)
}

// decode fetches the decoded trie for blob, via the cache. A malformed
// blob is logged and counted, never surfaced: lookups on it just fail.
func (r *Resolver) decode(ctx context.Context, blob []byte) *trie.Trie {
	start := time.Now()

	before, _ := r.cache.Stats()
	t, err := r.cache.GetOrParse(blob)
	after, _ := r.cache.Stats()
	cached := after > before

	r.metrics.RecordDecode(cached, time.Since(start), err)
	r.logger.LogDecode(ctx, len(blob), cached, err)

	if err != nil {
		return nil
	}
	return t
}
