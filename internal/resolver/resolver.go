package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/normalize"
	"instrumatch-affiliate/internal/pricing"
	"instrumatch-affiliate/internal/storelinks"
)

// StoresClient is the remote pricing/affiliate service contract. It must
// be read-only; failures are converted into fallback behavior here and
// never propagate past the resolver.
type StoresClient interface {
	FetchProductAffiliateStores(ctx context.Context, productID int64, links storelinks.Set) ([]pricing.Candidate, error)
}

// Resolver produces the single best actionable URL for a product, either
// overall or for one named store. Its methods never fail: every error path
// degrades to a best-effort URL or to "".
type Resolver struct {
	stores StoresClient
	norm   *normalize.Normalizer
	cache  *redis.Client // nil when redis is disabled
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func New(stores StoresClient, norm *normalize.Normalizer, cache *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		stores: stores,
		norm:   norm,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ResolveTopURL returns the tracked URL for the product's top-ranked store,
// or "" when nothing is resolvable.
func (r *Resolver) ResolveTopURL(ctx context.Context, p catalog.Product) string {
	url, _ := r.ResolveTop(ctx, p)
	return url
}

// ResolveTop additionally reports which store the URL belongs to, when
// known. The remote service owns ranking; the first candidate wins. On
// remote failure the dedicated Thomann URL, normalized, is the fallback.
// Cache hits and Thomann fallbacks report their store as best known.
func (r *Resolver) ResolveTop(ctx context.Context, p catalog.Product) (url, storeSlug string) {
	if cached, ok := r.cacheGet(ctx, p.ID); ok {
		return cached, ""
	}

	links := storelinks.Collect(p)

	candidates, err := r.stores.FetchProductAffiliateStores(ctx, p.ID, links)
	if err != nil {
		r.logger.Warnw("affiliate_stores_fetch_failed", "product_id", p.ID, "err", err)
		return r.thomannFallback(p)
	}

	resolved, slug := "", ""
	if len(candidates) > 0 {
		slug = strings.ToLower(candidates[0].StoreSlug)
		resolved = firstNonEmpty(
			candidates[0].AffiliateURL,
			candidates[0].WebsiteURL,
			candidates[0].OriginalURL,
		)
	}
	if resolved == "" {
		resolved, slug = r.thomannFallback(p)
	}

	if resolved != "" {
		r.cacheSet(ctx, p.ID, resolved)
	}
	return resolved, slug
}

func (r *Resolver) thomannFallback(p catalog.Product) (url, storeSlug string) {
	url = r.fallbackURL(p.ThomannURL)
	if url == "" {
		return "", ""
	}
	return url, storelinks.ThomannStore
}

// ResolveForStore returns the tracked URL for one named store. A
// caller-supplied originalURL overrides the collected link for that store
// and serves as the fallback of last resort. Candidates that do not match
// the requested slug exactly are never returned.
func (r *Resolver) ResolveForStore(ctx context.Context, p catalog.Product, store, originalURL string) string {
	store = strings.ToLower(strings.TrimSpace(store))
	if store == "" {
		return r.fallbackURL(originalURL)
	}

	links := storelinks.Collect(p)
	if strings.TrimSpace(originalURL) != "" {
		links[store] = storelinks.StoreLink{RawURL: originalURL}
	}

	candidates, err := r.stores.FetchProductAffiliateStores(ctx, p.ID, links)
	if err != nil {
		r.logger.Warnw("affiliate_stores_fetch_failed",
			"product_id", p.ID,
			"store", store,
			"err", err,
		)
		return r.fallbackURL(originalURL)
	}

	for _, c := range candidates {
		if strings.ToLower(c.StoreSlug) != store {
			continue
		}
		if u := firstNonEmpty(c.AffiliateURL, c.WebsiteURL); u != "" {
			return u
		}
		break
	}

	return r.fallbackURL(originalURL)
}

// fallbackURL normalizes a raw fallback URL. Every fallback path
// normalizes, the caller-supplied one included.
func (r *Resolver) fallbackURL(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}
	return r.norm.Normalize(rawURL)
}

func firstNonEmpty(urls ...string) string {
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			return u
		}
	}
	return ""
}

func topURLCacheKey(productID int64) string {
	return fmt.Sprintf("affiliate:top:%d", productID)
}

func (r *Resolver) cacheGet(ctx context.Context, productID int64) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	val, err := r.cache.Get(ctx, topURLCacheKey(productID)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warnw("affiliate_cache_get_failed", "product_id", productID, "err", err)
		}
		return "", false
	}
	return val, val != ""
}

func (r *Resolver) cacheSet(ctx context.Context, productID int64, url string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, topURLCacheKey(productID), url, r.ttl).Err(); err != nil {
		r.logger.Warnw("affiliate_cache_set_failed", "product_id", productID, "err", err)
	}
}
