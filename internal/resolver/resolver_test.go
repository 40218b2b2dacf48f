package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/normalize"
	"instrumatch-affiliate/internal/pricing"
	"instrumatch-affiliate/internal/storelinks"
)

type fakeStores struct {
	candidates []pricing.Candidate
	err        error

	gotProductID int64
	gotLinks     storelinks.Set
}

func (f *fakeStores) FetchProductAffiliateStores(_ context.Context, productID int64, links storelinks.Set) ([]pricing.Candidate, error) {
	f.gotProductID = productID
	f.gotLinks = links
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func newTestResolver(t *testing.T, stores StoresClient) *Resolver {
	t.Helper()

	norm := normalize.New([]normalize.Rule{
		{
			DomainMatch:      "thomann",
			CanonicalHost:    "www.thomann.de",
			RegionalPrefixes: []string{"gb", "de", "fr"},
			IntlPrefix:       "intl",
			Params:           map[string]string{"offid": "3", "affid": "4419"},
		},
	}, zap.NewNop().Sugar())

	return New(stores, norm, nil, 0, zap.NewNop().Sugar())
}

func testProduct() catalog.Product {
	return catalog.Product{
		ID:   42,
		Slug: "fender-stratocaster",
		ContentStoreLinks: map[string]string{
			"Gear4Music": "https://www.gear4music.com/p/1",
		},
		ThomannURL: "https://www.thomann.co.uk/gb/stratocaster.htm",
	}
}

func TestResolveTopURL_FirstCandidateWins(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{
		{StoreSlug: "acme", AffiliateURL: "tracked1"},
		{StoreSlug: "other", AffiliateURL: "tracked2"},
	}}
	r := newTestResolver(t, stores)

	got := r.ResolveTopURL(context.Background(), testProduct())
	require.Equal(t, "tracked1", got)
	require.Equal(t, int64(42), stores.gotProductID)
}

func TestResolveTopURL_CandidateFieldPrecedence(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{
		{StoreSlug: "acme", WebsiteURL: "website", OriginalURL: "original"},
	}}
	r := newTestResolver(t, stores)

	require.Equal(t, "website", r.ResolveTopURL(context.Background(), testProduct()))

	stores.candidates = []pricing.Candidate{{StoreSlug: "acme", OriginalURL: "original"}}
	require.Equal(t, "original", r.ResolveTopURL(context.Background(), testProduct()))
}

func TestResolveTopURL_RemoteFailureFallsBackToNormalizedThomannURL(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{err: errors.New("pricing service down")}
	r := newTestResolver(t, stores)

	got := r.ResolveTopURL(context.Background(), testProduct())
	require.Equal(t, "https://www.thomann.de/intl/stratocaster.htm?affid=4419&offid=3", got)
}

func TestResolveTopURL_EmptyCandidateListFallsBack(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, &fakeStores{})

	got := r.ResolveTopURL(context.Background(), testProduct())
	require.Equal(t, "https://www.thomann.de/intl/stratocaster.htm?affid=4419&offid=3", got)
}

func TestResolveTopURL_NullTerminalState(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{err: errors.New("down")}
	r := newTestResolver(t, stores)

	p := testProduct()
	p.ThomannURL = ""
	require.Equal(t, "", r.ResolveTopURL(context.Background(), p))
}

func TestResolveTop_ReportsStoreSlug(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{
		{StoreSlug: "Acme", AffiliateURL: "tracked"},
	}}
	r := newTestResolver(t, stores)

	url, slug := r.ResolveTop(context.Background(), testProduct())
	require.Equal(t, "tracked", url)
	require.Equal(t, "acme", slug)
}

func TestResolveTop_SendsCollectedLinks(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{{StoreSlug: "acme", AffiliateURL: "x"}}}
	r := newTestResolver(t, stores)

	r.ResolveTopURL(context.Background(), testProduct())

	require.Equal(t, storelinks.Set{
		"gear4music": {RawURL: "https://www.gear4music.com/p/1"},
		"thomann":    {RawURL: "https://www.thomann.co.uk/gb/stratocaster.htm"},
	}, stores.gotLinks)
}

func TestResolveForStore_ExactMatchSelection(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{
		{StoreSlug: "other", AffiliateURL: "wrong"},
		{StoreSlug: "acme", WebsiteURL: "w"},
	}}
	r := newTestResolver(t, stores)

	got := r.ResolveForStore(context.Background(), testProduct(), "Acme", "")
	require.Equal(t, "w", got)
}

func TestResolveForStore_NoExactMatchUsesCallerFallback(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{
		{StoreSlug: "other", AffiliateURL: "wrong-store-url"},
	}}
	r := newTestResolver(t, stores)

	// The first candidate belongs to a different store and must never be
	// returned; the caller-supplied URL takes over, normalized.
	got := r.ResolveForStore(context.Background(), testProduct(), "acme",
		"https://www.thomann.co.uk/gb/pedal.htm")
	require.Equal(t, "https://www.thomann.de/intl/pedal.htm?affid=4419&offid=3", got)

	got = r.ResolveForStore(context.Background(), testProduct(), "acme", "")
	require.Equal(t, "", got)
}

func TestResolveForStore_CallerURLOverridesCollectedLink(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{{StoreSlug: "gear4music", AffiliateURL: "x"}}}
	r := newTestResolver(t, stores)

	r.ResolveForStore(context.Background(), testProduct(), "gear4music", "https://override.example/p")

	require.Equal(t, storelinks.StoreLink{RawURL: "https://override.example/p"}, stores.gotLinks["gear4music"])
}

func TestResolveForStore_RemoteFailureReturnsNormalizedCallerURL(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{err: errors.New("down")}
	r := newTestResolver(t, stores)

	got := r.ResolveForStore(context.Background(), testProduct(), "acme",
		"https://www.thomann.fr/fr/amp.htm")
	require.Equal(t, "https://www.thomann.de/intl/amp.htm?affid=4419&offid=3", got)
}

func TestResolveForStore_NonRetailerCallerURLPassesThrough(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{err: errors.New("down")}
	r := newTestResolver(t, stores)

	got := r.ResolveForStore(context.Background(), testProduct(), "acme", "https://acme.example/p")
	require.Equal(t, "https://acme.example/p", got)
}

func TestResolveForStore_MatchedCandidateWithoutURLsFallsBack(t *testing.T) {
	t.Parallel()

	stores := &fakeStores{candidates: []pricing.Candidate{{StoreSlug: "acme"}}}
	r := newTestResolver(t, stores)

	got := r.ResolveForStore(context.Background(), testProduct(), "acme", "https://acme.example/p")
	require.Equal(t, "https://acme.example/p", got)
}
