package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
)

func testRules() []Rule {
	return []Rule{
		{
			DomainMatch:      "thomann",
			CanonicalHost:    "www.thomann.de",
			RegionalPrefixes: []string{"gb", "de", "fr", "it", "es", "nl", "be", "at", "ch", "us"},
			IntlPrefix:       "intl",
			Params: map[string]string{
				"offid": "3",
				"affid": "4419",
			},
		},
	}
}

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return New(testRules(), zap.NewNop().Sugar())
}

func TestNormalize_RegionalFolding(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	for _, cc := range []string{"gb", "de", "fr", "it", "es", "nl", "be", "at", "ch", "us"} {
		in := fmt.Sprintf("https://www.thomann.co.uk/%s/stratocaster.htm?x=1", cc)
		got := n.Normalize(in)
		want := "https://www.thomann.de/intl/stratocaster.htm?affid=4419&offid=3&x=1"
		require.Equal(t, want, got, "prefix %q", cc)
	}
}

func TestNormalize_HostCanonicalized(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	cases := []string{
		"https://thomann.de/intl/les_paul.htm",
		"https://www.thomann.fr/intl/les_paul.htm",
		"https://www.thomannmusic.com/intl/les_paul.htm",
	}
	for _, in := range cases {
		got := n.Normalize(in)
		require.Equal(t, "https://www.thomann.de/intl/les_paul.htm?affid=4419&offid=3", got, "input %q", in)
	}
}

func TestNormalize_PrependsIntlPrefix(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	require.Equal(t,
		"https://www.thomann.de/intl/?affid=4419&offid=3",
		n.Normalize("https://www.thomann.de/"))
	require.Equal(t,
		"https://www.thomann.de/intl/?affid=4419&offid=3",
		n.Normalize("https://www.thomann.de"))
	require.Equal(t,
		"https://www.thomann.de/intl/telecaster.htm?affid=4419&offid=3",
		n.Normalize("https://www.thomann.de/telecaster.htm"))
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	once := n.Normalize("https://www.thomann.co.uk/gb/jazz_bass.htm?colour=sunburst")
	twice := n.Normalize(once)
	require.Equal(t, once, twice)
}

func TestNormalize_AffiliateParamsOverwrite(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	got := n.Normalize("https://www.thomann.de/intl/drumkit.htm?offid=99&affid=other&ref=x")
	require.Equal(t, "https://www.thomann.de/intl/drumkit.htm?affid=4419&offid=3&ref=x", got)
}

func TestNormalize_NonMemberPassthrough(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	for _, in := range []string{
		"https://www.gear4music.com/guitars/123",
		"https://www.sweetwater.com/store/detail/Strat",
		"https://example.com/gb/foo",
	} {
		require.Equal(t, in, n.Normalize(in))
	}
}

func TestNormalize_MalformedInputSafety(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	require.Equal(t, "not a url", n.Normalize("not a url"))
	require.Equal(t, "://missing-scheme", n.Normalize("://missing-scheme"))
	require.Equal(t, "http://bad host/thomann", n.Normalize("http://bad host/thomann"))
	require.Equal(t, "", n.Normalize(""))
}

func TestNormalize_RegionalPrefixOnlyAtPathStart(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	// "gbson" is not the "gb" prefix; the path gets the intl prefix
	// prepended instead of folded.
	got := n.Normalize("https://www.thomann.de/gbson_guitar.htm")
	require.Equal(t, "https://www.thomann.de/intl/gbson_guitar.htm?affid=4419&offid=3", got)
}

func TestNormalize_BareRegionalSegment(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	require.Equal(t,
		"https://www.thomann.de/intl/?affid=4419&offid=3",
		n.Normalize("https://www.thomann.co.uk/gb"))
	require.Equal(t,
		"https://www.thomann.de/intl/?affid=4419&offid=3",
		n.Normalize("https://www.thomann.co.uk/gb/"))
}

func TestDefaultRules_UsesConfiguredIdentifiers(t *testing.T) {
	t.Parallel()

	rules := DefaultRules(config.ThomannConfig{OfferID: "7", PartnerID: "1234"})
	require.Len(t, rules, 1)
	require.Equal(t, "7", rules[0].Params["offid"])
	require.Equal(t, "1234", rules[0].Params["affid"])
}
