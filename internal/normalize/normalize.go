package normalize

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Rule describes how to fold one retailer's regional URL mirrors into its
// canonical trackable form. Adding a retailer is a data change, not a code
// change.
type Rule struct {
	// DomainMatch is matched as a substring against the lowercased
	// hostname. URLs whose host does not match any rule pass through
	// unchanged.
	DomainMatch string

	// CanonicalHost replaces whatever locale host the URL carried.
	CanonicalHost string

	// RegionalPrefixes are leading path segments (two-letter country
	// codes) that get folded into IntlPrefix.
	RegionalPrefixes []string

	// IntlPrefix is the canonical leading path segment, without slashes
	// (e.g. "intl").
	IntlPrefix string

	// Params are query parameters set on every normalized URL. They
	// overwrite existing values for the same keys; all other query
	// parameters are preserved.
	Params map[string]string
}

type Normalizer struct {
	rules  []Rule
	logger *zap.SugaredLogger
}

func New(rules []Rule, logger *zap.SugaredLogger) *Normalizer {
	return &Normalizer{rules: rules, logger: logger}
}

// Normalize rewrites rawURL into the canonical trackable form for its
// retailer. URLs outside every rule's domain family, and strings that do
// not parse, are returned unchanged. Never fails.
func (n *Normalizer) Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if n.logger != nil {
			n.logger.Warnw("url_normalize_parse_failed", "url", rawURL, "err", err)
		}
		return rawURL
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return rawURL
	}

	rule, ok := n.matchRule(host)
	if !ok {
		return rawURL
	}

	u.Host = rule.CanonicalHost
	u.Path = foldRegionalPath(u.Path, rule)

	q := u.Query()
	for k, v := range rule.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func (n *Normalizer) matchRule(host string) (Rule, bool) {
	for _, r := range n.rules {
		if strings.Contains(host, r.DomainMatch) {
			return r, true
		}
	}
	return Rule{}, false
}

// foldRegionalPath maps "/gb/foo" to "/intl/foo", "/" to "/intl/", and
// "/foo" to "/intl/foo". Paths already under the international prefix are
// left alone.
func foldRegionalPath(path string, rule Rule) string {
	intl := "/" + rule.IntlPrefix

	for _, cc := range rule.RegionalPrefixes {
		prefix := "/" + cc
		if path == prefix || path == prefix+"/" {
			return intl + "/"
		}
		if strings.HasPrefix(path, prefix+"/") {
			return intl + strings.TrimPrefix(path, prefix)
		}
	}

	if path == intl || strings.HasPrefix(path, intl+"/") {
		return path
	}

	switch path {
	case "", "/":
		return intl + "/"
	default:
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return intl + path
	}
}
