package normalize

import "instrumatch-affiliate/config"

// Thomann serves a dozen locale mirrors (thomann.co.uk, thomann.fr,
// thomann.de/gb/...) that all resolve to the same catalog. The affiliate
// program only tracks the canonical host under the /intl/ path.
var thomannRegionalPrefixes = []string{
	"gb", "de", "fr", "it", "es", "nl", "be", "at", "ch", "us",
}

// DefaultRules builds the retailer rule table from configuration.
func DefaultRules(cfg config.ThomannConfig) []Rule {
	return []Rule{
		{
			DomainMatch:      "thomann",
			CanonicalHost:    "www.thomann.de",
			RegionalPrefixes: thomannRegionalPrefixes,
			IntlPrefix:       "intl",
			Params: map[string]string{
				"offid": cfg.OfferID,
				"affid": cfg.PartnerID,
			},
		},
	}
}
