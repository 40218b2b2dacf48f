package storelinks

import (
	"strings"

	"instrumatch-affiliate/internal/catalog"
)

// ThomannStore is the canonical lowercase name for the dedicated retailer
// URL carried on the product record.
const ThomannStore = "thomann"

type StoreLink struct {
	RawURL string `json:"rawUrl"`
}

// Set maps lowercased store names to their raw product URLs. It is built
// fresh per resolution request and never cached across requests.
type Set map[string]StoreLink

// Collect gathers the raw store URLs for a product. Keys are always
// lowercase; empty URLs are skipped. The dedicated Thomann URL overwrites
// any "thomann" entry from the generic map.
func Collect(p catalog.Product) Set {
	set := make(Set, len(p.ContentStoreLinks)+1)

	for name, rawURL := range p.ContentStoreLinks {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || strings.TrimSpace(rawURL) == "" {
			continue
		}
		set[name] = StoreLink{RawURL: rawURL}
	}

	if strings.TrimSpace(p.ThomannURL) != "" {
		set[ThomannStore] = StoreLink{RawURL: p.ThomannURL}
	}

	return set
}
