package catalog

// Product is the narrow slice of a catalog record that affiliate
// resolution needs. Callers with richer product records adapt down to it.
type Product struct {
	ID   int64
	Slug string

	// ContentStoreLinks maps store names (arbitrary casing, as entered by
	// content editors) to raw product-page URLs.
	ContentStoreLinks map[string]string

	// ThomannURL is the dedicated Thomann product URL, carried separately
	// from the generic map. It wins over any "thomann" entry in
	// ContentStoreLinks.
	ThomannURL string
}
