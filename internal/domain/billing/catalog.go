package billing

import "fmt"

// Catalog is the immutable bidirectional mapping between payment provider
// price ids and entitlement slugs. The provider is the source of truth for
// amounts and tax; this system only translates identifiers.
type Catalog struct {
	priceBySlug map[string]string
	slugByPrice map[string]string
}

// NewCatalog builds a catalog from a slug→price map. Duplicate prices are a
// construction error since the reverse lookup would be ambiguous.
func NewCatalog(prices map[string]string) (*Catalog, error) {
	priceBySlug := make(map[string]string, len(prices))
	slugByPrice := make(map[string]string, len(prices))
	for slug, priceID := range prices {
		if slug == "" || priceID == "" {
			return nil, fmt.Errorf("catalog entries require both slug and price id")
		}
		if existing, ok := slugByPrice[priceID]; ok {
			return nil, fmt.Errorf("price %s mapped to both %s and %s", priceID, existing, slug)
		}
		priceBySlug[slug] = priceID
		slugByPrice[priceID] = slug
	}
	return &Catalog{
		priceBySlug: priceBySlug,
		slugByPrice: slugByPrice,
	}, nil
}

// PriceForSlug returns the price id selling the entitlement.
func (c *Catalog) PriceForSlug(slug string) (string, bool) {
	priceID, ok := c.priceBySlug[slug]
	return priceID, ok
}

// SlugForPrice returns the entitlement an incoming price id grants.
func (c *Catalog) SlugForPrice(priceID string) (string, bool) {
	slug, ok := c.slugByPrice[priceID]
	return slug, ok
}

// Slugs returns every slug in the catalog.
func (c *Catalog) Slugs() []string {
	slugs := make([]string, 0, len(c.priceBySlug))
	for slug := range c.priceBySlug {
		slugs = append(slugs, slug)
	}
	return slugs
}
