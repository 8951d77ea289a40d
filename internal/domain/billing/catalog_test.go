package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_BidirectionalLookup(t *testing.T) {
	catalog, err := NewCatalog(map[string]string{
		"course:go-basics":   "price_1",
		"membership:monthly": "price_2",
	})
	require.NoError(t, err)

	priceID, ok := catalog.PriceForSlug("course:go-basics")
	assert.True(t, ok)
	assert.Equal(t, "price_1", priceID)

	slug, ok := catalog.SlugForPrice("price_2")
	assert.True(t, ok)
	assert.Equal(t, "membership:monthly", slug)

	_, ok = catalog.PriceForSlug("course:unknown")
	assert.False(t, ok)
	_, ok = catalog.SlugForPrice("price_unknown")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"course:go-basics", "membership:monthly"}, catalog.Slugs())
}

func TestNewCatalog_RejectsDuplicatePrice(t *testing.T) {
	_, err := NewCatalog(map[string]string{
		"course:a": "price_1",
		"course:b": "price_1",
	})
	assert.Error(t, err, "a price selling two entitlements makes the reverse lookup ambiguous")
}

func TestNewCatalog_RejectsEmptyEntries(t *testing.T) {
	_, err := NewCatalog(map[string]string{"": "price_1"})
	assert.Error(t, err)

	_, err = NewCatalog(map[string]string{"course:a": ""})
	assert.Error(t, err)
}

func TestNewCatalog_EmptyCatalogIsValid(t *testing.T) {
	catalog, err := NewCatalog(nil)
	require.NoError(t, err)
	assert.Empty(t, catalog.Slugs())
}
