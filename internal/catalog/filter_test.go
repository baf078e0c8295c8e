package catalog

import (
	"testing"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Title: "Lake View Villa", Description: "Spacious villa by the lake", Location: "Nkhata Bay Road", City: "Mzuzu", Kind: domain.KindForSale, Category: domain.CategoryHouse, Price: 50000, Featured: true},
		{ID: 2, Title: "City Flat", Description: "Compact apartment", Location: "Victoria Avenue", City: "Blantyre", Kind: domain.KindForRent, Category: domain.CategoryApartment, Price: 20000},
		{ID: 3, Title: "Commercial Plot", Description: "Open plot near the market", Location: "Area 47", City: "Lilongwe", Kind: domain.KindForSale, Category: domain.CategoryCommercial, Price: 35000},
		{ID: 4, Title: "Garden Cottage", Description: "Quiet cottage", Location: "Namiwawa", City: "Blantyre", Kind: domain.KindForRent, Category: domain.CategoryHouse, Price: 15000, Featured: true},
	}
}

func TestApplyStructuralFilters(t *testing.T) {
	listings := sampleListings()

	got := Apply(listings, FilterCriteria{Kind: domain.KindForSale}, "")
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	got = Apply(listings, FilterCriteria{City: "Blantyre"}, "")
	require.Len(t, got, 2)

	got = Apply(listings, FilterCriteria{Category: domain.CategoryHouse, City: "Blantyre"}, "")
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
}

func TestApplyAllWildcard(t *testing.T) {
	listings := sampleListings()
	got := Apply(listings, FilterCriteria{Kind: FilterAll, Category: FilterAll}, "")
	assert.Len(t, got, len(listings))
}

func TestApplyPriceBounds(t *testing.T) {
	listings := sampleListings()

	got := Apply(listings, FilterCriteria{MinPrice: "30000"}, "")
	require.Len(t, got, 2)
	for _, l := range got {
		assert.GreaterOrEqual(t, l.Price, 30000.0)
	}

	got = Apply(listings, FilterCriteria{MaxPrice: "20000"}, "")
	require.Len(t, got, 2)
	for _, l := range got {
		assert.LessOrEqual(t, l.Price, 20000.0)
	}

	// unparsable bounds are ignored, not errors
	got = Apply(listings, FilterCriteria{MinPrice: "not-a-number", MaxPrice: "  "}, "")
	assert.Len(t, got, len(listings))
}

func TestApplyFilterMonotonicity(t *testing.T) {
	listings := sampleListings()
	loose := Apply(listings, FilterCriteria{Kind: domain.KindForSale}, "")
	tight := Apply(listings, FilterCriteria{Kind: domain.KindForSale, MinPrice: "40000"}, "")
	assert.LessOrEqual(t, len(tight), len(loose))
	for _, l := range tight {
		assert.Contains(t, loose, l)
	}
}

func TestQueryOverridesStructuralFilters(t *testing.T) {
	listings := sampleListings()

	// an active query makes structural criteria irrelevant
	strict := FilterCriteria{Kind: domain.KindForRent, City: "Blantyre", MaxPrice: "1"}
	withQuery := Apply(listings, strict, "villa")
	noCriteria := Apply(listings, FilterCriteria{}, "villa")
	assert.Equal(t, noCriteria, withQuery)
	require.Len(t, withQuery, 1)
	assert.Equal(t, int64(1), withQuery[0].ID)
}

func TestQueryMatchesAcrossFields(t *testing.T) {
	listings := sampleListings()

	byCity := Apply(listings, FilterCriteria{}, "lilongwe")
	require.Len(t, byCity, 1)
	assert.Equal(t, int64(3), byCity[0].ID)

	byLocation := Apply(listings, FilterCriteria{}, "victoria")
	require.Len(t, byLocation, 1)
	assert.Equal(t, int64(2), byLocation[0].ID)

	byCategory := Apply(listings, FilterCriteria{}, "APARTMENT")
	require.Len(t, byCategory, 1)

	none := Apply(listings, FilterCriteria{}, "zomba")
	assert.Empty(t, none)
}

func TestApplyBlankQueryFallsBackToFilters(t *testing.T) {
	listings := sampleListings()
	got := Apply(listings, FilterCriteria{City: "Mzuzu"}, "   ")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestPartitionFeaturedCap(t *testing.T) {
	var listings []domain.Listing
	for i := int64(1); i <= 6; i++ {
		listings = append(listings, domain.Listing{ID: i, Featured: true})
	}
	listings = append(listings, domain.Listing{ID: 7}, domain.Listing{ID: 8})

	featured, regular := Partition(listings)
	require.Len(t, featured, FeaturedCap)
	assert.Equal(t, int64(1), featured[0].ID)
	assert.Equal(t, int64(3), featured[2].ID)

	// the regular group holds only unflagged listings, never overflow
	require.Len(t, regular, 2)
	for _, l := range regular {
		assert.False(t, l.Featured)
	}
}

func TestPartitionDisjoint(t *testing.T) {
	featured, regular := Partition(sampleListings())
	seen := map[int64]bool{}
	for _, l := range featured {
		seen[l.ID] = true
	}
	for _, l := range regular {
		assert.False(t, seen[l.ID])
	}
}
