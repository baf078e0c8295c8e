package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListingRepo struct {
	rows []domain.Listing
	err  error
}

func (f *fakeListingRepo) ListAvailable(ctx context.Context) ([]domain.Listing, error) {
	return f.rows, f.err
}
func (f *fakeListingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	return f.rows, f.err
}
func (f *fakeListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) Create(ctx context.Context, l *domain.Listing) error { return nil }
func (f *fakeListingRepo) Update(ctx context.Context, l *domain.Listing) error { return nil }
func (f *fakeListingRepo) Delete(ctx context.Context, id int64) error          { return nil }

type fakeImageRepo struct {
	rows []domain.ListingImage
	err  error
}

func (f *fakeImageRepo) ListAll(ctx context.Context) ([]domain.ListingImage, error) {
	return f.rows, f.err
}
func (f *fakeImageRepo) ListByListing(ctx context.Context, listingID int64) ([]domain.ListingImage, error) {
	return nil, nil
}
func (f *fakeImageRepo) CreateBatch(ctx context.Context, images []domain.ListingImage) error {
	return nil
}
func (f *fakeImageRepo) Delete(ctx context.Context, id int64) error           { return nil }
func (f *fakeImageRepo) DeleteByListing(ctx context.Context, lid int64) error { return nil }

func TestStoreReload(t *testing.T) {
	listings := &fakeListingRepo{rows: []domain.Listing{
		{ID: 1, Title: "Lake View Villa", City: "Mzuzu", Featured: true},
		{ID: 2, Title: "City Flat", City: "Blantyre"},
	}}
	images := &fakeImageRepo{rows: []domain.ListingImage{
		{ID: 10, ListingID: 1, OrderIndex: 1},
		{ID: 11, ListingID: 1, OrderIndex: 0},
		{ID: 12, ListingID: 2, OrderIndex: 0},
	}}

	store := NewStore(listings, images)
	require.NoError(t, store.Reload(context.Background()))
	assert.NoError(t, store.LastError())

	assert.Len(t, store.Listings(), 2)

	got, found := store.Get(1)
	require.True(t, found)
	assert.Equal(t, "Lake View Villa", got.Title)

	_, found = store.Get(99)
	assert.False(t, found)
}

func TestStoreImagesOrdered(t *testing.T) {
	listings := &fakeListingRepo{rows: []domain.Listing{{ID: 1}}}
	images := &fakeImageRepo{rows: []domain.ListingImage{
		{ID: 10, ListingID: 1, OrderIndex: 2},
		{ID: 11, ListingID: 1, OrderIndex: 0},
		{ID: 13, ListingID: 1, OrderIndex: 1},
		{ID: 12, ListingID: 2, OrderIndex: 0},
	}}

	store := NewStore(listings, images)
	require.NoError(t, store.Reload(context.Background()))

	got := store.Images(1)
	require.Len(t, got, 3)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, int64(13), got[1].ID)
	assert.Equal(t, int64(10), got[2].ID)

	assert.Len(t, store.Images(2), 1)
	assert.Empty(t, store.Images(3))
}

func TestStoreReloadFailureKeepsSnapshot(t *testing.T) {
	listings := &fakeListingRepo{rows: []domain.Listing{{ID: 1, City: "Mzuzu"}}}
	images := &fakeImageRepo{}

	store := NewStore(listings, images)
	require.NoError(t, store.Reload(context.Background()))

	listings.err = errors.New("connection refused")
	require.Error(t, store.Reload(context.Background()))

	// previous snapshot survives, error is retained for the banner
	assert.Len(t, store.Listings(), 1)
	assert.Error(t, store.LastError())

	listings.err = nil
	require.NoError(t, store.Reload(context.Background()))
	assert.NoError(t, store.LastError())
}

func TestStoreCities(t *testing.T) {
	listings := &fakeListingRepo{rows: []domain.Listing{
		{ID: 1, City: "Mzuzu"},
		{ID: 2, City: "Blantyre"},
		{ID: 3, City: "Blantyre"},
		{ID: 4, City: ""},
	}}
	store := NewStore(listings, &fakeImageRepo{})
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, []string{"Blantyre", "Mzuzu"}, store.Cities())
}

func TestStoreStats(t *testing.T) {
	listings := &fakeListingRepo{rows: []domain.Listing{
		{ID: 1, Kind: domain.KindForSale, Price: 50000, Featured: true},
		{ID: 2, Kind: domain.KindForRent, Price: 20000},
		{ID: 3, Kind: domain.KindForSale, Price: 35000},
	}}
	store := NewStore(listings, &fakeImageRepo{})
	require.NoError(t, store.Reload(context.Background()))

	got := store.Stats()
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.ForSale)
	assert.Equal(t, 1, got.ForRent)
	assert.Equal(t, 1, got.Featured)
	assert.InDelta(t, 35000, got.MeanPrice, 0.01)
	assert.InDelta(t, 35000, got.MedianPrice, 0.01)
}

func TestStoreReloadOnBusEvent(t *testing.T) {
	listings := &fakeListingRepo{}
	store := NewStore(listings, &fakeImageRepo{})

	bus := EventBus.New()
	require.NoError(t, store.Bind(bus))

	listings.rows = []domain.Listing{{ID: 1}, {ID: 2}}
	bus.Publish(ReloadTopic)
	bus.WaitAsync()

	assert.Len(t, store.Listings(), 2)
}
