package catalog

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/google/btree"
	"github.com/montanaflynn/stats"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReloadTopic is published by the admin mutation layer after every
// successful mutation; the store subscribes and reloads wholesale.
const ReloadTopic = "catalog.reload"

type imageItem struct {
	img domain.ListingImage
}

func (a imageItem) Less(b btree.Item) bool {
	o := b.(imageItem)
	if a.img.ListingID != o.img.ListingID {
		return a.img.ListingID < o.img.ListingID
	}
	if a.img.OrderIndex != o.img.OrderIndex {
		return a.img.OrderIndex < o.img.OrderIndex
	}
	return a.img.ID < o.img.ID
}

// Stats summarizes the loaded catalog for the dashboard
type Stats struct {
	Total       int     `json:"total"`
	ForSale     int     `json:"for_sale"`
	ForRent     int     `json:"for_rent"`
	Featured    int     `json:"featured"`
	MeanPrice   float64 `json:"mean_price"`
	MedianPrice float64 `json:"median_price"`
}

// Store owns the in-memory catalog for the public views. The listing
// and image collections are replaced wholesale on every reload, never
// mutated in place.
type Store struct {
	listings repository.ListingRepository
	images   repository.ImageRepository

	mu       sync.RWMutex
	rows     []domain.Listing
	imgIndex *btree.BTree
	lastErr  error
}

func NewStore(listings repository.ListingRepository, images repository.ImageRepository) *Store {
	return &Store{
		listings: listings,
		images:   images,
		imgIndex: btree.New(8),
	}
}

// Bind subscribes the store to reload events on the application bus
func (s *Store) Bind(bus EventBus.Bus) error {
	return bus.Subscribe(ReloadTopic, func() {
		if err := s.Reload(context.Background()); err != nil {
			zap.L().Error("catalog reload failed", zap.Error(err))
		}
	})
}

// Reload fetches listings and images concurrently and swaps the
// catalog in one step once both fetches resolve. On failure the
// previous catalog is kept and the error is retained for the banner.
func (s *Store) Reload(ctx context.Context) error {
	var (
		rows []domain.Listing
		imgs []domain.ListingImage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.listings.ListAvailable(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		imgs, err = s.images.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	index := btree.New(8)
	for _, img := range imgs {
		index.ReplaceOrInsert(imageItem{img: img})
	}

	s.mu.Lock()
	s.rows = rows
	s.imgIndex = index
	s.lastErr = nil
	s.mu.Unlock()

	zap.L().Info("catalog reloaded",
		zap.Int("listings", len(rows)),
		zap.Int("images", len(imgs)))
	return nil
}

// Listings returns the current catalog snapshot in store order
// (featured-first, newest-first)
func (s *Store) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Listing, len(s.rows))
	copy(out, s.rows)
	return out
}

// Get returns a listing from the snapshot by id
func (s *Store) Get(id int64) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.rows {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

// Images returns a listing's images ordered by display order with id
// as tie-breaker
func (s *Store) Images(listingID int64) []domain.ListingImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ListingImage
	from := imageItem{img: domain.ListingImage{ListingID: listingID, OrderIndex: math.MinInt32, ID: math.MinInt64}}
	to := imageItem{img: domain.ListingImage{ListingID: listingID + 1, OrderIndex: math.MinInt32, ID: math.MinInt64}}
	s.imgIndex.AscendRange(from, to, func(it btree.Item) bool {
		out = append(out, it.(imageItem).img)
		return true
	})
	return out
}

// Cities returns the distinct cities of the snapshot, sorted
func (s *Store) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.rows))
	var out []string
	for _, l := range s.rows {
		if l.City == "" {
			continue
		}
		if _, ok := seen[l.City]; ok {
			continue
		}
		seen[l.City] = struct{}{}
		out = append(out, l.City)
	}
	sort.Strings(out)
	return out
}

// Stats computes catalog aggregates over the snapshot
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Stats{Total: len(s.rows)}
	prices := make([]float64, 0, len(s.rows))
	for _, l := range s.rows {
		prices = append(prices, l.Price)
		switch l.Kind {
		case domain.KindForSale:
			out.ForSale++
		case domain.KindForRent:
			out.ForRent++
		}
		if l.Featured {
			out.Featured++
		}
	}
	if len(prices) > 0 {
		out.MeanPrice, _ = stats.Mean(prices)
		out.MedianPrice, _ = stats.Median(prices)
	}
	return out
}

// LastError returns the most recent reload failure, nil when healthy
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
