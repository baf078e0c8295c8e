package repository

import (
	"context"
	"errors"

	"github.com/primehomes/primehomes/internal/domain"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ErrNoMatch is returned by FindByCredentials when no admin matches
var ErrNoMatch = errors.New("no matching admin")

// ListingRepository handles database operations for listings
type ListingRepository interface {
	// ListAvailable retrieves available listings ordered featured-first,
	// then newest-created-first
	ListAvailable(ctx context.Context) ([]domain.Listing, error)

	// List retrieves all listings regardless of status, newest first
	List(ctx context.Context) ([]domain.Listing, error)

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)

	// Create inserts a new listing
	Create(ctx context.Context, l *domain.Listing) error

	// Update updates an existing listing
	Update(ctx context.Context, l *domain.Listing) error

	// Delete removes a listing and its images
	Delete(ctx context.Context, id int64) error
}

// ImageRepository handles database operations for listing images
type ImageRepository interface {
	// ListAll retrieves every listing image
	ListAll(ctx context.Context) ([]domain.ListingImage, error)

	// ListByListing retrieves the images of one listing ordered by
	// display order
	ListByListing(ctx context.Context, listingID int64) ([]domain.ListingImage, error)

	// CreateBatch inserts a batch of images
	CreateBatch(ctx context.Context, images []domain.ListingImage) error

	// Delete removes a single image
	Delete(ctx context.Context, id int64) error

	// DeleteByListing removes all images of a listing
	DeleteByListing(ctx context.Context, listingID int64) error
}

// InquiryRepository handles database operations for contact inquiries
type InquiryRepository interface {
	// List retrieves inquiries newest first
	List(ctx context.Context) ([]domain.Inquiry, error)

	// GetByID retrieves an inquiry by ID
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)

	// Create inserts a new inquiry
	Create(ctx context.Context, q *domain.Inquiry) error

	// UpdateStatus updates the triage status of an inquiry
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete removes an inquiry
	Delete(ctx context.Context, id int64) error
}

// AdminRepository handles admin account lookups for the session gate
type AdminRepository interface {
	// FindByCredentials matches email + hashed password + enabled
	// status exactly. Returns ErrNoMatch when nothing matches.
	FindByCredentials(ctx context.Context, email, hashedPassword string) (*domain.SysAdmin, error)

	// TouchLastLogin records a successful login timestamp
	TouchLastLogin(ctx context.Context, id int64) error
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
