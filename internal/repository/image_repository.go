package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/primehomes/primehomes/internal/domain"
	"gorm.io/gorm"
)

// GormImageRepository is the GORM implementation of ImageRepository
type GormImageRepository struct {
	db *gorm.DB
}

func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

func (r *GormImageRepository) ListAll(ctx context.Context) ([]domain.ListingImage, error) {
	var rows []domain.ListingImage
	err := r.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query listing images")
	}
	return rows, nil
}

func (r *GormImageRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.ListingImage, error) {
	var rows []domain.ListingImage
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("order_index ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query listing images")
	}
	return rows, nil
}

func (r *GormImageRepository) CreateBatch(ctx context.Context, images []domain.ListingImage) error {
	if len(images) == 0 {
		return nil
	}
	now := time.Now()
	for i := range images {
		if images[i].CreatedAt.IsZero() {
			images[i].CreatedAt = now
		}
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *GormImageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.ListingImage{}, id).Error
}

func (r *GormImageRepository) DeleteByListing(ctx context.Context, listingID int64) error {
	return r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&domain.ListingImage{}).Error
}
