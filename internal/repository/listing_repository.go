package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/primehomes/primehomes/internal/domain"
	"gorm.io/gorm"
)

// GormListingRepository is the GORM implementation of ListingRepository
type GormListingRepository struct {
	db *gorm.DB
}

func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

func (r *GormListingRepository) ListAvailable(ctx context.Context) ([]domain.Listing, error) {
	var rows []domain.Listing
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.StatusAvailable).
		Order("featured DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query available listings")
	}
	return rows, nil
}

func (r *GormListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	var rows []domain.Listing
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query listings")
	}
	return rows, nil
}

func (r *GormListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &l, nil
}

func (r *GormListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *GormListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	l.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(l).Error
}

// Delete removes the listing together with its images in one transaction
func (r *GormListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&domain.ListingImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Listing{}, id).Error
	})
}
