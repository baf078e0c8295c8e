package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/primehomes/primehomes/internal/domain"
	"gorm.io/gorm"
)

// GormInquiryRepository is the GORM implementation of InquiryRepository
type GormInquiryRepository struct {
	db *gorm.DB
}

func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

func (r *GormInquiryRepository) List(ctx context.Context) ([]domain.Inquiry, error) {
	var rows []domain.Inquiry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "query inquiries")
	}
	return rows, nil
}

func (r *GormInquiryRepository) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	var q domain.Inquiry
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &q, nil
}

func (r *GormInquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	if q.Status == "" {
		q.Status = domain.InquiryNew
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *GormInquiryRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormInquiryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Inquiry{}, id).Error
}
