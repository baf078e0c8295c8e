package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/pkg/common"
	"gorm.io/gorm"
)

// GormAdminRepository is the GORM implementation of AdminRepository
type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByCredentials performs the exact match the session gate
// delegates: lowercased email, hashed password, enabled status.
func (r *GormAdminRepository) FindByCredentials(ctx context.Context, email, hashedPassword string) (*domain.SysAdmin, error) {
	var admin domain.SysAdmin
	err := r.db.WithContext(ctx).
		Where("email = ? AND password = ? AND status = ?",
			strings.ToLower(strings.TrimSpace(email)), hashedPassword, common.ENABLED).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormAdminRepository) TouchLastLogin(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.SysAdmin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login": time.Now(),
			"updated_at": time.Now(),
		}).Error
}
