package app

import (
	"errors"
	"strings"
	"time"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@primehomes.mw"
	const defaultPassword = "primehomes"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var admin domain.SysAdmin
	err := a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Email:     superEmail,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetLevel := !strings.EqualFold(admin.Level, "super")
	resetStatus := !strings.EqualFold(admin.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{Key: "site.name", Default: "PrimeHomes Malawi", Description: "Site display name"},
	{Key: "site.contact_email", Default: "info@primehomes.mw", Description: "Public contact email"},
	{Key: "site.contact_phone", Default: "+265 888 414 728", Description: "Public contact phone"},
	{Key: "site.address", Default: "Lilongwe, Malawi", Description: "Office address"},
	{Key: "inquiry.retention_days", Default: "365", Description: "Days to keep closed inquiries"},
	{Key: "oprlog.retention_days", Default: "365", Description: "Days to keep operator logs"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkDemoListings seeds a couple of catalog entries in debug mode
func (a *Application) checkDemoListings() {
	demoListings := []domain.Listing{
		{
			Title: "Lake View Villa", Description: "Spacious villa overlooking the lake shore",
			Price: 50000, Kind: domain.KindForSale, Category: domain.CategoryHouse,
			Bedrooms: 4, Bathrooms: 3, AreaSqm: 420, Location: "Nkhata Bay Road",
			City: "Mzuzu", Featured: true, Status: domain.StatusAvailable,
		},
		{
			Title: "City Flat", Description: "Modern two bedroom flat near the CBD",
			Price: 20000, Kind: domain.KindForRent, Category: domain.CategoryApartment,
			Bedrooms: 2, Bathrooms: 1, AreaSqm: 85, Location: "Victoria Avenue",
			City: "Blantyre", Featured: false, Status: domain.StatusAvailable,
		},
		{
			Title: "Commercial Plot Area 47", Description: "Serviced commercial plot with road frontage",
			Price: 35000, Kind: domain.KindForSale, Category: domain.CategoryLand,
			Bedrooms: 0, Bathrooms: 0, AreaSqm: 1200, Location: "Area 47 Sector 3",
			City: "Lilongwe", Featured: false, Status: domain.StatusAvailable,
		},
	}

	for _, l := range demoListings {
		var count int64
		a.gormDB.Model(&domain.Listing{}).Where("title = ?", l.Title).Count(&count)
		if count == 0 {
			l.ID = common.UUIDint64()
			l.CreatedAt = time.Now()
			l.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&l).Error; err != nil {
				zap.L().Error("failed to create demo listing", zap.String("title", l.Title), zap.Error(err))
			} else {
				zap.L().Info("initialized demo listing", zap.String("title", l.Title))
			}
		}
	}
}
