package app

import (
	"github.com/mitchellh/mapstructure"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/spf13/cast"
)

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	var cfg domain.SysConfig
	if err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfg).Error; err != nil {
		return ""
	}
	return cfg.Value
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(a.GetSettingsStringValue(category, key))
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return cast.ToBool(a.GetSettingsStringValue(category, key))
}

// SiteSettings is the typed view of the "site" settings category
type SiteSettings struct {
	Name         string `mapstructure:"name" json:"name"`
	ContactEmail string `mapstructure:"contact_email" json:"contact_email"`
	ContactPhone string `mapstructure:"contact_phone" json:"contact_phone"`
	Address      string `mapstructure:"address" json:"address"`
}

// SiteSettings decodes every "site" row into one struct
func (a *Application) SiteSettings() SiteSettings {
	var rows []domain.SysConfig
	a.gormDB.Where("type = ?", "site").Find(&rows)

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Name] = row.Value
	}

	var out SiteSettings
	if err := mapstructure.Decode(values, &out); err != nil {
		return SiteSettings{}
	}
	return out
}
