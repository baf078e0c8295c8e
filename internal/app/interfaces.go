package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/primehomes/primehomes/config"
	"github.com/primehomes/primehomes/internal/catalog"
	"github.com/primehomes/primehomes/internal/notify"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/internal/session"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the in-memory catalog store
type CatalogProvider interface {
	Catalog() *catalog.Store
}

// SessionProvider provides the admin session gate
type SessionProvider interface {
	SessionGate() *session.Gate
}

// BusProvider provides the application event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// RepositoryProvider provides the data-access ports
type RepositoryProvider interface {
	Listings() repository.ListingRepository
	Images() repository.ImageRepository
	Inquiries() repository.InquiryRepository
	Admins() repository.AdminRepository
}

// NotifyProvider provides the notification service
type NotifyProvider interface {
	Notifier() *notify.Service
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SiteSettings() SiteSettings
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	CatalogProvider
	SessionProvider
	BusProvider
	SchedulerProvider
	RepositoryProvider
	NotifyProvider
	SettingsProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
