package app

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/primehomes/primehomes/config"
	"github.com/primehomes/primehomes/internal/catalog"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/notify"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/internal/session"
	"github.com/primehomes/primehomes/pkg/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig  *config.AppConfig
	gormDB     *gorm.DB
	sched      *cron.Cron
	bus        EventBus.Bus
	catalog    *catalog.Store
	gate       *session.Gate
	tokenStore *session.BoltTokenStore
	notifier   *notify.Service

	listingRepo repository.ListingRepository
	imageRepo   repository.ImageRepository
	inquiryRepo repository.InquiryRepository
	adminRepo   repository.AdminRepository
}

// Ensure Application implements all interfaces
var (
	_ DBProvider      = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ CatalogProvider = (*Application)(nil)
	_ SessionProvider = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		if cfg.Logger.Filename == "" {
			_ = os.MkdirAll(cfg.GetLogDir(), 0755)
			cfg.Logger.Filename = filepath.Join(cfg.GetLogDir(), "primehomes.log")
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := os.MkdirAll(cfg.GetDataDir(), 0755); err != nil {
		zap.S().Errorf("create data dir failed: %v", err)
	}

	// Initialize metrics with workdir convention
	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Workdir)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	// Ensure database schema is migrated before seeding
	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkSuper()
	a.checkSettings()
	if cfg.System.Debug {
		a.checkDemoListings()
	}

	// Repositories over the shared handle
	a.listingRepo = repository.NewGormListingRepository(a.gormDB)
	a.imageRepo = repository.NewGormImageRepository(a.gormDB)
	a.inquiryRepo = repository.NewGormInquiryRepository(a.gormDB)
	a.adminRepo = repository.NewGormAdminRepository(a.gormDB)

	// Event bus wiring: mutations publish, the catalog reloads
	a.bus = EventBus.New()
	a.catalog = catalog.NewStore(a.listingRepo, a.imageRepo)
	if err := a.catalog.Bind(a.bus); err != nil {
		zap.S().Errorf("catalog bus subscribe failed: %v", err)
	}

	// Session token store and gate
	a.tokenStore, err = session.OpenBoltTokenStore(cfg.GetDataDir())
	if err != nil {
		zap.S().Fatalf("session store open failed: %v", err)
	}
	a.gate = session.NewGate(a.tokenStore, a.adminRepo)

	a.notifier, err = notify.NewService(cfg.Notify)
	if err != nil {
		zap.S().Errorf("notify service init failed: %v", err)
	}

	a.initJob()
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Catalog returns the in-memory catalog store
func (a *Application) Catalog() *catalog.Store {
	return a.catalog
}

// SessionGate returns the admin session gate
func (a *Application) SessionGate() *session.Gate {
	return a.gate
}

// Bus returns the application event bus
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Notifier returns the notification service
func (a *Application) Notifier() *notify.Service {
	return a.notifier
}

// Listings returns the listings repository
func (a *Application) Listings() repository.ListingRepository {
	return a.listingRepo
}

// Images returns the images repository
func (a *Application) Images() repository.ImageRepository {
	return a.imageRepo
}

// Inquiries returns the inquiries repository
func (a *Application) Inquiries() repository.InquiryRepository {
	return a.inquiryRepo
}

// Admins returns the admins repository
func (a *Application) Admins() repository.AdminRepository {
	return a.adminRepo
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.notifier != nil {
		a.notifier.Release()
	}
	if a.tokenStore != nil {
		_ = a.tokenStore.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
