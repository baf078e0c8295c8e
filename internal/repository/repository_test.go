package repository

import (
	"context"
	"testing"
	"time"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedListing(t *testing.T, db *gorm.DB, l domain.Listing) domain.Listing {
	if l.ID == 0 {
		l.ID = common.UUIDint64()
	}
	if l.Status == "" {
		l.Status = domain.StatusAvailable
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func TestListAvailableOrdering(t *testing.T) {
	db := testDB(t)
	repo := NewGormListingRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	old := seedListing(t, db, domain.Listing{Title: "old regular", CreatedAt: base})
	newer := seedListing(t, db, domain.Listing{Title: "new regular", CreatedAt: base.Add(10 * time.Minute)})
	feat := seedListing(t, db, domain.Listing{Title: "featured", Featured: true, CreatedAt: base.Add(5 * time.Minute)})
	seedListing(t, db, domain.Listing{Title: "sold", Status: domain.StatusSold, CreatedAt: base.Add(20 * time.Minute)})

	rows, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// featured first, then newest created
	assert.Equal(t, feat.ID, rows[0].ID)
	assert.Equal(t, newer.ID, rows[1].ID)
	assert.Equal(t, old.ID, rows[2].ID)
}

func TestListingDeleteCascadesImages(t *testing.T) {
	db := testDB(t)
	listings := NewGormListingRepository(db)
	images := NewGormImageRepository(db)
	ctx := context.Background()

	l := seedListing(t, db, domain.Listing{Title: "with images"})
	require.NoError(t, images.CreateBatch(ctx, []domain.ListingImage{
		{ID: common.UUIDint64(), ListingID: l.ID, ImageURL: "a.jpg", OrderIndex: 0},
		{ID: common.UUIDint64(), ListingID: l.ID, ImageURL: "b.jpg", OrderIndex: 1},
	}))

	require.NoError(t, listings.Delete(ctx, l.ID))

	_, err := listings.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	left, err := images.ListByListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestImagesOrderedByDisplayIndex(t *testing.T) {
	db := testDB(t)
	images := NewGormImageRepository(db)
	ctx := context.Background()

	require.NoError(t, images.CreateBatch(ctx, []domain.ListingImage{
		{ID: 3, ListingID: 1, ImageURL: "c.jpg", OrderIndex: 2},
		{ID: 1, ListingID: 1, ImageURL: "a.jpg", OrderIndex: 0},
		{ID: 2, ListingID: 1, ImageURL: "b.jpg", OrderIndex: 1},
	}))

	rows, err := images.ListByListing(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a.jpg", rows[0].ImageURL)
	assert.Equal(t, "b.jpg", rows[1].ImageURL)
	assert.Equal(t, "c.jpg", rows[2].ImageURL)
}

func TestInquiryUpdateStatus(t *testing.T) {
	db := testDB(t)
	repo := NewGormInquiryRepository(db)
	ctx := context.Background()

	q := domain.Inquiry{ID: common.UUIDint64(), Name: "Jane", Email: "jane@example.com", Message: "hello"}
	require.NoError(t, repo.Create(ctx, &q))
	assert.Equal(t, domain.InquiryNew, q.Status)

	require.NoError(t, repo.UpdateStatus(ctx, q.ID, domain.InquiryContacted))
	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryContacted, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999999, domain.InquiryClosed), ErrNotFound)
}

func TestAdminFindByCredentials(t *testing.T) {
	db := testDB(t)
	repo := NewGormAdminRepository(db)
	ctx := context.Background()

	hashed := common.Sha256HashWithSalt("primehomes", common.GetSecretSalt())
	require.NoError(t, db.Create(&domain.SysAdmin{
		ID: common.UUIDint64(), Name: "Admin", Email: "admin@primehomes.mw",
		Password: hashed, Status: common.ENABLED,
	}).Error)

	admin, err := repo.FindByCredentials(ctx, "Admin@Primehomes.MW", hashed)
	require.NoError(t, err)
	assert.Equal(t, "admin@primehomes.mw", admin.Email)

	_, err = repo.FindByCredentials(ctx, "admin@primehomes.mw", "wrong-hash")
	assert.ErrorIs(t, err, ErrNoMatch)

	// disabled accounts never match
	require.NoError(t, db.Model(&domain.SysAdmin{}).
		Where("email = ?", "admin@primehomes.mw").
		Update("status", common.DISABLED).Error)
	_, err = repo.FindByCredentials(ctx, "admin@primehomes.mw", hashed)
	assert.ErrorIs(t, err, ErrNoMatch)

	require.NoError(t, repo.TouchLastLogin(ctx, admin.ID))
}
