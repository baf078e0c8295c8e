package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/common"
)

func registerListingRoutes() {
	webserver.ApiGET("/listings", listListings)
	webserver.ApiGET("/listings/:id", getListing)
	webserver.ApiPOST("/listings", createListing)
	webserver.ApiPUT("/listings/:id", updateListing)
	webserver.ApiDELETE("/listings/:id", deleteListing)
}

type listingPayload struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Price       float64  `json:"price" form:"price"`
	Kind        string   `json:"kind" form:"kind"`
	Category    string   `json:"category" form:"category"`
	Bedrooms    int      `json:"bedrooms" form:"bedrooms"`
	Bathrooms   int      `json:"bathrooms" form:"bathrooms"`
	AreaSqm     float64  `json:"area_sqm" form:"area_sqm"`
	Location    string   `json:"location" form:"location"`
	City        string   `json:"city" form:"city"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	Featured    bool     `json:"featured" form:"featured"`
	Status      string   `json:"status" form:"status"`
}

func (p *listingPayload) validate() (string, bool) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return "Title is required", false
	}
	if !domain.ValidKind(p.Kind) {
		return "Kind must be 'for-sale' or 'for-rent'", false
	}
	if !domain.ValidCategory(p.Category) {
		return "Unknown category", false
	}
	if p.Status == "" {
		p.Status = domain.StatusAvailable
	}
	if !domain.ValidStatus(p.Status) {
		return "Unknown status", false
	}
	if p.Price < 0 {
		return "Price must not be negative", false
	}
	if p.AreaSqm <= 0 {
		return "Area must be positive", false
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		return "Room counts must not be negative", false
	}
	return "", true
}

func (p *listingPayload) apply(l *domain.Listing) {
	l.Title = p.Title
	l.Description = p.Description
	l.Price = p.Price
	l.Kind = p.Kind
	l.Category = p.Category
	l.Bedrooms = p.Bedrooms
	l.Bathrooms = p.Bathrooms
	l.AreaSqm = p.AreaSqm
	l.Location = strings.TrimSpace(p.Location)
	l.City = strings.TrimSpace(p.City)
	l.Latitude = p.Latitude
	l.Longitude = p.Longitude
	l.Featured = p.Featured
	l.Status = p.Status
}

func listListings(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	kind := strings.TrimSpace(c.QueryParam("kind"))
	category := strings.TrimSpace(c.QueryParam("category"))
	status := strings.TrimSpace(c.QueryParam("status"))
	city := strings.TrimSpace(c.QueryParam("city"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"title":      "title",
		"price":      "price",
		"city":       "city",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okcol := allowed[sortField]
	if !okcol || sortCol == "" {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Listing{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", like, like, like)
	}
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if city != "" {
		db = db.Where("city = ?", city)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listings", err.Error())
	}

	var rows []domain.Listing
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listings", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getListing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID", nil)
	}
	appCtx := GetApp(c)
	l, err := appCtx.Listings().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Listing not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listing", err.Error())
	}
	images, err := appCtx.Images().ListByListing(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listing images", err.Error())
	}
	return ok(c, map[string]interface{}{"listing": l, "images": images})
}

func createListing(c echo.Context) error {
	var payload listingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse listing", err.Error())
	}
	if msg, valid := payload.validate(); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	l := domain.Listing{ID: common.UUIDint64()}
	payload.apply(&l)
	if err := GetApp(c).Listings().Create(c.Request().Context(), &l); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create listing", err.Error())
	}
	publishReload(c)
	return ok(c, l)
}

func updateListing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID", nil)
	}
	appCtx := GetApp(c)
	l, err := appCtx.Listings().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Listing not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listing", err.Error())
	}

	var payload listingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse listing", err.Error())
	}
	if msg, valid := payload.validate(); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	payload.apply(l)
	if err := appCtx.Listings().Update(c.Request().Context(), l); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update listing", err.Error())
	}
	publishReload(c)
	return ok(c, l)
}

func deleteListing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID", nil)
	}
	if !requireConfirm(c) {
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion must be confirmed with confirm=true", nil)
	}
	if err := GetApp(c).Listings().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete listing", err.Error())
	}
	publishReload(c)
	return ok(c, map[string]interface{}{"id": id})
}
