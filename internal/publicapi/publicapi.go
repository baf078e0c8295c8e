package publicapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/app"
	"github.com/primehomes/primehomes/internal/catalog"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/common"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the public catalog endpoints
func RegisterRoutes() {
	webserver.PubGET("/listings", listCatalog)
	webserver.PubGET("/listings/:id", getCatalogListing)
	webserver.PubGET("/cities", listCities)
	webserver.PubGET("/site", getSiteInfo)
	webserver.PubPOST("/inquiries", createInquiry)
}

func getApp(c echo.Context) app.AppContext {
	return webserver.GetAppCtx(c)
}

type listingView struct {
	domain.Listing
	Images []domain.ListingImage `json:"images"`
}

func withImages(store *catalog.Store, rows []domain.Listing) []listingView {
	out := make([]listingView, 0, len(rows))
	for _, l := range rows {
		out = append(out, listingView{Listing: l, Images: store.Images(l.ID)})
	}
	return out
}

// listCatalog returns the filtered catalog partitioned into the
// featured and regular display groups
func listCatalog(c echo.Context) error {
	var criteria catalog.FilterCriteria
	if err := c.Bind(&criteria); err != nil {
		criteria = catalog.FilterCriteria{}
	}
	query := c.QueryParam("q")

	store := getApp(c).Catalog()
	filtered := catalog.Apply(store.Listings(), criteria, query)
	featured, regular := catalog.Partition(filtered)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"featured": withImages(store, featured),
		"regular":  withImages(store, regular),
		"total":    len(filtered),
	})
}

func getCatalogListing(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}
	store := getApp(c).Catalog()
	l, found := store.Get(id)
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "listing not found")
	}
	return c.JSON(http.StatusOK, listingView{Listing: l, Images: store.Images(id)})
}

func listCities(c echo.Context) error {
	return c.JSON(http.StatusOK, getApp(c).Catalog().Cities())
}

func getSiteInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, getApp(c).SiteSettings())
}

type inquiryPayload struct {
	ListingID string `json:"listing_id" form:"listing_id"`
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Message   string `json:"message" form:"message"`
}

// createInquiry captures a lead from the public contact form
func createInquiry(c echo.Context) error {
	var payload inquiryPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse inquiry")
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and message are required")
	}
	if !strings.Contains(payload.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}

	q := domain.Inquiry{
		ID:      common.UUIDint64(),
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   strings.TrimSpace(payload.Phone),
		Message: payload.Message,
		Status:  domain.InquiryNew,
	}
	// General inquiries carry no listing reference
	if payload.ListingID != "" {
		if id, err := strconv.ParseInt(payload.ListingID, 10, 64); err == nil {
			q.ListingID = &id
		}
	}

	appCtx := getApp(c)
	if err := appCtx.Inquiries().Create(c.Request().Context(), &q); err != nil {
		zap.L().Error("inquiry create failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to submit inquiry")
	}

	if notifier := appCtx.Notifier(); notifier != nil {
		notifier.InquiryCreated(q)
	}
	return c.JSON(http.StatusCreated, q)
}
