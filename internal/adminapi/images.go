package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/common"
)

func registerImageRoutes() {
	webserver.ApiGET("/listings/:id/images", listListingImages)
	webserver.ApiPOST("/listings/:id/images", replaceListingImages)
	webserver.ApiDELETE("/images/:id", deleteImage)
}

type imagePayload struct {
	ImageURL   string `json:"image_url" form:"image_url"`
	IsPrimary  bool   `json:"is_primary" form:"is_primary"`
	OrderIndex int    `json:"order_index" form:"order_index"`
}

func listListingImages(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID", nil)
	}
	images, err := GetApp(c).Images().ListByListing(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query images", err.Error())
	}
	return ok(c, images)
}

// replaceListingImages swaps a listing's image batch wholesale:
// existing rows are dropped and the posted batch inserted.
func replaceListingImages(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID", nil)
	}
	appCtx := GetApp(c)
	if _, err := appCtx.Listings().GetByID(c.Request().Context(), id); errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Listing not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query listing", err.Error())
	}

	var payloads []imagePayload
	if err := c.Bind(&payloads); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse image batch", err.Error())
	}

	images := make([]domain.ListingImage, 0, len(payloads))
	for _, p := range payloads {
		url := strings.TrimSpace(p.ImageURL)
		if url == "" {
			// tolerate blob references generated client-side
			url = "upload://" + uuid.NewString()
		}
		images = append(images, domain.ListingImage{
			ID:         common.UUIDint64(),
			ListingID:  id,
			ImageURL:   url,
			IsPrimary:  p.IsPrimary,
			OrderIndex: p.OrderIndex,
		})
	}

	if err := appCtx.Images().DeleteByListing(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear image batch", err.Error())
	}
	if err := appCtx.Images().CreateBatch(c.Request().Context(), images); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store image batch", err.Error())
	}
	publishReload(c)
	return ok(c, images)
}

func deleteImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID", nil)
	}
	if !requireConfirm(c) {
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion must be confirmed with confirm=true", nil)
	}
	if err := GetApp(c).Images().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete image", err.Error())
	}
	publishReload(c)
	return ok(c, map[string]interface{}{"id": id})
}
