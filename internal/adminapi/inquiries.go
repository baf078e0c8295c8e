package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/internal/webserver"
)

func registerInquiryRoutes() {
	webserver.ApiGET("/inquiries", listInquiries)
	webserver.ApiGET("/inquiries/:id", getInquiry)
	webserver.ApiPUT("/inquiries/:id/status", updateInquiryStatus)
	webserver.ApiDELETE("/inquiries/:id", deleteInquiry)
}

func listInquiries(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Inquiry{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	// Lenient date-range bounds, any common format accepted
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		if t, err := dateparse.ParseAny(from); err == nil {
			db = db.Where("created_at >= ?", t)
		}
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		if t, err := dateparse.ParseAny(to); err == nil {
			db = db.Where("created_at <= ?", t)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiries", err.Error())
	}

	var rows []domain.Inquiry
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiries", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getInquiry(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	q, err := GetApp(c).Inquiries().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inquiry", err.Error())
	}
	return ok(c, q)
}

type inquiryStatusPayload struct {
	Status string `json:"status" form:"status"`
}

func updateInquiryStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	var payload inquiryStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if !domain.ValidInquiryStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status must be 'new', 'contacted' or 'closed'", nil)
	}
	err = GetApp(c).Inquiries().UpdateStatus(c.Request().Context(), id, payload.Status)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update inquiry", err.Error())
	}
	publishReload(c)
	return ok(c, map[string]interface{}{"id": id, "status": payload.Status})
}

func deleteInquiry(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid inquiry ID", nil)
	}
	if !requireConfirm(c) {
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion must be confirmed with confirm=true", nil)
	}
	if err := GetApp(c).Inquiries().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete inquiry", err.Error())
	}
	publishReload(c)
	return ok(c, map[string]interface{}{"id": id})
}
