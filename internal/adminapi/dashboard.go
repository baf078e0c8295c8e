package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/metrics"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
	webserver.ApiGET("/dashboard/metrics/:name", getDashboardMetric)
	webserver.ApiGET("/status", getStatus)
}

func getDashboard(c echo.Context) error {
	appCtx := GetApp(c)

	inquiryCounts := map[string]int64{}
	for _, status := range []string{domain.InquiryNew, domain.InquiryContacted, domain.InquiryClosed} {
		var count int64
		GetDB(c).Model(&domain.Inquiry{}).Where("status = ?", status).Count(&count)
		inquiryCounts[status] = count
	}

	var totalListings int64
	GetDB(c).Model(&domain.Listing{}).Count(&totalListings)

	return ok(c, map[string]interface{}{
		"catalog":        appCtx.Catalog().Stats(),
		"cities":         appCtx.Catalog().Cities(),
		"listings_total": totalListings,
		"inquiries":      inquiryCounts,
	})
}

// getDashboardMetric returns the last hour of a monitor gauge
func getDashboardMetric(c echo.Context) error {
	name := c.Param("name")
	allowed := map[string]bool{
		"system_cpuuse":     true,
		"system_memuse":     true,
		"primehomes_cpuuse": true,
		"primehomes_memuse": true,
	}
	if !allowed[name] {
		return fail(c, http.StatusBadRequest, "INVALID_METRIC", "Unknown metric name", nil)
	}
	end := time.Now().Unix()
	points, err := metrics.Select(name, end-3600, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metric", err.Error())
	}
	return ok(c, points)
}

// getStatus reports catalog health for the persistent error banner
func getStatus(c echo.Context) error {
	store := GetApp(c).Catalog()
	if err := store.LastError(); err != nil {
		return ok(c, map[string]interface{}{
			"healthy": false,
			"error":   "Failed to load catalog data. Please retry.",
		})
	}
	return ok(c, map[string]interface{}{"healthy": true})
}
