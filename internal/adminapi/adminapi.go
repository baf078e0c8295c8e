package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/app"
	"github.com/primehomes/primehomes/internal/catalog"
	"github.com/primehomes/primehomes/internal/webserver"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every admin endpoint on the web server
func RegisterRoutes() {
	registerAuthRoutes()
	registerListingRoutes()
	registerImageRoutes()
	registerInquiryRoutes()
	registerExportRoutes()
	registerDashboardRoutes()
}

// GetApp returns the application context bound to the request
func GetApp(c echo.Context) app.AppContext {
	return webserver.GetAppCtx(c)
}

// GetDB returns the request database handle
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetAppCtx(c).DB()
}

// publishReload notifies the catalog store that a mutation happened.
// Every mutation triggers a full reload, no incremental updates.
func publishReload(c echo.Context) {
	GetApp(c).Bus().Publish(catalog.ReloadTopic)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     rows,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// requireConfirm enforces the explicit confirmation step before
// destructive requests are issued
func requireConfirm(c echo.Context) bool {
	return c.QueryParam("confirm") == "true"
}
