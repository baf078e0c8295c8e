package webserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/primehomes/primehomes/internal/app"
	"go.uber.org/zap"
)

// SessionName is the admin cookie session
const SessionName = "primehomes_session"

type WebServer struct {
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	noauth *echo.Group
	appCtx app.AppContext
}

var server *WebServer

// Init builds the echo server: public API group, unauthenticated
// admin endpoints (login), and the guarded admin API group.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	cfg := appCtx.Config()
	secret := cfg.Web.Secret
	if secret == "" {
		secret = random.String(32)
		zap.L().Warn("web secret not configured, generated a volatile one")
	}

	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(secret))))

	server = &WebServer{
		root:   e,
		pub:    e.Group("/api/v1"),
		noauth: e.Group("/admin/api"),
		api:    e.Group("/admin/api"),
		appCtx: appCtx,
	}

	// Inject application context for handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("appCtx", appCtx)
			return next(c)
		}
	})

	// Bearer tokens are validated by echo-jwt; requests without an
	// Authorization header fall through to the cookie-session guard.
	server.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
	}))
	server.api.Use(sessionGuard(appCtx))

	return server
}

// sessionGuard authorizes cookie-session requests through the
// session gate; JWT-authenticated requests pass straight through.
func sessionGuard(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get("user") != nil { // set by echo-jwt
				return next(c)
			}
			sess, err := session.Get(SessionName, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			if active, _ := sess.Values["active"].(bool); !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "session required")
			}
			tok, ok := appCtx.SessionGate().Restore()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			c.Set("admin_email", tok.Email)
			return next(c)
		}
	}
}

// ZapLogger logs requests through the global zap logger
func ZapLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

// GetAppCtx returns the application context bound to the request
func GetAppCtx(c echo.Context) app.AppContext {
	return c.Get("appCtx").(app.AppContext)
}

// Listen starts the web server
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return server.root.Start(addr)
}

// PubGET registers a public GET endpoint
func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

// PubPOST registers a public POST endpoint
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// NoAuthPOST registers an unauthenticated admin endpoint (login)
func NoAuthPOST(path string, h echo.HandlerFunc) {
	server.noauth.POST(path, h)
}

// ApiGET registers a guarded admin GET endpoint
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers a guarded admin POST endpoint
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers a guarded admin PUT endpoint
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers a guarded admin DELETE endpoint
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
