package adminapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/session"
	"github.com/primehomes/primehomes/internal/webserver"
	"github.com/primehomes/primehomes/pkg/common"
	"go.uber.org/zap"
)

func registerAuthRoutes() {
	webserver.NoAuthPOST("/login", adminLogin)
	webserver.ApiPOST("/logout", adminLogout)
	webserver.ApiGET("/session", adminSession)
}

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AdminClaims is the bearer-token claim set for programmatic access
type AdminClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}

	appCtx := GetApp(c)
	tok, err := appCtx.SessionGate().Login(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		// Credential failures and backend failures are reported with
		// the same message; the distinction stays in the logs.
		if err == session.ErrInvalidCredentials {
			zap.L().Warn("admin login rejected", zap.String("email", payload.Email))
		} else {
			zap.L().Error("admin login backend failure", zap.Error(err))
		}
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	cfg := appCtx.Config()
	expire := time.Duration(cfg.Web.JwtExpire) * time.Hour
	if expire <= 0 {
		expire = session.Validity
	}
	claims := AdminClaims{
		Name: tok.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tok.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	sess, err := echosession.Get(webserver.SessionName, c)
	if err == nil {
		sess.Values["active"] = true
		sess.Options.HttpOnly = true
		sess.Options.MaxAge = int(session.Validity / time.Second)
		_ = sess.Save(c.Request(), c.Response())
	}

	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   tok.Email,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "admin login",
		OptTime:   time.Now(),
	})

	return ok(c, map[string]interface{}{
		"token": signed,
		"admin": tok,
	})
}

func adminLogout(c echo.Context) error {
	if err := GetApp(c).SessionGate().Logout(); err != nil {
		zap.L().Warn("session token delete failed", zap.Error(err))
	}
	sess, err := echosession.Get(webserver.SessionName, c)
	if err == nil {
		sess.Values["active"] = false
		sess.Options.MaxAge = -1
		_ = sess.Save(c.Request(), c.Response())
	}
	return ok(c, map[string]interface{}{"status": "logged_out"})
}

func adminSession(c echo.Context) error {
	tok, authorized := GetApp(c).SessionGate().Restore()
	if !authorized {
		return fail(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired or absent", nil)
	}
	return ok(c, tok)
}
