package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS returns a permissive CORS middleware for the browser frontend.
// X-Session-ID is exposed so anonymous clients can read the session ID the
// search endpoint mints for them.
func CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, "X-Session-ID", "X-User-Token"},
		ExposeHeaders:    []string{"X-Session-ID"},
		AllowCredentials: false,
	})
}
