package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/soundplus/storefront/pkg/middleware/logging"
)

const BodyLimit = "10M"

// Common is the middleware chain every storefront server installs, in order.
func Common(logger *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		loggingmw.RequestLogger(logger),
		ecM.SecureWithConfig(ecM.SecureConfig{
			XSSProtection:      "1; mode=block",
			ContentTypeNosniff: "nosniff",
			XFrameOptions:      "DENY",
			ReferrerPolicy:     "same-origin",
		}),
		ecM.BodyLimit(BodyLimit),
	}
}
