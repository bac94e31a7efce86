package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/middleware/csrf"
	"github.com/soundplus/storefront/pkg/middleware/ratelimit"
)

const DefaultSessionName = "soundplus_session"

// SessionOptions are the cookie options shared by every session store.
// Secure is off only for plain-http deployments.
func SessionOptions(maxAge time.Duration, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

type Deps struct {
	Sessions    sessions.Store
	SessionName string

	Auth    *service.AuthService
	Catalog *service.CatalogService
	Orders  *service.OrderService
	Cart    *service.CartService
	API     *apiclient.Client

	CSRF         csrf.Config
	LoginLimiter *ratelimit.Limiter
	Now          func() time.Time
}

func Register(e *echo.Echo, d *Deps) error {
	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	h := NewStorefront(d)
	e.HTTPErrorHandler = h.HTTPErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", h.Ready)

	e.Use(h.WithSession, csrf.Middleware(d.CSRF))

	e.GET("/", h.Home)
	e.GET("/products", h.Products)
	e.GET("/products/:id", h.Product)

	e.GET("/cart", h.CartPage)
	e.POST("/cart", h.AddToCart)
	e.POST("/cart/:id/remove", h.RemoveFromCart)

	loginMW := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		loginMW = append(loginMW, d.LoginLimiter.Middleware())
	}
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login, loginMW...)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register, loginMW...)
	e.POST("/logout", h.Logout)

	e.GET("/orders", h.Orders, h.RequireSession)

	admin := e.Group("/admin", h.RequireAdmin)
	admin.GET("", h.AdminDashboard)
	admin.POST("/products", h.AddProduct)
	admin.GET("/products/:id/delete", h.ConfirmDelete)
	admin.POST("/products/:id/delete", h.DeleteProduct)

	return nil
}
