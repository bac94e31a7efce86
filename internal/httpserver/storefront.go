package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/logging"
	"github.com/soundplus/storefront/pkg/middleware/csrf"
)

const (
	storeKey   = "session_store"
	storageKey = "session_storage"
)

// Storefront serves the HTML pages. Every handler reads the request's
// session store once and passes it on explicitly.
type Storefront struct {
	sessions    sessions.Store
	sessionName string

	auth    *service.AuthService
	catalog *service.CatalogService
	orders  *service.OrderService
	cart    *service.CartService
	api     *apiclient.Client

	now func() time.Time
}

func NewStorefront(d *Deps) *Storefront {
	name := d.SessionName
	if name == "" {
		name = DefaultSessionName
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Storefront{
		sessions:    d.Sessions,
		sessionName: name,
		auth:        d.Auth,
		catalog:     d.Catalog,
		orders:      d.Orders,
		cart:        d.Cart,
		api:         d.API,
		now:         now,
	}
}

// WithSession loads the session store for the request. Changes are written
// back right before the response headers go out.
func (h *Storefront) WithSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		storage, err := session.Load(h.sessions, c.Request(), c.Response(), h.sessionName)
		if err != nil {
			l.Warn("session_load_error", "reason", "starting a fresh session", "error", err)
		}
		c.Response().Before(func() {
			if err := storage.Flush(); err != nil {
				l.Error("session_save_error", "error", err)
			}
		})

		c.Set(storageKey, storage)
		store := session.NewStore(storage)
		dropped, err := store.DropExpired()
		if err != nil {
			l.Warn("session_expire_error", "error", err)
		}
		if dropped {
			l.Info("session_expired")
			_ = store.Notify(session.NoticeInfo, "Your session has expired. Please log in again.")
		}

		c.Set(storeKey, store)
		return next(c)
	}
}

func (h *Storefront) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := storeOf(c).Session(); !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

func (h *Storefront) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := storeOf(c).Session()
		if !ok || !sess.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return next(c)
	}
}

func storeOf(c echo.Context) *session.Store {
	s, _ := c.Get(storeKey).(*session.Store)
	if s == nil {
		s = session.NewStore(session.NewMemoryStorage())
		c.Set(storeKey, s)
	}
	return s
}

// requestContext is the request context carrying the request id for
// backend calls.
func requestContext(c echo.Context) context.Context {
	return apiclient.WithRequestID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
}

func (h *Storefront) render(c echo.Context, status int, name, title string, page any) error {
	store := storeOf(c)
	sess, _ := store.Session()

	notice, err := store.TakeNotice()
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("notice_read_error", "error", err)
	}

	return c.Render(status, name, views.Layout{
		Title:     title,
		CSRFToken: csrf.Token(c),
		Navbar:    views.NewNavbar(sess, store.CartCount(), c.Request().URL.Path, c.QueryParam("menu") == "open"),
		Footer:    views.NewFooter(h.now()),
		Notice:    notice,
		Page:      page,
	})
}

func (h *Storefront) redirectWithNotice(c echo.Context, to, kind, message string) error {
	if err := storeOf(c).Notify(kind, message); err != nil {
		logging.FromContext(c.Request().Context()).Warn("notice_write_error", "error", err)
	}
	return h.redirect(c, to)
}

// redirect writes the session before answering with a 303. A session that
// cannot be saved yields an error page and the client keeps its old cookie.
func (h *Storefront) redirect(c echo.Context, to string) error {
	if storage, ok := c.Get(storageKey).(*session.CookieStorage); ok && storage != nil {
		if err := storage.Flush(); err != nil {
			logging.FromContext(c.Request().Context()).Error("session_save_error", "error", err)
			_, _ = storeOf(c).TakeNotice()
			return echo.NewHTTPError(http.StatusInternalServerError, "Your session could not be saved. Try removing items from your cart.")
		}
	}
	return c.Redirect(http.StatusSeeOther, to)
}

// expireOnUnauthorized clears the session and sends the user to the login
// page when the backend rejected the bearer token.
func (h *Storefront) expireOnUnauthorized(c echo.Context, err error) (bool, error) {
	if apiclient.StatusOf(err) != http.StatusUnauthorized {
		return false, nil
	}
	store := storeOf(c)
	if lerr := store.Logout(); lerr != nil {
		return true, lerr
	}
	logging.FromContext(c.Request().Context()).Info("session_rejected_by_backend")
	return true, h.redirectWithNotice(c, "/login", session.NoticeError, "Your session has expired. Please log in again.")
}

func (h *Storefront) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if rerr := h.render(c, code, "error.html", http.StatusText(code), views.ErrorPage{Status: code, Message: msg}); rerr != nil {
		logging.FromContext(c.Request().Context()).Error("error_page_render_error", "error", rerr)
		_ = c.String(code, msg)
	}
}

func (h *Storefront) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(requestContext(c), 2*time.Second)
	defer cancel()
	if err := h.api.Health(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness_failed", "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
