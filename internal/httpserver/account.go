package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/pages"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/transport"
	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/logging"
)

func (h *Storefront) LoginPage(c echo.Context) error {
	if _, ok := storeOf(c).Session(); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.render(c, http.StatusOK, "login.html", "Login", views.AuthPage{})
}

func (h *Storefront) Login(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var form transport.LoginForm
	if err := c.Bind(&form); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid login form")
	}

	sess, err := h.auth.Login(ctx, storeOf(c), form)
	if err != nil {
		status, msg := http.StatusBadGateway, "Login failed: "+err.Error()
		switch {
		case errors.Is(err, service.ErrValidation):
			status, msg = http.StatusBadRequest, "Email and password are required"
		case apiclient.IsUnauthorized(err), apiclient.StatusOf(err) == http.StatusBadRequest:
			status, msg = http.StatusUnauthorized, "Invalid email or password"
		}
		l.Warn("login_error", "status", status, "error", err)
		return h.render(c, status, "login.html", "Login", views.AuthPage{Email: form.Email, Error: msg})
	}

	l.Info("login_success", "user_id", sess.ID, "role", sess.Role)
	return h.redirectWithNotice(c, "/", session.NoticeSuccess, "Welcome back, "+sess.Username+"!")
}

func (h *Storefront) RegisterPage(c echo.Context) error {
	if _, ok := storeOf(c).Session(); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.render(c, http.StatusOK, "register.html", "Register", views.AuthPage{})
}

func (h *Storefront) Register(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var form transport.RegisterForm
	if err := c.Bind(&form); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid registration form")
	}

	if err := h.auth.Register(ctx, form); err != nil {
		status := http.StatusBadGateway
		var apiErr *apiclient.APIError
		switch {
		case errors.Is(err, service.ErrValidation):
			status = http.StatusBadRequest
		case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
			status = apiErr.Status
		}
		l.Warn("register_error", "status", status, "error", err)
		return h.render(c, status, "register.html", "Register", views.AuthPage{
			Username: form.Username,
			Email:    form.Email,
			Error:    "Registration failed: " + err.Error(),
		})
	}

	l.Info("register_success")
	return h.redirectWithNotice(c, "/login", session.NoticeSuccess, "Registration successful! Please log in.")
}

func (h *Storefront) Logout(c echo.Context) error {
	ctx := requestContext(c)
	if err := h.auth.Logout(ctx, storeOf(c)); err != nil {
		logging.FromContext(ctx).Error("logout_error", "error", err)
		return err
	}
	return h.redirect(c, "/")
}

func (h *Storefront) Orders(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "account.orders")

	sess, _ := storeOf(c).Session()
	orders := pages.NewList[models.Order]().Load(ctx, func(ctx context.Context) ([]models.Order, error) {
		return h.orders.Orders(ctx, sess)
	})
	if orders.IsFailed() {
		if handled, err := h.expireOnUnauthorized(c, orders.Err); handled {
			return err
		}
		l.Error("get_orders_error", "status", apiclient.StatusOf(orders.Err), "error", orders.Err)
	}

	return h.render(c, http.StatusOK, "orders.html", "My Orders", views.OrdersPage{Orders: orders})
}

func (h *Storefront) CartPage(c echo.Context) error {
	items := storeOf(c).Cart()
	return h.render(c, http.StatusOK, "cart.html", "Cart", views.CartPage{
		Items: items,
		Total: service.CartTotal(items),
	})
}

func (h *Storefront) AddToCart(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var form transport.CartForm
	if err := c.Bind(&form); err != nil {
		l.Warn("cart_add_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart form")
	}

	p, err := h.cart.Add(ctx, storeOf(c), form.ProductID, form.Quantity)
	if err != nil {
		l.Warn("cart_add_error", "status", apiclient.StatusOf(err), "product_id", form.ProductID, "error", err)
		return h.redirectWithNotice(c, "/cart", session.NoticeError, "Could not add to cart: "+err.Error())
	}
	return h.redirectWithNotice(c, "/cart", session.NoticeSuccess, "Added "+p.Name+" to cart")
}

func (h *Storefront) RemoveFromCart(c echo.Context) error {
	if err := h.cart.Remove(storeOf(c), c.Param("id")); err != nil {
		logging.FromContext(c.Request().Context()).Error("cart_remove_error", "error", err)
		return err
	}
	return h.redirect(c, "/cart")
}
