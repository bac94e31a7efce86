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

// adminPage fetches the full product list and renders the dashboard around
// the given form state.
func (h *Storefront) adminPage(c echo.Context, status int, open bool, form transport.AddProductForm, fieldErrs transport.FieldErrors) error {
	ctx := requestContext(c)
	products := pages.NewList[models.Product]().Load(ctx, func(ctx context.Context) ([]models.Product, error) {
		return h.catalog.Products(ctx, service.ProductFilter{})
	})
	if products.IsFailed() {
		logging.FromContext(ctx).Error("get_products_error", "handler", "admin.dashboard",
			"status", apiclient.StatusOf(products.Err), "error", products.Err)
	}

	return h.render(c, status, "admin.html", "Admin Dashboard", views.AdminPage{
		Products:     products,
		FormOpen:     open,
		Form:         form,
		FormErrors:   fieldErrs,
		Categories:   models.Categories,
		Connectivity: models.Connectivity,
	})
}

func (h *Storefront) AdminDashboard(c echo.Context) error {
	return h.adminPage(c, http.StatusOK, c.QueryParam("form") == "open", transport.DefaultAddProductForm(), nil)
}

func (h *Storefront) AddProduct(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "admin.add_product")

	var form transport.AddProductForm
	if err := c.Bind(&form); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product form")
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "unreadable image", "error", err)
		_ = storeOf(c).Notify(session.NoticeError, "Failed to add product: could not read image")
		return h.adminPage(c, http.StatusBadRequest, true, form, nil)
	}
	defer closeImage()

	sess, _ := storeOf(c).Session()
	p, err := h.catalog.AddProduct(ctx, sess, form, image)
	if err != nil {
		if handled, rerr := h.expireOnUnauthorized(c, err); handled {
			return rerr
		}

		var fieldErrs transport.FieldErrors
		status := http.StatusBadGateway
		if errors.As(err, &fieldErrs) {
			status = http.StatusUnprocessableEntity
		} else if s := apiclient.StatusOf(err); s >= 400 && s < 500 {
			status = s
		}
		l.Warn("product_create_error", "status", status, "error", err)
		_ = storeOf(c).Notify(session.NoticeError, "Failed to add product: "+err.Error())
		return h.adminPage(c, status, true, form, fieldErrs)
	}

	l.Info("create_product_success", "product_id", p.ID, "with_image", image != nil)
	return h.redirectWithNotice(c, "/admin", session.NoticeSuccess, "Product added successfully!")
}

// formImage returns the optional uploaded image. A form without a file
// yields a nil part.
func formImage(c echo.Context) (*apiclient.FilePart, func(), error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, func() {}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &apiclient.FilePart{
		Field:       "image",
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

func (h *Storefront) ConfirmDelete(c echo.Context) error {
	ctx := requestContext(c)
	id := c.Param("id")

	page := views.AdminConfirmPage{ID: id, Question: views.DeleteConfirmText}
	if p, err := h.catalog.Product(ctx, id); err == nil {
		page.Name = p.Name
	} else {
		logging.FromContext(ctx).Warn("get_product_error", "handler", "admin.confirm_delete", "product_id", id, "error", err)
	}
	return h.render(c, http.StatusOK, "admin_confirm.html", "Delete Product", page)
}

func (h *Storefront) DeleteProduct(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")
	id := c.Param("id")

	if c.FormValue("confirm") != "yes" {
		l.Info("product_delete_cancelled", "product_id", id)
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	sess, _ := storeOf(c).Session()
	if err := h.catalog.DeleteProduct(ctx, sess, id); err != nil {
		if handled, rerr := h.expireOnUnauthorized(c, err); handled {
			return rerr
		}
		l.Error("product_delete_error", "status", apiclient.StatusOf(err), "product_id", id, "error", err)
		return h.redirectWithNotice(c, "/admin", session.NoticeError, "Failed to delete product")
	}

	l.Info("delete_product_success", "product_id", id)
	return h.redirectWithNotice(c, "/admin", session.NoticeSuccess, "Product deleted!")
}
