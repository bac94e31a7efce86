package httpserver

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/pages"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/views"
	"github.com/soundplus/storefront/pkg/logging"
)

const featuredCount = 8

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *Storefront) Home(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "storefront.home")

	products := pages.NewList[models.Product]().Load(ctx, func(ctx context.Context) ([]models.Product, error) {
		return h.catalog.Products(ctx, service.ProductFilter{})
	})
	if products.IsFailed() {
		l.Error("get_products_error", "status", apiclient.StatusOf(products.Err), "error", products.Err)
	}

	featured := products.Items
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}

	return h.render(c, http.StatusOK, "home.html", "Home", views.HomePage{
		Hero:     views.NewHero(parseIntDefault(c.QueryParam("slide"), 0)),
		Products: products,
		Featured: views.NewProductCards(featured),
	})
}

func (h *Storefront) Products(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "storefront.products")

	filter := service.ProductFilter{Category: c.QueryParam("category"), Query: c.QueryParam("q")}
	if filter.Category != "" && !slices.Contains(models.Categories, filter.Category) {
		l.Warn("get_products_error", "status", 400, "reason", "unknown category", "category", filter.Category)
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown category")
	}

	products := pages.NewList[models.Product]().Load(ctx, func(ctx context.Context) ([]models.Product, error) {
		return h.catalog.Products(ctx, filter)
	})
	if products.IsFailed() {
		l.Error("get_products_error", "status", apiclient.StatusOf(products.Err), "error", products.Err)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	pager := pages.NewPager(page, pages.DefaultPageSize, int64(products.Count()))
	offset, limit := pages.Calculate(pager.Page, pager.Size)
	window := products.Items
	switch {
	case offset >= len(window):
		window = nil
	case offset+limit < len(window):
		window = window[offset : offset+limit]
	default:
		window = window[offset:]
	}

	return h.render(c, http.StatusOK, "products.html", "Products", views.ProductsPage{
		Category:   filter.Category,
		Query:      filter.Query,
		Categories: models.Categories,
		Products:   products,
		Cards:      views.NewProductCards(window),
		Pager:      pager,
	})
}

func (h *Storefront) Product(c echo.Context) error {
	ctx := requestContext(c)
	l := logging.FromContext(ctx).With("handler", "storefront.product")

	id := c.Param("id")
	p, err := h.catalog.Product(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			l.Warn("get_product_error", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_error", "status", apiclient.StatusOf(err), "product_id", id, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not load product: "+err.Error())
	}

	return h.render(c, http.StatusOK, "product.html", p.Name, views.ProductPage{
		Product: *p,
		Card:    views.NewProductCard(*p),
	})
}
