package views

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/pages"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/transport"
)

func layout(sess *session.Session, page any) Layout {
	return Layout{
		Title:     "Test",
		CSRFToken: "csrf-tok",
		Navbar:    NewNavbar(sess, 0, "/", false),
		Footer:    NewFooter(time.Now()),
		Page:      page,
	}
}

func render(t *testing.T, name string, data Layout) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	return buf.String()
}

func loaded[T any](items []T, err error) *pages.List[T] {
	return pages.NewList[T]().Load(context.Background(), func(context.Context) ([]T, error) { return items, err })
}

func TestRenderHome(t *testing.T) {
	products := []models.Product{{ID: "p1", Name: "Aria", Price: 99, Discount: "10%"}}
	out := render(t, "home.html", layout(nil, HomePage{
		Hero:     NewHero(0),
		Products: loaded(products, nil),
		Featured: NewProductCards(products),
	}))

	assert.Contains(t, out, "Premium Wireless")
	assert.Contains(t, out, `href="/products/p1"`)
	assert.Contains(t, out, "10% OFF")
	assert.Contains(t, out, "118.80")
	assert.Contains(t, out, `href="/login"`)
	assert.NotContains(t, out, `href="/admin"`)
	assert.Contains(t, out, "SoundPlus++. All rights reserved.")
}

func TestRenderScrollThreshold(t *testing.T) {
	out := render(t, "cart.html", layout(nil, CartPage{}))
	assert.Regexp(t, `var limit = \s*`+strconv.Itoa(ScrollThreshold)+`\s*;`, out)
	assert.Contains(t, out, "window.scrollY > limit")
}

func TestRenderOrdersStates(t *testing.T) {
	sess := &session.Session{ID: "u1", Username: "bob", Role: models.RoleUser, Token: "t"}

	out := render(t, "orders.html", layout(sess, OrdersPage{Orders: loaded[models.Order](nil, nil)}))
	assert.Contains(t, out, "No orders yet")

	orders := []models.Order{{ID: "o1", Status: "shipped", TotalAmount: 42.5, Items: []models.OrderItem{{Name: "Aria", Quantity: 2}}}}
	out = render(t, "orders.html", layout(sess, OrdersPage{Orders: loaded(orders, nil)}))
	assert.Contains(t, out, "o1")
	assert.Contains(t, out, "shipped")
	assert.Contains(t, out, "$42.5")
	assert.Contains(t, out, "Aria x 2")
	assert.Contains(t, out, "Hello, bob")
	assert.NotContains(t, out, "Admin Panel")

	fail := &apiclient.APIError{Status: 500, Message: "boom"}
	out = render(t, "orders.html", layout(sess, OrdersPage{Orders: loaded[models.Order](nil, fail)}))
	assert.Contains(t, out, "Could not load orders: boom (status 500)")
}

func TestRenderAdminFormKeepsValues(t *testing.T) {
	admin := &session.Session{ID: "u1", Username: "ann", Role: models.RoleAdmin, Token: "t"}
	form := transport.AddProductForm{Name: "Aria <X>", Brand: "Sonic", Price: "abc", Category: "gaming", Connectivity: "wired"}
	_, err := form.Validate()
	var fe transport.FieldErrors
	require.True(t, errors.As(err, &fe))

	out := render(t, "admin.html", layout(admin, AdminPage{
		Products:     loaded([]models.Product{{ID: "p1", Name: "Bolt", Brand: "Vox", Category: "earbuds", Price: 20}}, nil),
		FormOpen:     true,
		Form:         form,
		FormErrors:   fe,
		Categories:   models.Categories,
		Connectivity: models.Connectivity,
	}))

	assert.Contains(t, out, `value="Aria &lt;X&gt;"`)
	assert.Contains(t, out, `<option value="gaming" selected>`)
	assert.Contains(t, out, "Price must be a number")
	assert.Contains(t, out, "All Products (1)")
	assert.Contains(t, out, "Vox - earbuds")
	assert.Contains(t, out, "https://via.placeholder.com/100")
	assert.Contains(t, out, `href="/admin/products/p1/delete"`)
	assert.Contains(t, out, "Admin Panel")
}

func TestRenderConfirm(t *testing.T) {
	out := render(t, "admin_confirm.html", layout(nil, AdminConfirmPage{ID: "p1", Name: "Aria", Question: DeleteConfirmText}))
	assert.Contains(t, out, DeleteConfirmText)
	assert.Contains(t, out, `name="confirm" value="yes"`)
	assert.Contains(t, out, `value="csrf-tok"`)
}

func TestRenderNotice(t *testing.T) {
	l := layout(nil, ErrorPage{Status: 404, Message: "Not Found"})
	l.Notice = &session.Notice{Kind: session.NoticeSuccess, Message: "Product deleted!"}
	out := render(t, "error.html", l)
	assert.Contains(t, out, `notice-success`)
	assert.Contains(t, out, "Product deleted!")
	assert.Contains(t, out, "404")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.Error(t, r.Render(&bytes.Buffer{}, "missing.html", nil, nil))
}
