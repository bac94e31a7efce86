package views

import (
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/pages"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/transport"
)

// Layout is the data every page template receives. Page holds the
// page-specific model.
type Layout struct {
	Title     string
	CSRFToken string
	Navbar    Navbar
	Footer    Footer
	Notice    *session.Notice
	Page      any
}

type HomePage struct {
	Hero     Hero
	Products *pages.List[models.Product]
	Featured []ProductCard
}

type ProductsPage struct {
	Category   string
	Query      string
	Categories []string
	Products   *pages.List[models.Product]
	Cards      []ProductCard
	Pager      pages.Pager
}

type ProductPage struct {
	Product models.Product
	Card    ProductCard
}

type CartPage struct {
	Items []models.CartItem
	Total float64
}

type OrdersPage struct {
	Orders *pages.List[models.Order]
}

type AdminPage struct {
	Products     *pages.List[models.Product]
	FormOpen     bool
	Form         transport.AddProductForm
	FormErrors   transport.FieldErrors
	Categories   []string
	Connectivity []string
}

const DeleteConfirmText = "Are you sure you want to delete this product?"

type AdminConfirmPage struct {
	ID       string
	Name     string
	Question string
}

type AuthPage struct {
	Username string
	Email    string
	Error    string
}

type ErrorPage struct {
	Status  int
	Message string
}

// AdminImage is the thumbnail used in the admin product list.
func AdminImage(p models.Product) string {
	if p.Image == "" {
		return "https://via.placeholder.com/100"
	}
	return p.Image
}
