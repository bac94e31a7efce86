package transport

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/soundplus/storefront/internal/models"
)

var ErrValidation = errors.New("validation")

// FieldErrors maps a form field to what is wrong with it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrValidation }

// AddProductForm keeps raw strings so a rejected form can be shown again
// exactly as typed.
type AddProductForm struct {
	Name         string `form:"name"`
	Brand        string `form:"brand"`
	Model        string `form:"model"`
	Price        string `form:"price"`
	Category     string `form:"category"`
	Connectivity string `form:"connectivity"`
	Description  string `form:"description"`
	Available    string `form:"available"`
}

func DefaultAddProductForm() AddProductForm {
	return AddProductForm{Category: "headphones", Connectivity: "wireless", Available: "0"}
}

func (f AddProductForm) Validate() (models.ProductDraft, error) {
	errs := FieldErrors{}
	d := models.ProductDraft{
		Name:         strings.TrimSpace(f.Name),
		Brand:        strings.TrimSpace(f.Brand),
		Model:        strings.TrimSpace(f.Model),
		Category:     strings.TrimSpace(f.Category),
		Connectivity: strings.TrimSpace(f.Connectivity),
		Description:  strings.TrimSpace(f.Description),
	}

	for field, v := range map[string]string{
		"name": d.Name, "brand": d.Brand, "model": d.Model, "description": d.Description,
	} {
		if v == "" {
			errs[field] = "is required"
		}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	switch {
	case err != nil || math.IsNaN(price) || math.IsInf(price, 0):
		errs["price"] = "must be a number"
	case price < 0:
		errs["price"] = "cannot be negative"
	default:
		d.Price = price
	}

	if !slices.Contains(models.Categories, d.Category) {
		errs["category"] = fmt.Sprintf("must be one of %s", strings.Join(models.Categories, ", "))
	}
	if !slices.Contains(models.Connectivity, d.Connectivity) {
		errs["connectivity"] = fmt.Sprintf("must be one of %s", strings.Join(models.Connectivity, ", "))
	}

	avail := strings.TrimSpace(f.Available)
	if avail == "" {
		avail = "0"
	}
	n, err := strconv.Atoi(avail)
	switch {
	case err != nil:
		errs["available"] = "must be a whole number"
	case n < 0:
		errs["available"] = "cannot be negative"
	default:
		d.Available = n
	}

	if len(errs) > 0 {
		return models.ProductDraft{}, errs
	}
	return d, nil
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type RegisterForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type CartForm struct {
	ProductID string `form:"product_id"`
	Quantity  int    `form:"quantity"`
}
