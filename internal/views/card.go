package views

import (
	"math"
	"strconv"
	"strings"

	"github.com/soundplus/storefront/internal/models"
)

const PlaceholderImage = "https://via.placeholder.com/300x300?text=No+Image"

type ProductCard struct {
	ID       string
	Link     string
	Image    string
	Name     string
	Brand    string
	Category string

	Stars      [5]bool
	RatingText string

	Price         string
	OriginalPrice string

	DiscountBadge     string
	NoiseCancellation bool
}

func NewProductCard(p models.Product) ProductCard {
	c := ProductCard{
		ID:                p.ID,
		Link:              "/products/" + p.ID,
		Image:             p.Image,
		Name:              p.Name,
		Brand:             p.Brand,
		Category:          p.Category,
		RatingText:        RatingText(p.Rating),
		Price:             Money(p.Price),
		NoiseCancellation: p.NoiseCancellation,
	}
	if c.Image == "" {
		c.Image = PlaceholderImage
	}

	filled := FilledStars(p.Rating)
	for i := range c.Stars {
		c.Stars[i] = i < filled
	}

	if HasDiscount(string(p.Discount)) {
		c.DiscountBadge = string(p.Discount) + " OFF"
		c.OriginalPrice = strconv.FormatFloat(OriginalPrice(p.Price), 'f', 2, 64)
	}
	return c
}

func NewProductCards(ps []models.Product) []ProductCard {
	out := make([]ProductCard, len(ps))
	for i, p := range ps {
		out[i] = NewProductCard(p)
	}
	return out
}

// FilledStars is floor(rating) clamped to 0..5; no rating means none.
func FilledStars(rating *float64) int {
	if rating == nil || math.IsNaN(*rating) {
		return 0
	}
	n := int(math.Floor(*rating))
	return max(0, min(n, 5))
}

func RatingText(rating *float64) string {
	if rating == nil || math.IsNaN(*rating) {
		return "0.0"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

// HasDiscount treats "", "0" and "0%" as no discount.
func HasDiscount(d string) bool {
	switch strings.TrimSpace(d) {
	case "", "0", "0%":
		return false
	}
	return true
}

// OriginalPrice is the struck-through price, round(price*1.2, 2).
func OriginalPrice(price float64) float64 {
	return math.Round(price*1.2*100) / 100
}

// Money formats a price the way the backend sends it: 199.99, 200, 12.5.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
