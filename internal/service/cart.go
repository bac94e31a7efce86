package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/session"
)

// CartService keeps the cart in the session. Stock is owned by the backend
// and is not touched here.
type CartService struct {
	API *apiclient.Client
}

// Add looks the product up so name and price come from the backend, not
// from the submitted form.
func (s *CartService) Add(ctx context.Context, store *session.Store, productID string, quantity int) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if quantity <= 0 {
		quantity = 1
	}

	p, err := s.API.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = productID
	}
	if err := store.AddToCart(models.CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: quantity}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CartService) Remove(store *session.Store, productID string) error {
	return store.RemoveFromCart(productID)
}

func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
