package service

import (
	"context"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/session"
)

type OrderService struct {
	API *apiclient.Client
}

func (s *OrderService) Orders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	return s.API.ListOrders(ctx, sess.Token, sess.ID)
}
