package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/events"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/search"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/transport"
	"github.com/soundplus/storefront/pkg/logging"
)

type CatalogService struct {
	API    *apiclient.Client
	Search search.Searcher
	Events events.Publisher
}

type ProductFilter struct {
	Category string
	Query    string
}

// Products lists the catalog. A text query goes through the searcher; a
// plain listing always comes from the backend.
func (s *CatalogService) Products(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	if strings.TrimSpace(f.Query) != "" && s.Search != nil {
		res, err := s.Search.Search(ctx, search.Query{Text: f.Query, Category: f.Category})
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		return res.Items, nil
	}

	all, err := s.API.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if f.Category == "" {
		return all, nil
	}
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, f.Category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.API.GetProduct(ctx, id)
}

// AddProduct validates form and posts it for an admin session.
func (s *CatalogService) AddProduct(ctx context.Context, sess *session.Session, form transport.AddProductForm, image *apiclient.FilePart) (*models.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	draft, err := form.Validate()
	if err != nil {
		return nil, err
	}

	p, err := s.API.AddProduct(ctx, sess.Token, draft, image)
	if err != nil {
		return nil, err
	}

	ev := events.New(events.TypeProductAdded, sess.ID)
	ev.ProductID, ev.Name = p.ID, draft.Name
	publish(ctx, s.Events, ev)
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sess *session.Session, id string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if err := s.API.DeleteProduct(ctx, sess.Token, id); err != nil {
		return err
	}

	ev := events.New(events.TypeProductDeleted, sess.ID)
	ev.ProductID = id
	publish(ctx, s.Events, ev)
	if idx, ok := s.Search.(search.Indexer); ok {
		if err := idx.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_remove_error", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	idx, ok := s.Search.(search.Indexer)
	if !ok || p == nil || p.ID == "" {
		return
	}
	if err := idx.Index(ctx, *p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
	}
}

func requireAdmin(sess *session.Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
