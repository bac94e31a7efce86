// Package search finds products by free text. Elastic is used when an
// index is configured; Catalog filters the backend product list in process.
package search

import (
	"context"
	"strings"

	"github.com/soundplus/storefront/internal/models"
)

type Query struct {
	Text     string
	Category string
	From     int
	Size     int
}

type Results struct {
	Total int64
	Items []models.Product
}

type Searcher interface {
	Search(ctx context.Context, q Query) (Results, error)
}

// Indexer is implemented by searchers that keep their own copy of the
// catalog.
type Indexer interface {
	Index(ctx context.Context, p models.Product) error
	Remove(ctx context.Context, id string) error
}

type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Catalog struct {
	Source ProductSource
}

func (c *Catalog) Search(ctx context.Context, q Query) (Results, error) {
	all, err := c.Source.ListProducts(ctx)
	if err != nil {
		return Results{}, err
	}
	terms := strings.Fields(strings.ToLower(q.Text))

	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if matches(p, terms) {
			matched = append(matched, p)
		}
	}
	return Results{Total: int64(len(matched)), Items: window(matched, q.From, q.Size)}, nil
}

func matches(p models.Product, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := strings.ToLower(strings.Join([]string{p.Name, p.Brand, p.Model, p.Category, p.Description}, " "))
	for _, t := range terms {
		if !strings.Contains(hay, t) {
			return false
		}
	}
	return true
}

func window(items []models.Product, from, size int) []models.Product {
	if from < 0 {
		from = 0
	}
	if from >= len(items) {
		return []models.Product{}
	}
	if size <= 0 {
		return items[from:]
	}
	end := min(from+size, len(items))
	return items[from:end]
}
