package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/soundplus/storefront/internal/models"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return client, nil
}

// Ping checks that the cluster answers.
func Ping(ctx context.Context, es *elasticsearch.Client) error {
	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return nil
}

type Elastic struct {
	ES        *elasticsearch.Client
	IndexName string
}

func (s *Elastic) Search(ctx context.Context, q Query) (Results, error) {
	must := []any{}
	if text := strings.TrimSpace(q.Text); text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    []string{"name^2", "brand", "description"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}
	boolQuery := map[string]any{"must": must}
	if q.Category != "" {
		boolQuery["filter"] = []any{map[string]any{"match": map[string]any{"category": q.Category}}}
	}

	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"from":  max(q.From, 0),
	}
	if q.Size > 0 {
		body["size"] = q.Size
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return Results{}, fmt.Errorf("encode search: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.IndexName),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return Results{}, fmt.Errorf("search: %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string         `json:"_id"`
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return Results{}, fmt.Errorf("decode search: %w", err)
	}

	items := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
		if items[i].ID == "" {
			items[i].ID = hit.ID
		}
	}
	return Results{Total: r.Hits.Total.Value, Items: items}, nil
}

func (s *Elastic) Index(ctx context.Context, p models.Product) error {
	// _id is metadata in Elasticsearch and may not appear in the source.
	doc := struct {
		models.Product
		ID string `json:"_id,omitempty"`
	}{Product: p}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	res, err := s.ES.Index(s.IndexName, bytes.NewReader(data),
		s.ES.Index.WithDocumentID(p.ID),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}

func (s *Elastic) Remove(ctx context.Context, id string) error {
	res, err := s.ES.Delete(s.IndexName, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product %s: %s", id, res.Status())
	}
	return nil
}
