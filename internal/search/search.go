package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/models"
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "location":     {"type": "text"},
      "remarks":      {"type": "text"},
      "category":     {"type": "keyword"},
      "status":       {"type": "keyword"},
      "priority":     {"type": "keyword"},
      "reportedBy":   {"type": "keyword"},
      "studentName":  {"type": "text"},
      "studentEmail": {"type": "keyword"},
      "createdAt":    {"type": "date"},
      "updatedAt":    {"type": "date"}
    }
  }
}`

func NewClient(ctx context.Context, url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("elasticsearch info", res)
	}
	return client, nil
}

type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func (ix *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := ix.ES.Indices.Exists([]string{ix.Index}, ix.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = ix.ES.Indices.Create(ix.Index,
		ix.ES.Indices.Create.WithContext(ctx),
		ix.ES.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (ix *Indexer) Put(ctx context.Context, c *models.Complaint) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode complaint: %w", err)
	}

	res, err := ix.ES.Index(ix.Index, &buf,
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(c.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("index complaint: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index complaint", res)
	}
	return nil
}

// Remove deletes a document. A document that is already gone is not an error.
func (ix *Indexer) Remove(ctx context.Context, id string) error {
	res, err := ix.ES.Delete(ix.Index, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete complaint", res)
	}
	return nil
}

// Apply mirrors one lifecycle event into the index.
func (ix *Indexer) Apply(ctx context.Context, ev events.Event) error {
	switch ev.Type {
	case events.ComplaintSubmitted, events.ComplaintUpdated:
		if ev.Complaint == nil {
			return fmt.Errorf("%s event for %s has no complaint", ev.Type, ev.ComplaintID)
		}
		return ix.Put(ctx, ev.Complaint)
	case events.ComplaintDeleted:
		return ix.Remove(ctx, ev.ComplaintID)
	default:
		return nil
	}
}

func (ix *Indexer) Search(ctx context.Context, query string, from, size int) (int64, []models.Complaint, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description", "location", "remarks"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []any{"_score", map[string]any{"createdAt": "desc"}},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Complaint `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]models.Complaint, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("%s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}
