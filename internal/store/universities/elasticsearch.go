// internal/store/universities/elasticsearch.go
package universities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchStore reads listings from an index whose name and country
// fields are mapped as keyword.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchStore(client *elasticsearch.Client, index string) *ElasticsearchStore {
	return &ElasticsearchStore{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Source University `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchStore) FindByName(ctx context.Context, name string) (*University, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"name": map[string]interface{}{
					"value":            name,
					"case_insensitive": true,
				},
			},
		},
		"sort": []interface{}{"_doc"},
	}

	hits, err := s.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	for _, u := range hits {
		if strings.EqualFold(u.Name, name) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (s *ElasticsearchStore) Search(ctx context.Context, filter Filter) ([]University, error) {
	var clauses []interface{}
	if filter.GPA != nil {
		clauses = append(clauses, map[string]interface{}{
			"range": map[string]interface{}{"min_gpa": map[string]interface{}{"lte": *filter.GPA}},
		})
	}
	if filter.Budget != nil {
		clauses = append(clauses, map[string]interface{}{
			"range": map[string]interface{}{"fees": map[string]interface{}{"lte": *filter.Budget}},
		})
	}
	if filter.Country != "" {
		clauses = append(clauses, map[string]interface{}{
			"term": map[string]interface{}{"country": filter.Country},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": clauses},
		},
		"sort": []interface{}{"_doc"},
	}
	if len(clauses) == 0 {
		query["query"] = map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	size := filter.Limit
	if size <= 0 {
		size = 100
	}
	return s.search(ctx, query, size)
}

func (s *ElasticsearchStore) search(ctx context.Context, query map[string]interface{}, size int) ([]University, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrStoreFailed, err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
		s.client.Search.WithSize(size),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrStoreFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search: %s", ErrStoreFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrStoreFailed, err)
	}

	out := make([]University, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		u := hit.Source
		if u.ID == "" {
			u.ID = hit.ID
		}
		out = append(out, u)
	}
	return out, nil
}
