// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"gigboard/internal/models"
)

type ElasticsearchCatalog struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewElasticsearchCatalog(client *elasticsearch.Client, index string, size int) *ElasticsearchCatalog {
	if size <= 0 || size > 10000 {
		size = 500
	}
	return &ElasticsearchCatalog{client: client, index: index, size: size}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				ID          string `json:"id"`
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *ElasticsearchCatalog) ListGigs(ctx context.Context) ([]models.Gig, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"isActive": true}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
		"_source": []string{"id", "title", "description"},
	}
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrCatalogQuery, err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(&body),
		c.client.Search.WithSize(c.size),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogQuery, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrCatalogQuery, res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogQuery, err)
	}

	gigs := make([]models.Gig, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id := hit.Source.ID
		if id == "" {
			id = hit.ID
		}
		gigs = append(gigs, models.Gig{
			ID:          id,
			Title:       hit.Source.Title,
			Description: hit.Source.Description,
		})
	}
	return gigs, nil
}
