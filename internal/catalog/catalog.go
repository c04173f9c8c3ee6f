// internal/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gigboard/internal/models"
)

const (
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
	SourceStatic        = "static"
)

var ErrCatalogQuery = errors.New("catalog query failed")

// Catalog supplies the gigs a worker can browse. Filtering by search term
// happens in the browse flow, not in the backend.
type Catalog interface {
	ListGigs(ctx context.Context) ([]models.Gig, error)
}

// Static serves a fixed gig list.
type Static []models.Gig

func (s Static) ListGigs(context.Context) ([]models.Gig, error) {
	return append([]models.Gig(nil), s...), nil
}

// LoadStatic reads a JSON array of gigs. An empty path yields an empty
// catalog.
func LoadStatic(path string) (Static, error) {
	if path == "" {
		return Static{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static catalog: %w", err)
	}
	var gigs Static
	if err := json.Unmarshal(data, &gigs); err != nil {
		return nil, fmt.Errorf("parse static catalog %s: %w", path, err)
	}
	return gigs, nil
}
