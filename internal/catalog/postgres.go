// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"gigboard/internal/models"
)

const listGigsQuery = `
		SELECT id, title, COALESCE(description, '')
		FROM gigs
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1`

type PostgresCatalog struct {
	db    *sql.DB
	limit int
}

func NewPostgresCatalog(db *sql.DB, limit int) *PostgresCatalog {
	if limit <= 0 {
		limit = 500
	}
	return &PostgresCatalog{db: db, limit: limit}
}

func (c *PostgresCatalog) ListGigs(ctx context.Context) ([]models.Gig, error) {
	rows, err := c.db.QueryContext(ctx, listGigsQuery, c.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogQuery, err)
	}
	defer rows.Close()

	var gigs []models.Gig
	for rows.Next() {
		var g models.Gig
		if err := rows.Scan(&g.ID, &g.Title, &g.Description); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrCatalogQuery, err)
		}
		gigs = append(gigs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogQuery, err)
	}
	return gigs, nil
}
