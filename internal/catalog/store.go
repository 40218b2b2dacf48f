package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

// Store loads products from the catalog database.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type productRow struct {
	ID         int64          `db:"id"`
	Slug       string         `db:"slug"`
	ThomannURL sql.NullString `db:"thomann_url"`
}

type storeLinkRow struct {
	StoreName string `db:"store_name"`
	RawURL    string `db:"raw_url"`
}

// GetProduct loads a product and its content store links by ID.
func (s *Store) GetProduct(ctx context.Context, id int64) (Product, error) {
	if s.db == nil {
		return Product{}, errors.New("catalog store disabled")
	}

	var row productRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, slug, thomann_url FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}

	var linkRows []storeLinkRow
	err = s.db.SelectContext(ctx, &linkRows,
		s.db.Rebind(`SELECT store_name, raw_url FROM product_store_links WHERE product_id = ?`), id)
	if err != nil {
		return Product{}, fmt.Errorf("get store links for product %d: %w", id, err)
	}

	links := make(map[string]string, len(linkRows))
	for _, l := range linkRows {
		links[l.StoreName] = l.RawURL
	}

	return Product{
		ID:                row.ID,
		Slug:              row.Slug,
		ContentStoreLinks: links,
		ThomannURL:        row.ThomannURL.String,
	}, nil
}
