package book

import (
	"context"

	"bookview/internal/platform/openlibrary"
)

//go:generate mockgen -source=ports.go -destination=mock_catalog.go -package=book

// Catalog defines the contract for the upstream book catalog.
type Catalog interface {
	BookByISBN(ctx context.Context, isbn string) (*openlibrary.DetailsEntry, error)
	SearchByTitle(ctx context.Context, title string) (*openlibrary.SearchResponse, error)
	CoverURL(coverID int, size openlibrary.CoverSize) string
}
