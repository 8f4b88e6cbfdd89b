package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookview/internal/logger"
	"bookview/internal/platform/openlibrary"
)

// Service provides book lookups over the upstream catalog.
type Service struct {
	catalog Catalog
}

// NewService creates a new book service.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Lookup returns the details for isbn. Failures are ErrNotFound or wrap ErrUnavailable.
func (s *Service) Lookup(ctx context.Context, isbn string) (BookDetails, error) {
	entry, err := s.catalog.BookByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, openlibrary.ErrNoRecord) {
			return BookDetails{}, ErrNotFound
		}
		return BookDetails{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if entry == nil {
		return BookDetails{}, ErrNotFound
	}
	return FromEntry(*entry), nil
}

// FetchBookByISBN is the non-failing form of Lookup: any failure is logged and yields nil.
func (s *Service) FetchBookByISBN(ctx context.Context, isbn string) *BookDetails {
	details, err := s.Lookup(ctx, isbn)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.For(ctx).WithError(err).WithField("isbn", isbn).Warn("Error fetching book by ISBN")
		}
		return nil
	}
	return &details
}

// Search returns the upstream hits for title in upstream order.
func (s *Service) Search(ctx context.Context, title string) ([]SearchResult, error) {
	res, err := s.catalog.SearchByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	results := make([]SearchResult, 0, len(res.Docs))
	for _, doc := range res.Docs {
		results = append(results, SearchResult{
			Key:              doc.Key,
			Title:            doc.Title,
			AuthorNames:      doc.AuthorNames,
			CoverID:          doc.CoverID,
			ISBN:             doc.ISBN,
			FirstPublishYear: doc.FirstPublishYear,
		})
	}
	return results, nil
}

// SearchBooksByTitle is the non-failing form of Search: failures are logged and yield an empty slice.
func (s *Service) SearchBooksByTitle(ctx context.Context, title string) []SearchResult {
	results, err := s.Search(ctx, title)
	if err != nil {
		logger.For(ctx).WithError(err).WithField("title", title).Warn("Error searching books")
		return []SearchResult{}
	}
	return results
}

// CoverURL returns the image URL for coverID; an empty size means large.
func (s *Service) CoverURL(coverID int, size openlibrary.CoverSize) string {
	return s.catalog.CoverURL(coverID, size)
}

// FromEntry reshapes one details entry into BookDetails.
func FromEntry(entry openlibrary.DetailsEntry) BookDetails {
	d := entry.Details

	authors := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		authors = append(authors, a.Name)
	}

	coverURL := ""
	if entry.ThumbnailURL != "" {
		coverURL = strings.Replace(entry.ThumbnailURL, "-S.jpg", "-L.jpg", 1)
	}

	return BookDetails{
		CoverURL:       coverURL,
		Title:          orDefault(d.Title, UnknownTitle),
		Authors:        authors,
		PublishDate:    orDefault(d.PublishDate, Unknown),
		PhysicalFormat: orDefault(d.PhysicalFormat, Unknown),
		NumberOfPages:  d.NumberOfPages,
		Weight:         d.Weight,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
