package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when the catalog has no record for an ISBN.
	ErrNotFound = errors.New("book not found")
	// ErrUnavailable wraps transport and non-2xx failures from the catalog.
	ErrUnavailable = errors.New("catalog unavailable")
)

const (
	UnknownTitle = "Unknown Title"
	Unknown      = "Unknown"
)

// BookDetails is the display record built from one details response entry.
type BookDetails struct {
	CoverURL       string   `json:"coverUrl"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	PublishDate    string   `json:"publishDate"`
	PhysicalFormat string   `json:"physicalFormat"`
	NumberOfPages  *int     `json:"numberOfPages,omitempty"`
	Weight         *string  `json:"weight,omitempty"`
}

// Pages returns the page count, or 0 when it is absent.
func (d BookDetails) Pages() int {
	if d.NumberOfPages == nil {
		return 0
	}
	return *d.NumberOfPages
}

// WeightText returns the weight, or "" when it is absent.
func (d BookDetails) WeightText() string {
	if d.Weight == nil {
		return ""
	}
	return *d.Weight
}

// SearchResult is one search hit, kept as the catalog returned it.
type SearchResult struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	CoverID          *int     `json:"cover_i,omitempty"`
	ISBN             []string `json:"isbn,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
}

// FirstISBN returns the first listed ISBN, if any.
func (r SearchResult) FirstISBN() (string, bool) {
	if len(r.ISBN) == 0 || r.ISBN[0] == "" {
		return "", false
	}
	return r.ISBN[0], true
}
