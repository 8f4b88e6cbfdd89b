package view

import (
	"context"
	"strings"

	"bookview/internal/book"
	"bookview/internal/loader"
	"bookview/internal/platform/openlibrary"
)

const (
	TextLoading        = "Loading..."
	TextLoadingDetails = "Loading details..."
	TextNotFound       = "Book not found"
	TextNoBooks        = "No books found"
	TextNoImage        = "No image"
	TextNoISBN         = "No ISBN available for detailed info"
	TextSearch         = "Search"
	TextSearching      = "Searching..."
)

// Catalog is what the views need from book.Service.
type Catalog interface {
	loader.BookLookup
	SearchBooksByTitle(ctx context.Context, title string) []book.SearchResult
	CoverURL(coverID int, size openlibrary.CoverSize) string
}

// JoinAuthors renders an author list, or Unknown when empty.
func JoinAuthors(authors []string) string {
	if joined := strings.Join(authors, ", "); joined != "" {
		return joined
	}
	return book.Unknown
}

// DisplayModel is the single-book display in one of its three branches.
type DisplayModel struct {
	Loading bool
	Error   string
	Book    *book.BookDetails
}

// Authors returns the joined author line for a resolved book.
func (m DisplayModel) Authors() string {
	if m.Book == nil {
		return ""
	}
	return JoinAuthors(m.Book.Authors)
}

// NewDisplayModel derives the display branch from a lifecycle state.
func NewDisplayModel(st loader.State[book.BookDetails]) DisplayModel {
	switch {
	case st.Loading:
		return DisplayModel{Loading: true}
	case st.Value == nil:
		msg := st.Error
		if msg == "" {
			msg = TextNotFound
		}
		return DisplayModel{Error: msg}
	default:
		return DisplayModel{Book: st.Value}
	}
}

// Display shows one book selected by ISBN.
type Display struct {
	details *loader.BookDetails
}

// NewDisplay starts loading isbn straight away. An empty isbn leaves the
// display idle.
func NewDisplay(ctx context.Context, catalog Catalog, isbn string) *Display {
	d := &Display{details: loader.NewBookDetails(ctx, catalog)}
	d.SetISBN(isbn)
	return d
}

// SetISBN switches the displayed book.
func (d *Display) SetISBN(isbn string) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		d.details.Reset()
		return
	}
	d.details.Load(isbn)
}

func (d *Display) Model() DisplayModel {
	return NewDisplayModel(d.details.State())
}

// Wait blocks until the current ISBN has resolved.
func (d *Display) Wait(ctx context.Context) (DisplayModel, error) {
	st, err := d.details.Wait(ctx)
	return NewDisplayModel(st), err
}

func (d *Display) Close() {
	d.details.Close()
}
