package loader

import (
	"context"
	"errors"

	"bookview/internal/book"
)

const (
	MsgNotFound   = "Book not found"
	MsgLoadFailed = "Failed to load book"
)

// BookLookup is the part of book.Service a details loader needs.
type BookLookup interface {
	Lookup(ctx context.Context, isbn string) (book.BookDetails, error)
}

// BookDetails is a loader keyed by ISBN.
type BookDetails = Loader[string, book.BookDetails]

// NewBookDetails returns a details loader whose errors are reported as
// user-facing text.
func NewBookDetails(ctx context.Context, lookup BookLookup) *BookDetails {
	return New[string, book.BookDetails](ctx, lookup.Lookup, DescribeBookError)
}

// DescribeBookError maps a lookup error to the text shown to users.
func DescribeBookError(err error) string {
	switch {
	case errors.Is(err, book.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, book.ErrUnavailable):
		return MsgLoadFailed
	case err.Error() == "":
		return MsgLoadFailed
	default:
		return err.Error()
	}
}
