package view

import (
	"context"
	"sync"

	"bookview/internal/book"
	"bookview/internal/loader"
	"bookview/internal/platform/openlibrary"
)

// OverlayModel is the expanded view of a hovered card.
type OverlayModel struct {
	Loading bool

	// Details is set when the ISBN lookup resolved.
	Details  *book.BookDetails
	CoverURL string

	// Reduced view fields, taken from the search result.
	Title          string
	Authors        string
	FirstPublished *int
	Notice         string
}

// BuildOverlay picks the overlay branch for a search result given the state
// of its details lookup. coverURL is the card's own cover.
func BuildOverlay(result book.SearchResult, coverURL string, st loader.State[book.BookDetails]) OverlayModel {
	_, hasISBN := result.FirstISBN()
	if hasISBN && st.Loading {
		return OverlayModel{Loading: true}
	}

	if st.Value != nil {
		cover := st.Value.CoverURL
		if cover == "" {
			cover = coverURL
		}
		return OverlayModel{
			Details:  st.Value,
			CoverURL: cover,
			Title:    st.Value.Title,
			Authors:  JoinAuthors(st.Value.Authors),
		}
	}

	notice := TextNoISBN
	if hasISBN && st.Error != "" {
		notice = st.Error
	}
	return OverlayModel{
		Title:          result.Title,
		Authors:        JoinAuthors(result.AuthorNames),
		FirstPublished: result.FirstPublishYear,
		Notice:         notice,
	}
}

// CardModel is what a card renders.
type CardModel struct {
	Key      string
	Title    string
	CoverURL string
	ISBN     string
	Hovered  bool
	Overlay  *OverlayModel
}

// Card is one search result. Details are fetched only once the card is
// entered, and only when the result carries an ISBN.
type Card struct {
	result   book.SearchResult
	coverURL string
	details  *loader.BookDetails

	mu      sync.Mutex
	hovered bool
}

func newCard(ctx context.Context, catalog Catalog, result book.SearchResult) *Card {
	coverURL := ""
	if result.CoverID != nil {
		coverURL = catalog.CoverURL(*result.CoverID, openlibrary.CoverLarge)
	}
	return &Card{
		result:   result,
		coverURL: coverURL,
		details:  loader.NewBookDetails(ctx, catalog),
	}
}

func (c *Card) Result() book.SearchResult {
	return c.result
}

// Enter marks the card hovered and starts the details lookup for its first
// ISBN. Re-entering after a successful lookup does not fetch again.
func (c *Card) Enter() {
	c.mu.Lock()
	c.hovered = true
	c.mu.Unlock()

	if isbn, ok := c.result.FirstISBN(); ok {
		c.details.Load(isbn)
	}
}

// Leave hides the overlay. A resolved lookup is kept for the next Enter; a
// failed one is cleared so the next Enter fetches again.
func (c *Card) Leave() {
	c.mu.Lock()
	c.hovered = false
	c.mu.Unlock()

	if st := c.details.State(); st.Error != "" {
		c.details.Reset()
	}
}

func (c *Card) Hovered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// Wait blocks until the details lookup, if any, has settled.
func (c *Card) Wait(ctx context.Context) error {
	_, err := c.details.Wait(ctx)
	return err
}

func (c *Card) Model() CardModel {
	isbn, _ := c.result.FirstISBN()
	m := CardModel{
		Key:      c.result.Key,
		Title:    c.result.Title,
		CoverURL: c.coverURL,
		ISBN:     isbn,
		Hovered:  c.Hovered(),
	}
	if m.Hovered {
		overlay := BuildOverlay(c.result, c.coverURL, c.details.State())
		m.Overlay = &overlay
	}
	return m
}

func (c *Card) Close() {
	c.details.Close()
}
