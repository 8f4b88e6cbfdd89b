package view

import (
	"context"
	"strings"
	"sync"
)

// SearchModel is what the search view renders.
type SearchModel struct {
	Query       string
	Loading     bool
	HasSearched bool
	Cards       []CardModel
}

// ButtonLabel is the submit button text.
func (m SearchModel) ButtonLabel() string {
	if m.Loading {
		return TextSearching
	}
	return TextSearch
}

// Empty reports whether the "no results" message should show: a search has
// completed and produced nothing.
func (m SearchModel) Empty() bool {
	return !m.Loading && m.HasSearched && len(m.Cards) == 0
}

// SearchView runs title searches and holds the resulting cards.
type SearchView struct {
	ctx     context.Context
	catalog Catalog

	// OnSearch, when set, is called with every accepted query.
	OnSearch func(query string)

	mu          sync.Mutex
	query       string
	loading     bool
	hasSearched bool
	cards       []*Card
}

func NewSearchView(ctx context.Context, catalog Catalog) *SearchView {
	return &SearchView{ctx: ctx, catalog: catalog}
}

// Submit trims query and searches for it. A blank query is ignored and
// Submit returns false. Overlapping submits are not ordered: whichever search
// finishes last sets the cards.
func (s *SearchView) Submit(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	s.mu.Lock()
	s.query = query
	s.loading = true
	s.hasSearched = true
	s.mu.Unlock()

	if s.OnSearch != nil {
		s.OnSearch(query)
	}

	results := s.catalog.SearchBooksByTitle(s.ctx, query)
	cards := make([]*Card, 0, len(results))
	for _, r := range results {
		cards = append(cards, newCard(s.ctx, s.catalog, r))
	}

	s.mu.Lock()
	old := s.cards
	s.cards = cards
	s.loading = false
	s.mu.Unlock()

	for _, c := range old {
		c.Close()
	}
	return true
}

// Card returns the i-th card (zero based).
func (s *SearchView) Card(i int) (*Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.cards) {
		return nil, false
	}
	return s.cards[i], true
}

func (s *SearchView) Cards() []*Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Card(nil), s.cards...)
}

func (s *SearchView) Model() SearchModel {
	s.mu.Lock()
	m := SearchModel{
		Query:       s.query,
		Loading:     s.loading,
		HasSearched: s.hasSearched,
	}
	cards := append([]*Card(nil), s.cards...)
	s.mu.Unlock()

	m.Cards = make([]CardModel, 0, len(cards))
	for _, c := range cards {
		m.Cards = append(m.Cards, c.Model())
	}
	return m
}

func (s *SearchView) Close() {
	for _, c := range s.Cards() {
		c.Close()
	}
}
