package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookview/internal/platform/openlibrary"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestService_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockCatalog := NewMockCatalog(ctrl)
	service := NewService(mockCatalog)
	ctx := context.Background()

	t.Run("reshapes entry", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "9783442236862").Return(&openlibrary.DetailsEntry{
			ThumbnailURL: "https://covers.openlibrary.org/b/id/123-S.jpg",
			Details: openlibrary.Details{
				Title:          "Snow Crash",
				Authors:        []openlibrary.Author{{Name: "Neal Stephenson"}, {Name: "Z Author"}, {Name: "A Author"}},
				PublishDate:    "1995",
				PhysicalFormat: "Paperback",
				NumberOfPages:  intPtr(480),
				Weight:         strPtr("1.2 pounds"),
			},
		}, nil)

		got, err := service.Lookup(ctx, "9783442236862")
		require.NoError(t, err)
		assert.Equal(t, BookDetails{
			CoverURL:       "https://covers.openlibrary.org/b/id/123-L.jpg",
			Title:          "Snow Crash",
			Authors:        []string{"Neal Stephenson", "Z Author", "A Author"},
			PublishDate:    "1995",
			PhysicalFormat: "Paperback",
			NumberOfPages:  intPtr(480),
			Weight:         strPtr("1.2 pounds"),
		}, got)
	})

	t.Run("defaults for missing fields", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "1").Return(&openlibrary.DetailsEntry{}, nil)

		got, err := service.Lookup(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "", got.CoverURL)
		assert.Equal(t, "Unknown Title", got.Title)
		assert.Equal(t, "Unknown", got.PublishDate)
		assert.Equal(t, "Unknown", got.PhysicalFormat)
		assert.NotNil(t, got.Authors)
		assert.Empty(t, got.Authors)
		assert.Nil(t, got.NumberOfPages)
		assert.Nil(t, got.Weight)
	})

	t.Run("no record", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "2").Return(nil, openlibrary.ErrNoRecord)

		_, err := service.Lookup(ctx, "2")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("transport failure", func(t *testing.T) {
		upstream := &openlibrary.StatusError{Code: 503}
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "3").Return(nil, upstream)

		_, err := service.Lookup(ctx, "3")
		assert.ErrorIs(t, err, ErrUnavailable)
		var statusErr *openlibrary.StatusError
		assert.True(t, errors.As(err, &statusErr))
	})
}

func TestService_FetchBookByISBN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockCatalog := NewMockCatalog(ctrl)
	service := NewService(mockCatalog)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "1").Return(&openlibrary.DetailsEntry{
			Details: openlibrary.Details{Title: "Found"},
		}, nil)

		got := service.FetchBookByISBN(ctx, "1")
		require.NotNil(t, got)
		assert.Equal(t, "Found", got.Title)
	})

	t.Run("not found is nil, not an error", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "2").Return(nil, openlibrary.ErrNoRecord)
		assert.Nil(t, service.FetchBookByISBN(ctx, "2"))
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		mockCatalog.EXPECT().BookByISBN(gomock.Any(), "3").Return(nil, errors.New("connection refused"))
		assert.Nil(t, service.FetchBookByISBN(ctx, "3"))
	})
}

func TestService_SearchBooksByTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockCatalog := NewMockCatalog(ctrl)
	service := NewService(mockCatalog)
	ctx := context.Background()

	t.Run("keeps upstream order and optional fields", func(t *testing.T) {
		mockCatalog.EXPECT().SearchByTitle(gomock.Any(), "snow").Return(&openlibrary.SearchResponse{
			NumFound: 2,
			Docs: []openlibrary.SearchDoc{
				{Key: "/works/1", Title: "Snow Crash", AuthorNames: []string{"Neal Stephenson"}, CoverID: intPtr(123), ISBN: []string{"9783442236862"}},
				{Key: "/works/2", Title: "Snowfall"},
			},
		}, nil)

		got := service.SearchBooksByTitle(ctx, "snow")
		require.Len(t, got, 2)
		assert.Equal(t, "Snow Crash", got[0].Title)
		assert.Equal(t, "Snowfall", got[1].Title)
		assert.Nil(t, got[1].CoverID)
		isbn, ok := got[0].FirstISBN()
		assert.True(t, ok)
		assert.Equal(t, "9783442236862", isbn)
		_, ok = got[1].FirstISBN()
		assert.False(t, ok)
	})

	t.Run("zero hits", func(t *testing.T) {
		mockCatalog.EXPECT().SearchByTitle(gomock.Any(), "zzz").Return(&openlibrary.SearchResponse{Docs: []openlibrary.SearchDoc{}}, nil)

		got := service.SearchBooksByTitle(ctx, "zzz")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("failure yields empty", func(t *testing.T) {
		mockCatalog.EXPECT().SearchByTitle(gomock.Any(), "err").Return(nil, &openlibrary.StatusError{Code: 500})

		got := service.SearchBooksByTitle(ctx, "err")
		assert.NotNil(t, got)
		assert.Empty(t, got)

		mockCatalog.EXPECT().SearchByTitle(gomock.Any(), "err").Return(nil, &openlibrary.StatusError{Code: 500})
		_, err := service.Search(ctx, "err")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestService_CoverURL(t *testing.T) {
	service := NewService(openlibrary.NewClient(openlibrary.Options{CoverBaseURL: "https://covers.example.org/b/id"}))

	assert.Equal(t, "https://covers.example.org/b/id/12345-L.jpg", service.CoverURL(12345, ""))
	assert.Equal(t, service.CoverURL(12345, ""), service.CoverURL(12345, openlibrary.CoverLarge))
}

func TestFromEntry_ThumbnailSuffix(t *testing.T) {
	tests := []struct {
		name      string
		thumbnail string
		want      string
	}{
		{name: "small upgraded", thumbnail: "https://covers.openlibrary.org/b/id/123-S.jpg", want: "https://covers.openlibrary.org/b/id/123-L.jpg"},
		{name: "medium kept", thumbnail: "https://covers.openlibrary.org/b/id/123-M.jpg", want: "https://covers.openlibrary.org/b/id/123-M.jpg"},
		{name: "absent", thumbnail: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromEntry(openlibrary.DetailsEntry{ThumbnailURL: tt.thumbnail})
			assert.Equal(t, tt.want, got.CoverURL)
		})
	}
}

func TestBookDetails_OptionalFields(t *testing.T) {
	assert.Equal(t, 0, BookDetails{}.Pages())
	assert.Empty(t, BookDetails{}.WeightText())

	d := BookDetails{NumberOfPages: intPtr(480), Weight: strPtr("1.2 pounds")}
	assert.Equal(t, 480, d.Pages())
	assert.Equal(t, "1.2 pounds", d.WeightText())
}
