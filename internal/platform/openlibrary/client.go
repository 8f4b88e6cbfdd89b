package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookview/internal/logger"
	"bookview/internal/metrics"
)

const (
	DefaultBaseURL      = "https://openlibrary.org"
	DefaultCoverBaseURL = "https://covers.openlibrary.org/b/id"

	searchFields = "key,title,author_name,cover_i,isbn,first_publish_year"
)

// ErrNoRecord is returned when the details response has no entry for the requested bibkey.
var ErrNoRecord = errors.New("openlibrary: no record for bibkey")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

type Client struct {
	httpClient   *http.Client
	userAgent    string
	baseURL      string
	coverBaseURL string
}

type Options struct {
	BaseURL      string
	CoverBaseURL string
	UserAgent    string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	coverBaseURL := opts.CoverBaseURL
	if coverBaseURL == "" {
		coverBaseURL = DefaultCoverBaseURL
	}
	return &Client{
		httpClient:   httpClient,
		userAgent:    opts.UserAgent,
		baseURL:      strings.TrimRight(baseURL, "/"),
		coverBaseURL: strings.TrimRight(coverBaseURL, "/"),
	}
}

// SearchDoc matches one entry of search.json docs for the requested field subset.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	CoverID          *int     `json:"cover_i,omitempty"`
	ISBN             []string `json:"isbn,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []SearchDoc `json:"docs"`
}

type Author struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name"`
}

// Details matches the "details" object of api/books?jscmd=details
type Details struct {
	Title          string   `json:"title"`
	Authors        []Author `json:"authors"`
	PublishDate    string   `json:"publish_date"`
	PhysicalFormat string   `json:"physical_format"`
	NumberOfPages  *int     `json:"number_of_pages"`
	Weight         *string  `json:"weight"`
}

// DetailsEntry is the value stored under "ISBN:<isbn>" in the details response.
type DetailsEntry struct {
	BibKey       string  `json:"bib_key"`
	InfoURL      string  `json:"info_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Details      Details `json:"details"`
}

func BibKey(isbn string) string {
	return "ISBN:" + isbn
}

func (c *Client) BookByISBN(ctx context.Context, isbn string) (*DetailsEntry, error) {
	key := BibKey(isbn)
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&jscmd=details&format=json", c.baseURL, BibKey(url.QueryEscape(isbn)))

	var res map[string]DetailsEntry
	if err := c.get(ctx, "details", u, &res); err != nil {
		return nil, err
	}
	entry, ok := res[key]
	if !ok {
		return nil, ErrNoRecord
	}
	return &entry, nil
}

func (c *Client) SearchByTitle(ctx context.Context, title string) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?title=%s&fields=%s", c.baseURL, url.QueryEscape(title), searchFields)

	var res SearchResponse
	if err := c.get(ctx, "search", u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CoverURL builds {coverBase}/{coverID}-{size}.jpg. An empty size means large.
func (c *Client) CoverURL(coverID int, size CoverSize) string {
	if size == "" {
		size = CoverLarge
	}
	return c.coverBaseURL + "/" + strconv.Itoa(coverID) + "-" + string(size) + ".jpg"
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string, target interface{}) (err error) {
	done := logger.Track(ctx, "openlibrary "+endpoint)
	timer := metrics.UpstreamDuration.WithLabelValues(endpoint)
	start := time.Now()
	defer func() {
		timer.Observe(time.Since(start).Seconds())
		metrics.UpstreamRequests.WithLabelValues(endpoint, outcome(err)).Inc()
		done()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openlibrary %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("openlibrary %s: decoding response: %w", endpoint, err)
	}
	return nil
}

func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "status_" + strconv.Itoa(statusErr.Code)
	default:
		return "error"
	}
}
