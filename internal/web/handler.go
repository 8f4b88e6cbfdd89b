package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bookview/internal/book"
	"bookview/internal/loader"
	"bookview/internal/logger"
	"bookview/internal/platform/openlibrary"
	"bookview/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Handler serves the HTML pages and the hover overlay fragment.
type Handler struct {
	catalog     view.Catalog
	defaultISBN string
	tmpl        *template.Template
}

func NewHandler(catalog view.Catalog, defaultISBN string) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	return &Handler{
		catalog:     catalog,
		defaultISBN: defaultISBN,
		tmpl:        tmpl,
	}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /books/{isbn}", h.Book)
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /overlay/{isbn}", h.Overlay)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
}

type pageData struct {
	Display *view.DisplayModel
	Search  view.SearchModel
	Cards   []cardData
}

type cardData struct {
	view.CardModel
	OverlayURL string
	Inline     *view.OverlayModel
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	display := h.display(r, h.defaultISBN)
	h.render(w, r, http.StatusOK, "page", pageData{Display: &display})
}

// Book handles GET /books/{isbn}
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.PathValue("isbn"))
	if errs := book.ValidateStruct(book.ISBNRequest{ISBN: isbn}); errs != nil {
		display := view.DisplayModel{Error: view.TextNotFound}
		h.render(w, r, http.StatusBadRequest, "page", pageData{Display: &display})
		return
	}
	display := h.display(r, isbn)
	h.render(w, r, http.StatusOK, "page", pageData{Display: &display})
}

// Search handles GET /search?title=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sv := view.NewSearchView(r.Context(), h.catalog)
	defer sv.Close()

	title := r.URL.Query().Get("title")
	if errs := book.ValidateStruct(book.SearchRequest{Title: strings.TrimSpace(title)}); errs == nil {
		sv.Submit(title)
	}

	data := pageData{Search: sv.Model()}
	for _, c := range sv.Cards() {
		data.Cards = append(data.Cards, h.card(c))
	}
	h.render(w, r, http.StatusOK, "page", data)
}

// Overlay handles GET /overlay/{isbn}. The query carries the search result
// fields used for the reduced view when the lookup fails.
func (h *Handler) Overlay(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.PathValue("isbn"))
	if errs := book.ValidateStruct(book.ISBNRequest{ISBN: isbn}); errs != nil {
		http.Error(w, "invalid isbn", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	result := book.SearchResult{
		Title:       q.Get("title"),
		AuthorNames: q["author"],
		ISBN:        []string{isbn},
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		result.FirstPublishYear = &year
	}
	coverURL := ""
	if id, err := strconv.Atoi(q.Get("cover")); err == nil {
		result.CoverID = &id
		coverURL = h.catalog.CoverURL(id, openlibrary.CoverLarge)
	}

	details := loader.NewBookDetails(r.Context(), h.catalog)
	defer details.Close()
	details.Load(isbn)
	st, err := details.Wait(r.Context())
	if err != nil {
		logger.For(r.Context()).WithError(err).WithField("isbn", isbn).Debug("Overlay request ended before lookup")
		return
	}

	h.render(w, r, http.StatusOK, "overlay", view.BuildOverlay(result, coverURL, st))
}

func (h *Handler) display(r *http.Request, isbn string) view.DisplayModel {
	d := view.NewDisplay(r.Context(), h.catalog, isbn)
	defer d.Close()
	m, _ := d.Wait(r.Context())
	return m
}

func (h *Handler) card(c *view.Card) cardData {
	m := c.Model()
	data := cardData{CardModel: m}

	res := c.Result()
	if m.ISBN == "" {
		overlay := view.BuildOverlay(res, m.CoverURL, loader.State[book.BookDetails]{})
		data.Inline = &overlay
		return data
	}

	q := url.Values{}
	q.Set("title", res.Title)
	for _, a := range res.AuthorNames {
		q.Add("author", a)
	}
	if res.FirstPublishYear != nil {
		q.Set("year", strconv.Itoa(*res.FirstPublishYear))
	}
	if res.CoverID != nil {
		q.Set("cover", strconv.Itoa(*res.CoverID))
	}
	data.OverlayURL = "/overlay/" + url.PathEscape(m.ISBN) + "?" + q.Encode()
	return data
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.For(r.Context()).WithError(err).WithField("template", name).Error("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
