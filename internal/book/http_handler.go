package book

import (
	"errors"
	"net/http"
	"strings"

	"bookview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the JSON API routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/books/{isbn}", h.GetByISBN)
	mux.HandleFunc("GET /api/search", h.Search)
}

// GetByISBN handles GET /api/books/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.PathValue("isbn"))
	if errs := ValidateStruct(ISBNRequest{ISBN: isbn}); errs != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ISBN", toDetails(errs))
		return
	}

	details, err := h.service.Lookup(r.Context(), isbn)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrUnavailable):
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Failed to load book", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccess(w, r, details, nil)
}

// Search handles GET /api/search?title=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if errs := ValidateStruct(SearchRequest{Title: title}); errs != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search", toDetails(errs))
		return
	}

	results := h.service.SearchBooksByTitle(r.Context(), title)
	httpx.JSONSuccess(w, r, results, map[string]interface{}{
		"count": len(results),
	})
}

func toDetails(errs []ValidationError) []httpx.ErrorDetail {
	details := make([]httpx.ErrorDetail, len(errs))
	for i, e := range errs {
		details[i] = httpx.ErrorDetail{Field: e.Field, Message: e.Message}
	}
	return details
}
