package api

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"

	"github.com/go-chi/chi/v5"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type productHandler struct {
	catalog catalog.Store
	logger  logger.Logger
}

// Search handles GET /products/search. q is matched as one substring against
// name, description, brand, category and features; brand is a substring match.
func (h *productHandler) Search(w http.ResponseWriter, r *http.Request) {
	f, err := parseSearchParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.catalog.Query(r.Context(), f)
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

func parseSearchParams(r *http.Request) (models.CatalogFilter, error) {
	q := r.URL.Query()
	f := models.CatalogFilter{
		Category:      strings.TrimSpace(q.Get("category")),
		BrandContains: strings.TrimSpace(q.Get("brand")),
		Limit:         defaultSearchLimit,
	}
	f.Keyword = strings.TrimSpace(q.Get("q"))

	for _, p := range []struct {
		name string
		dst  **float64
	}{{"min_price", &f.PriceMin}, {"max_price", &f.PriceMax}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return f, errors.NewInvalidSearchParamsError(p.name, "must be a non-negative number")
		}
		*p.dst = models.Float(v)
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return f, errors.NewInvalidSearchParamsError("min_price", "must not exceed max_price")
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return f, errors.NewInvalidSearchParamsError("limit", "must be a positive integer")
		}
		if n > maxSearchLimit {
			n = maxSearchLimit
		}
		f.Limit = n
	}
	return f, nil
}

func (h *productHandler) Categories(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *productHandler) Brands(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.Brands(r.Context())
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *productHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := catalog.Featured(r.Context(), h.catalog)
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

func (h *productHandler) Trending(w http.ResponseWriter, r *http.Request) {
	products, err := catalog.Trending(r.Context(), h.catalog)
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, nonNil(products))
}

func (h *productHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, errors.NewInvalidSearchParamsError("id", "must be a positive integer"))
		return
	}

	p, err := h.catalog.Product(r.Context(), id)
	if stderrors.Is(err, catalog.ErrProductNotFound) {
		writeError(w, errors.NewProductNotFoundError(id))
		return
	}
	if err != nil {
		writeError(w, catalogError(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
