// Package rest exposes the catalog read surface plus the card selector
// endpoints the catalog pages use for their quantity steppers.
package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tienda-kame/storefront/internal/catalog/app"
	"github.com/tienda-kame/storefront/internal/catalog/domain"
	"github.com/tienda-kame/storefront/internal/rest"
	"github.com/tienda-kame/storefront/internal/view"
)

const defaultFeaturedPerCategory = 2

type productResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Imagen      string  `json:"imagen"`
	Categoria   string  `json:"categoria"`
	Destacado   bool    `json:"destacado"`
}

func toResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price.Decimal(),
		Imagen:      p.Image,
		Categoria:   string(p.Category),
		Destacado:   p.Featured,
	}
}

type Handler struct {
	store    *app.Store
	selector *view.Selector
}

func NewHandler(store *app.Store, selector *view.Selector) *Handler {
	return &Handler{store: store, selector: selector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.list)
	r.Get("/api/products/featured", h.featured)
	r.Get("/api/products/{id}", h.get)
	r.Get("/api/selector/{id}", h.selectorGet)
	r.Post("/api/selector/{id}/step", h.selectorStep)
}

// list retries the catalog load lazily so a failed boot-time fetch does
// not need a restart. An empty catalog after a failed load surfaces as
// 503, not as "no products exist".
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		rest.Error(w, err)
		return
	}

	out := []productResponse{}
	if raw := r.URL.Query().Get("categoria"); raw != "" {
		cat, err := domain.ParseCategory(raw)
		if err != nil {
			rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		for p := range h.store.ByCategory(cat) {
			out = append(out, toResponse(p))
		}
	} else {
		for p := range h.store.All() {
			out = append(out, toResponse(p))
		}
	}
	rest.JSON(w, http.StatusOK, out)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		rest.Error(w, err)
		return
	}

	n := defaultFeaturedPerCategory
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	out := []productResponse{}
	for _, p := range h.store.FeaturedTopN(n) {
		out = append(out, toResponse(p))
	}
	rest.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		rest.Error(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	p, err := h.store.ByID(id)
	if err != nil {
		rest.Error(w, err)
		return
	}
	rest.JSON(w, http.StatusOK, toResponse(p))
}

type selectorResponse struct {
	ID       int64 `json:"id"`
	Cantidad int64 `json:"cantidad"`
}

func (h *Handler) selectorGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	rest.JSON(w, http.StatusOK, selectorResponse{ID: id, Cantidad: h.selector.Current(id)})
}

func (h *Handler) selectorStep(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rest.JSON(w, http.StatusOK, selectorResponse{ID: id, Cantidad: h.selector.Step(id, req.Delta)})
}
