// Package rest exposes the cart operations over HTTP. Request and
// response bodies use the persisted wire names (id, nombre, precio,
// imagen, cantidad) so the demo UI and the stored cart agree.
package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tienda-kame/storefront/internal/cart/app"
	"github.com/tienda-kame/storefront/internal/cart/domain"
	"github.com/tienda-kame/storefront/internal/rest"
	"github.com/tienda-kame/storefront/internal/view"
)

type itemResponse struct {
	ID       int64   `json:"id"`
	Nombre   string  `json:"nombre"`
	Precio   float64 `json:"precio"`
	Imagen   string  `json:"imagen"`
	Cantidad int64   `json:"cantidad"`
	Subtotal float64 `json:"subtotal"`
}

type cartResponse struct {
	Items         []itemResponse `json:"items"`
	CantidadTotal int64          `json:"cantidad_total"`
	Total         float64        `json:"total"`
}

func toResponse(s domain.Summary) cartResponse {
	items := make([]itemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, itemResponse{
			ID:       it.ID,
			Nombre:   it.Name,
			Precio:   it.Price.Decimal(),
			Imagen:   it.Image,
			Cantidad: it.Quantity,
			Subtotal: (it.Price * domain.Money(it.Quantity)).Decimal(),
		})
	}
	return cartResponse{
		Items:         items,
		CantidadTotal: s.TotalQuantity,
		Total:         s.TotalValue.Decimal(),
	}
}

type Handler struct {
	manager  *app.Manager
	selector *view.Selector
}

func NewHandler(manager *app.Manager, selector *view.Selector) *Handler {
	return &Handler{manager: manager, selector: selector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/cart", h.get)
	r.Post("/api/cart/items", h.add)
	r.Put("/api/cart/items/{id}", h.setQuantity)
	r.Patch("/api/cart/items/{id}", h.changeQuantity)
	r.Delete("/api/cart/items/{id}", h.remove)
	r.Delete("/api/cart", h.clear)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.manager.Summary(r.Context())
	if err != nil {
		rest.Error(w, err)
		return
	}
	rest.JSON(w, http.StatusOK, toResponse(summary))
}

// add puts a product in the cart. When cantidad is omitted the card's
// selector counter is used and reset afterwards.
func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64  `json:"id"`
		Cantidad *int64 `json:"cantidad"`
	}
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	fromSelector := req.Cantidad == nil
	qty := int64(0)
	if fromSelector {
		qty = h.selector.Current(req.ID)
	} else {
		qty = *req.Cantidad
	}

	if err := h.manager.Add(r.Context(), req.ID, qty); err != nil {
		rest.Error(w, err)
		return
	}
	if fromSelector {
		h.selector.Reset(req.ID)
	}
	h.respondCart(w, r, http.StatusCreated)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Cantidad int64 `json:"cantidad"`
	}
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.manager.SetQuantity(r.Context(), id, req.Cantidad); err != nil {
		rest.Error(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK)
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.manager.ChangeQuantity(r.Context(), id, req.Delta); err != nil {
		rest.Error(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	if err := h.manager.Remove(r.Context(), id); err != nil {
		rest.Error(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Clear(r.Context()); err != nil {
		rest.Error(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK)
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, status int) {
	summary, err := h.manager.Summary(r.Context())
	if err != nil {
		rest.Error(w, err)
		return
	}
	rest.JSON(w, status, toResponse(summary))
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
