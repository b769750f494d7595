// Package rest exposes the session gate: login, current session, and
// logout (which also empties the cart, per the gate's contract with the
// cart manager).
package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tienda-kame/storefront/internal/rest"
	"github.com/tienda-kame/storefront/internal/session/app"
	"github.com/tienda-kame/storefront/internal/session/domain"
)

type sessionResponse struct {
	ID     string    `json:"id"`
	Email  string    `json:"email"`
	Nombre string    `json:"nombre"`
	Inicio time.Time `json:"inicio"`
}

func toResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		ID:     s.ID,
		Email:  s.Identity,
		Nombre: s.DisplayName,
		Inicio: s.StartedAt,
	}
}

type Handler struct {
	gate *app.Gate
}

func NewHandler(gate *app.Gate) *Handler {
	return &Handler{gate: gate}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/session", h.start)
	r.Get("/api/session", h.current)
	r.Delete("/api/session", h.end)
}

// start records a login. Credential checking happens upstream; this
// endpoint only requires a non-empty email.
func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email"`
		Nombre string `json:"nombre"`
	}
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Email == "" {
		rest.JSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}
	if req.Nombre == "" {
		// Display name defaults to the mailbox part of the email.
		req.Nombre = strings.SplitN(req.Email, "@", 2)[0]
	}

	s, err := h.gate.Start(r.Context(), req.Email, req.Nombre)
	if err != nil {
		rest.Error(w, err)
		return
	}
	rest.JSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	s, ok := h.gate.Current(r.Context())
	if !ok {
		rest.JSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	rest.JSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) end(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.End(r.Context()); err != nil {
		rest.Error(w, err)
		return
	}
	rest.JSON(w, http.StatusNoContent, nil)
}
