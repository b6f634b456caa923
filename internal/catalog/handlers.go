package catalog

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/varuna-collections/pos-api/internal/common"
)

// Handler wires the catalog store to HTTP.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

// Get returns the sorted catalog snapshot.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog store not configured", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{"categories": h.Store.Snapshot()})
}

// AddCategory creates a new empty category.
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "name is required", nil)
			return
		}
	}
	if err := h.Store.AddCategory(r.Context(), payload.Name); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, map[string]any{"name": NormalizeName(payload.Name), "categories": h.Store.Snapshot()})
}

// RemoveCategory deletes a category and all its rates.
func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if err := h.Store.RemoveCategory(r.Context(), name); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{"categories": h.Store.Snapshot()})
}

// AddRate appends a rate to a category. A duplicate rate still lands but the
// response carries a DUPLICATE_RATE warning.
func (h *Handler) AddRate(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	var payload struct {
		Rate int `json:"rate" validate:"required,gt=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidRate, "rate must be a positive integer", nil)
			return
		}
	}
	duplicate, err := h.Store.AddRate(r.Context(), name, payload.Rate)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	body := map[string]any{"category": NormalizeName(name), "rate": payload.Rate}
	if duplicate {
		common.JSONDataWarning(w, http.StatusCreated, body, common.Warning{
			Code:    common.CodeDuplicateRate,
			Message: "rate already exists in this category",
		})
		return
	}
	common.JSONData(w, http.StatusCreated, body)
}

// RemoveRate removes a rate; the category goes with it when the last rate is
// removed.
func (h *Handler) RemoveRate(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	rate, err := strconv.Atoi(chi.URLParam(r, "rate"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeInvalidRate, "rate must be an integer", nil)
		return
	}
	if err := h.Store.RemoveRate(r.Context(), name, rate); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{"categories": h.Store.Snapshot()})
}

// pathParam decodes a URL parameter; category names like "t-shirt" pass
// through unchanged, escaped names are unescaped.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
