// Package checkout turns an in-progress cart into a recorded sale and hands
// back the rendered receipt.
package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/varuna-collections/pos-api/internal/cart"
	"github.com/varuna-collections/pos-api/internal/common"
	"github.com/varuna-collections/pos-api/internal/ledger"
	"github.com/varuna-collections/pos-api/internal/receipt"
)

// Handler wires checkout to HTTP.
type Handler struct {
	Ledger    *ledger.Service
	Formatter receipt.Formatter
	Validate  *validator.Validate
}

// Confirm records the sale. The phone check is left to the ledger so its
// MISSING_PHONE error code reaches the operator intact.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	if h.Ledger == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "ledger not configured", nil)
		return
	}
	var payload struct {
		CartID        string `json:"cartId" validate:"required"`
		Phone         string `json:"phone"`
		PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash qr"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "cartId and a paymentMethod of cash or qr are required", nil)
			return
		}
	}

	sale, err := h.Ledger.RecordSale(r.Context(), payload.CartID, payload.Phone, ledger.PaymentMethod(payload.PaymentMethod))
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "cart not found", nil)
			return
		}
		common.WriteError(w, err)
		return
	}

	text := h.Formatter.Format(sale)
	common.JSONData(w, http.StatusCreated, map[string]any{
		"sale":      sale,
		"receipt":   text,
		"shareLink": receipt.ShareLink(text, sale.Phone),
	})
}
