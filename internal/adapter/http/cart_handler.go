package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type CartHandler struct {
	cart     interfaces.CartService
	checkout interfaces.CheckoutService
	logger   logger.Logger
}

func NewCartHandler(cart interfaces.CartService, checkout interfaces.CheckoutService, lgr logger.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		checkout: checkout,
		logger:   lgr,
	}
}

type AddLineRequest struct {
	BaseProductID *uuid.UUID         `json:"base_product_id,omitempty"`
	DisplayName   string             `json:"display_name"`
	Size          string             `json:"size"`
	CrustStyle    string             `json:"crust_style"`
	CrustEdge     string             `json:"crust_edge"`
	Quantity      int                `json:"quantity"`
	Selections    []SelectionRequest `json:"selections"`
}

type SelectionRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Kind         string    `json:"kind"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	ID            uuid.UUID          `json:"id"`
	BaseProductID *uuid.UUID         `json:"base_product_id,omitempty"`
	DisplayName   string             `json:"display_name"`
	Size          string             `json:"size"`
	CrustStyle    string             `json:"crust_style"`
	CrustEdge     string             `json:"crust_edge"`
	Quantity      int                `json:"quantity"`
	UnitPrice     string             `json:"unit_price"`
	Subtotal      string             `json:"subtotal"`
	Modifiers     []ModifierResponse `json:"modifiers,omitempty"`
}

type ModifierResponse struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Kind         string    `json:"kind"`
	ExtraCharge  string    `json:"extra_charge"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

// HandleCart serves GET /cart (list) and DELETE /cart (clear).
func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		lines, err := h.cart.ListLines(r.Context(), userID)
		if err != nil {
			h.logger.Error("cart_list_failed", "Failed to list cart", "", nil, err)
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toCartResponse(lines))

	case http.MethodDelete:
		if err := h.cart.Clear(r.Context(), userID); err != nil {
			h.logger.Error("cart_clear_failed", "Failed to clear cart", "", nil, err)
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleLines serves POST /cart/lines.
func (h *CartHandler) HandleLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := userFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := interfaces.AddLineCommand{
		BaseProductID: req.BaseProductID,
		DisplayName:   strings.TrimSpace(req.DisplayName),
		Size:          req.Size,
		CrustStyle:    req.CrustStyle,
		CrustEdge:     req.CrustEdge,
		Quantity:      req.Quantity,
	}
	for _, sel := range req.Selections {
		cmd.Selections = append(cmd.Selections, interfaces.SelectionCommand{
			IngredientID: sel.IngredientID,
			Kind:         sel.Kind,
		})
	}

	line, err := h.cart.AddLine(r.Context(), userID, cmd)
	if err != nil {
		if strings.Contains(err.Error(), "invalid build") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("cart_add_failed", "Failed to add cart line", "", nil, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toLineResponse(line))
}

// HandleLine serves POST /cart/lines/{id}/quantity and DELETE /cart/lines/{id}.
func (h *CartHandler) HandleLine(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromContext(r.Context()); !ok {
		respondDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/cart/lines/")
	quantityOp := strings.HasSuffix(rest, "/quantity")
	lineID, err := uuid.Parse(strings.TrimSuffix(rest, "/quantity"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart line id")
		return
	}

	switch {
	case r.Method == http.MethodPost && quantityOp:
		var req QuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.cart.UpdateQuantity(r.Context(), lineID, req.Quantity); err != nil {
			h.logger.Error("cart_quantity_failed", "Failed to update quantity", "", nil, err)
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodDelete && !quantityOp:
		if err := h.cart.RemoveLine(r.Context(), lineID); err != nil {
			h.logger.Error("cart_remove_failed", "Failed to remove cart line", "", nil, err)
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
	Total   string    `json:"total"`
}

// HandleCheckout serves POST /checkout.
func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := userFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), userID)
	if err != nil {
		h.logger.Error("checkout_failed", "Checkout failed", "", nil, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   order.Total.StringFixed(2),
	})
}

func toCartResponse(lines []*domain.CartLine) CartResponse {
	resp := CartResponse{Lines: make([]CartLineResponse, 0, len(lines))}
	total := decimal.Zero
	for _, line := range lines {
		resp.Lines = append(resp.Lines, toLineResponse(line))
		total = total.Add(line.Subtotal)
	}
	resp.Total = total.StringFixed(2)
	return resp
}

func toLineResponse(line *domain.CartLine) CartLineResponse {
	resp := CartLineResponse{
		ID:            line.ID,
		BaseProductID: line.BaseProductID,
		DisplayName:   line.DisplayName,
		Size:          string(line.Size),
		CrustStyle:    line.CrustStyle,
		CrustEdge:     line.CrustEdge,
		Quantity:      line.Quantity,
		UnitPrice:     line.UnitPrice.StringFixed(2),
		Subtotal:      line.Subtotal.StringFixed(2),
	}
	for _, mod := range line.Modifiers {
		resp.Modifiers = append(resp.Modifiers, ModifierResponse{
			IngredientID: mod.IngredientID,
			Kind:         string(mod.Kind),
			ExtraCharge:  mod.ExtraCharge.StringFixed(2),
		})
	}
	return resp
}
