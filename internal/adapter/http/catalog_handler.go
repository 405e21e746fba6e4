package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/adapter/logger"
	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type CatalogHandler struct {
	catalog interfaces.CatalogService
	logger  logger.Logger
}

func NewCatalogHandler(catalog interfaces.CatalogService, lgr logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  lgr,
	}
}

type IngredientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ExtraCharge string    `json:"extra_charge"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Tag         *string   `json:"tag,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Status          string              `json:"status"`
	Total           string              `json:"total"`
	DeliveryAddress string              `json:"delivery_address"`
	Channel         string              `json:"channel"`
	Lines           []OrderLineResponse `json:"lines"`
}

type OrderLineResponse struct {
	ID          uuid.UUID          `json:"id"`
	DisplayName string             `json:"display_name"`
	Size        string             `json:"size"`
	Quantity    int                `json:"quantity"`
	UnitPrice   string             `json:"unit_price"`
	Subtotal    string             `json:"subtotal"`
	Modifiers   []ModifierResponse `json:"modifiers,omitempty"`
}

// HandleIngredients serves GET /menu/ingredients.
func (h *CatalogHandler) HandleIngredients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ingredients, err := h.catalog.ListIngredients(r.Context())
	if err != nil {
		h.logger.Error("ingredient_list_failed", "Failed to list ingredients", "", nil, err)
		respondDomainError(w, err)
		return
	}

	resp := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		resp = append(resp, IngredientResponse{
			ID:          ing.ID,
			Name:        ing.Name,
			Category:    string(ing.Category),
			ExtraCharge: ing.ExtraCharge.StringFixed(2),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleProducts serves GET /menu/products.
func (h *CatalogHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("product_list_failed", "Failed to list products", "", nil, err)
		respondDomainError(w, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Tag:         p.Tag,
			ImageURL:    p.ImageURL,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleOrders serves GET /orders and GET /orders/{id}.
func (h *CatalogHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := userFromContext(r.Context())
	if !ok {
		respondDomainError(w, domain.ErrNotAuthenticated)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/orders"), "/")
	if rest == "" {
		orders, err := h.catalog.ListOrders(r.Context(), userID)
		if err != nil {
			h.logger.Error("order_list_failed", "Failed to list orders", "", nil, err)
			respondDomainError(w, err)
			return
		}
		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}

	orderID, err := uuid.Parse(rest)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.catalog.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		Status:          string(order.Status),
		Total:           order.Total.StringFixed(2),
		DeliveryAddress: order.DeliveryAddress,
		Channel:         order.Channel,
		Lines:           make([]OrderLineResponse, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		lr := OrderLineResponse{
			ID:          line.ID,
			DisplayName: line.DisplayName,
			Size:        string(line.Size),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Subtotal:    line.Subtotal.StringFixed(2),
		}
		for _, mod := range line.Modifiers {
			lr.Modifiers = append(lr.Modifiers, ModifierResponse{
				IngredientID: mod.IngredientID,
				Kind:         string(mod.Kind),
				ExtraCharge:  mod.ExtraCharge.StringFixed(2),
			})
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp
}
