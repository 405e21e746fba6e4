package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zahub/storefront/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondDomainError maps the discriminated error kinds to user-visible
// responses. EmptyCart and NotAuthenticated get specific guidance; anything
// else is a generic retry-able failure.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "Sign in to continue")
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusConflict, "Add a Za to your cart before checking out")
	case errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
	}
}
