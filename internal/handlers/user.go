package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/middleware"
	"github.com/staynest/staynest-backend/internal/services"
)

// Favourites/booking mutation request
type PropertyIDRequest struct {
	PropertyID string `json:"propertyId"`
}

// UserHandler serves the per-user favourites and bookings routes. All of them
// sit behind the auth gate.
type UserHandler struct {
	ownership *services.OwnershipService
}

func NewUserHandler(ownership *services.OwnershipService) *UserHandler {
	return &UserHandler{ownership: ownership}
}

// AddToFavourites handles PATCH /api/user/addToFav.
func (h *UserHandler) AddToFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PropertyIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	user, err := h.ownership.AddFavourite(r.Context(), userID, req.PropertyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Property added to favourites successfully",
		"user":    user,
	})
}

// RemoveFromFavourites handles PATCH /api/user/removeFromFav.
func (h *UserHandler) RemoveFromFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PropertyIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	user, err := h.ownership.RemoveFavourite(r.Context(), userID, req.PropertyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Property removed from favourites",
		"user":    user,
	})
}

// GetFavourites handles GET /api/user/get-user-fav.
func (h *UserHandler) GetFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	properties, err := h.ownership.ListFavourites(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

// BookProperty handles POST /api/user/booking.
func (h *UserHandler) BookProperty(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req PropertyIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	if err := h.ownership.BookProperty(r.Context(), userID, req.PropertyID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Property booked successfully",
	})
}

// GetBookedProperties handles GET /api/user/get-booked-property.
func (h *UserHandler) GetBookedProperties(w http.ResponseWriter, r *http.Request) {
	userID, err := authedUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	properties, err := h.ownership.ListBookings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

// authedUserID returns the user id the auth gate attached to the request.
func authedUserID(r *http.Request) (primitive.ObjectID, error) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return primitive.NilObjectID, httperr.Unauthorized("You are not authenticated")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, httperr.Forbidden("Invalid or expired token")
	}
	return userID, nil
}
