package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/services"
	"github.com/staynest/staynest-backend/internal/store"
)

// Property creation request
type CreatePropertyRequest struct {
	Title        string               `json:"title"`
	Desc         string               `json:"desc"`
	Img          string               `json:"img,omitempty"`
	Rating       float64              `json:"rating,omitempty"`
	Price        *models.Price        `json:"price"`
	Location     string               `json:"location,omitempty"`
	Availability *models.Availability `json:"availability,omitempty"`
}

// Property partial-update request
type UpdatePropertyRequest struct {
	Img    *string  `json:"img,omitempty"`
	Title  *string  `json:"title,omitempty"`
	Desc   *string  `json:"desc,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

type PropertyHandler struct {
	listings *services.ListingService
}

func NewPropertyHandler(listings *services.ListingService) *PropertyHandler {
	return &PropertyHandler{listings: listings}
}

// Create handles POST /api/property/create-property.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	property, err := h.listings.Create(r.Context(), services.CreateInput{
		Title:        req.Title,
		Desc:         req.Desc,
		Img:          req.Img,
		Rating:       req.Rating,
		Price:        req.Price,
		Location:     req.Location,
		Availability: req.Availability,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Property created successfully",
		"property": property,
	})
}

// GetByID handles GET /api/property/get-property/{id}.
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	property, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Property fetched successfully",
		"property": property,
	})
}

// List handles GET /api/property/get-property — the pagination/sort contract
// (?limit=&sortBy=&order=).
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit <= 0 {
		limit = 10
	}

	properties, total, err := h.listings.List(r.Context(), store.ListOptions{
		Limit:  limit,
		SortBy: sortField(q.Get("sortBy")),
		Desc:   q.Get("order") == "desc",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Properties fetched successfully",
		"properties": properties,
		"pagination": map[string]interface{}{
			"total": total,
			"limit": limit,
		},
	})
}

// Search handles GET /api/property/search-property — the location/date filter
// contract (?location=&checkIn=&checkOut=).
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.SearchFilter{Location: q.Get("location")}

	checkIn, err := parseDate(q.Get("checkIn"))
	if err != nil {
		writeError(w, httperr.BadRequest("Invalid checkIn date"))
		return
	}
	filter.CheckIn = checkIn

	checkOut, err := parseDate(q.Get("checkOut"))
	if err != nil {
		writeError(w, httperr.BadRequest("Invalid checkOut date"))
		return
	}
	filter.CheckOut = checkOut

	properties, total, err := h.listings.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"properties": properties,
		"total":      total,
	})
}

// Update handles PATCH /api/property/update-property/{id}.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	property, err := h.listings.Update(r.Context(), chi.URLParam(r, "id"), store.PropertyPatch{
		Img:    req.Img,
		Title:  req.Title,
		Desc:   req.Desc,
		Rating: req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Property updated successfully",
		"property": property,
	})
}

// Delete handles DELETE /api/property/delete-property/{id}.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Property deleted successfully",
	})
}

// sortField whitelists sortBy values and maps them onto document fields.
func sortField(sortBy string) string {
	switch sortBy {
	case "title", "rating", "location":
		return sortBy
	default:
		return "created_at"
	}
}

// parseDate accepts YYYY-MM-DD dates, with RFC3339 as fallback.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
