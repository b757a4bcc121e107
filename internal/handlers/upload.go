package handlers

import (
	"net/http"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/services"
)

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadHandler uploads property images to Cloudinary. The service may be nil
// when credentials are not configured.
type UploadHandler struct {
	cloudinary *services.CloudinaryService
}

func NewUploadHandler(cloudinary *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{cloudinary: cloudinary}
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cloudinary == nil {
		writeError(w, httperr.New(http.StatusInternalServerError, "Upload service not configured"))
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, httperr.BadRequest("Failed to parse form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, httperr.BadRequest("No file provided"))
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "properties"
	}

	url, err := h.cloudinary.UploadFile(r.Context(), file, folder)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
