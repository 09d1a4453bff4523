package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/cardlink/synergy-crm/internal/infra/queue"
)

// ImageUploader stores a card image and returns its object key.
type ImageUploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// ScanHandler receives a business-card image, parks it in object storage
// and enqueues the scan job. Extraction happens asynchronously in the
// queue worker; the client polls the contact list for the result.
type ScanHandler struct {
	Images   ImageUploader
	Producer queue.ScanProducerInterface
}

func NewScanHandler(images ImageUploader, producer queue.ScanProducerInterface) *ScanHandler {
	return &ScanHandler{Images: images, Producer: producer}
}

const maxCardImageBytes = 10 << 20 // 10 MB

type scanResponse struct {
	Success bool   `json:"success"`
	ScanID  string `json:"scan_id"`
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCardImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCardImageBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "could not read image"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	scanID := uuid.New().String()

	key, err := h.Images.Upload(r.Context(), scanID+imageExtension(contentType), data, contentType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to store image"})
		return
	}

	if err := h.Producer.PublishScan(r.Context(), queue.ScanPayload{ScanID: scanID, ImageKey: key}); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to enqueue scan"})
		return
	}

	writeJSON(w, http.StatusAccepted, scanResponse{Success: true, ScanID: scanID})
}
