package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/service"
	"leaseflow-backend/internal/storage"
)

const maxUploadBytes = 20 << 20 // 20 MB

// DocumentUploadHandler stores uploaded client documents and records them
// against the offer's open document request.
type DocumentUploadHandler struct {
	documents service.DocumentService
	store     storage.StorageInterface
}

func NewDocumentUploadHandler(documents service.DocumentService, store storage.StorageInterface) *DocumentUploadHandler {
	return &DocumentUploadHandler{documents: documents, store: store}
}

// HandleUpload accepts a multipart form with a "file" part and a "kind"
// field naming the requested document kind being fulfilled.
func (h *DocumentUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	offerID := mux.Vars(r)["id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	kind := domain.DocumentKind(r.FormValue("kind"))
	if !kind.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown document kind"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file"})
		return
	}
	defer file.Close()

	storageKey := fmt.Sprintf("%s/%s%s", offerID, uuid.New().String(), filepath.Ext(header.Filename))
	if err := h.store.SaveFile(storageKey, file); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store file"})
		return
	}

	request, err := h.documents.RecordUpload(
		r.Context(),
		offerID,
		kind,
		header.Filename,
		storageKey,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		// Orphaned file cleanup is best effort.
		_ = h.store.DeleteFile(r.Context(), storageKey)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

// HandleDownload streams a stored document back to the caller
func (h *DocumentUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing key parameter"})
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid key parameter"})
			return
		}
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "file not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".pdf":
		contentType = "application/pdf"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	}

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, file)
}
