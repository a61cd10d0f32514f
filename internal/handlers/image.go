package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pieceful-app/pieceful-server/internal/imageprobe"
	"github.com/pieceful-app/pieceful-server/internal/localstore"
)

// maxImageBytes bounds uploads; the stored blob is served back verbatim.
const maxImageBytes = 16 << 20

type ImageHandler struct {
	logger *slog.Logger
	local  *localstore.Store
}

func NewImageHandler(logger *slog.Logger, local *localstore.Store) *ImageHandler {
	return &ImageHandler{logger: logger, local: local}
}

type ImageUploadDTO struct {
	ImageKey string `json:"image_key"`
	imageprobe.Info
}

func (h ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	info, err := imageprobe.Probe(data)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	key := uuid.NewString()
	if err := h.local.PutBlob(key, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to store image blob", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, &ImageUploadDTO{ImageKey: key, Info: *info})
}

func (h ImageHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	data, err := h.local.GetBlob(key)
	if errors.Is(err, localstore.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to read image blob", "key", key, "error", err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("unable to send image blob", "key", key, "error", err)
	}
}
