package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err = w.Write(payload); err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
