package handlers

import (
	"encoding/json"
	"net/http"

	"orders-api/internal/common/httpx"
	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/domain/dto"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, dto.MessageResponse{Message: msg})
}

// writeFailure logs err against the request and answers 500 with a generic message.
func writeFailure(w http.ResponseWriter, r *http.Request, lg *logger.Logger, action string, err error, msg string) {
	lg.WithRequestID(httpx.RequestIDFrom(r.Context())).Error(action, err, map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
	})
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
}
