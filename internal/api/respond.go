package api

import (
	"encoding/json"
	"errors"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const internalErrorMessage = "internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var bad *badRequest
	if errors.As(err, &bad) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: bad.message})
		return
	}

	serviceErr, ok := services.AsError(err)
	if !ok {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}
	writeJSON(w, statusOf(serviceErr.Kind), errorResponse{Error: serviceErr.Message})
}

func statusOf(kind services.ErrorKind) int {
	switch kind {
	case services.AuthError:
		return http.StatusUnauthorized
	case services.AuthorizationError:
		return http.StatusForbidden
	case services.NotFoundError:
		return http.StatusNotFound
	case services.ValidationError, services.ConflictError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// list keeps empty collections encoded as [] rather than null.
func list[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
