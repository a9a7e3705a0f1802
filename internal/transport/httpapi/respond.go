package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/domain"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeBadRequest            = "bad_request"
	codeValidationFailed      = "validation_failed"
	codeRegionNotFound        = "region_not_found"
	codeDomainUnavailable     = "domain_unavailable"
	codeEmbeddingTimeout      = "embedding_timeout"
	codeEmbeddingProvider     = "embedding_provider_error"
	codeGenerationProvider    = "generation_provider_error"
	codeClassifierUnavailable = "classifier_unavailable"
	codeInternal              = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// sentinelHandler maps one sentinel error to a status and code.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// domainErrorHandlers is the ordered mapping from domain sentinels to
// HTTP responses. ErrEmbeddingTimeout precedes ErrEmbeddingProvider so
// a timeout is reported as 504, not 502.
var domainErrorHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
	sentinelHandler(domain.ErrRegionNotFound, http.StatusNotFound, codeRegionNotFound),
	sentinelHandler(domain.ErrDomainUnavailable, http.StatusServiceUnavailable, codeDomainUnavailable),
	sentinelHandler(domain.ErrEmbeddingTimeout, http.StatusGatewayTimeout, codeEmbeddingTimeout),
	sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
	sentinelHandler(domain.ErrGenerationProvider, http.StatusBadGateway, codeGenerationProvider),
	sentinelHandler(domain.ErrClassifierUnavailable, http.StatusServiceUnavailable, codeClassifierUnavailable),
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range domainErrorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
