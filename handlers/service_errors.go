package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/transport"
	"github.com/upb/llm-dispatch/utils"
)

// HandleServiceError maps dispatch and transport errors to HTTP responses.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch {
	case providers.IsMissingCredential(err):
		logger.Warn("missing provider credential", zap.Error(err))
		_ = utils.WriteUnauthorized(w, err.Error())

	case providers.IsUnsupportedParameter(err):
		logger.Warn("unsupported parameter", zap.Error(err))
		_ = utils.WriteBadRequest(w, err.Error(), nil)

	case providers.IsUnknownProvider(err):
		logger.Warn("unknown provider prefix", zap.Error(err))
		_ = utils.WriteBadRequest(w, err.Error(), nil)

	default:
		if apiErr, ok := transport.AsAPIError(err); ok {
			logger.Error("provider request failed",
				zap.Int("status_code", apiErr.StatusCode),
				zap.Error(apiErr))
			_ = utils.WriteBadGateway(w, apiErr.Message)
			return
		}
		logger.Error("completion failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Internal server error")
	}
}

// HandleValidationError maps validation failures to a 400 with field details.
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		details := make(map[string]any)
		for field, msg := range utils.GetValidationFields(err) {
			details[field] = msg
		}
		_ = utils.WriteBadRequest(w, "Validation failed", details)
		return
	}
	logger.Warn("unexpected validation error", zap.Error(err))
	_ = utils.WriteBadRequest(w, err.Error(), nil)
}
