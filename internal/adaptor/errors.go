package adaptor

import (
	"net/http"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError mapping kind error aplikasi ke status code. Seat conflict
// dan invalid seat menyertakan label kursi bermasalah di payload errors.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperr.KindOf(err)

	var errors any
	if seats := apperr.SeatsOf(err); len(seats) > 0 {
		errors = map[string]any{"seats": seats}
	}

	switch kind {
	case apperr.KindInvalid, apperr.KindInvalidSeat:
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), errors)

	case apperr.KindUnauthorized:
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case apperr.KindNotFound:
		log.Warn(operation+" not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.KindSeatConflict:
		log.Info(operation+" seat conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), errors)

	case apperr.KindConflict:
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case apperr.KindTransient:
		// Aman di-retry utuh oleh client; tidak ada efek parsial tersisa
		log.Error(operation+" transient failure", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, please retry")

	default:
		// KindConsistency dan KindInternal sama-sama bukan salah client
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
