package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusByCode maps every usecase error code to its HTTP status.
var statusByCode = map[string]int{
	usecase.ErrValidation.Code:                http.StatusBadRequest,
	usecase.ErrUnauthorized.Code:              http.StatusUnauthorized,
	usecase.ErrForbidden.Code:                 http.StatusForbidden,
	usecase.ErrNotFound.Code:                  http.StatusNotFound,
	usecase.ErrInvalidCar.Code:                http.StatusUnprocessableEntity,
	usecase.ErrEmptyCart.Code:                 http.StatusUnprocessableEntity,
	usecase.ErrInactiveService.Code:           http.StatusUnprocessableEntity,
	usecase.ErrInsufficientFunds.Code:         http.StatusUnprocessableEntity,
	usecase.ErrInvalidTransition.Code:         http.StatusConflict,
	usecase.ErrCartConflict.Code:              http.StatusConflict,
	usecase.ErrAlreadyReviewed.Code:           http.StatusConflict,
	usecase.ErrReferenceGenerationFailed.Code: http.StatusServiceUnavailable,
	usecase.ErrStoreUnavailable.Code:          http.StatusServiceUnavailable,
	usecase.ErrInternal.Code:                  http.StatusInternalServerError,
}

// handleServiceError writes err as a coded error response. Unknown errors
// are logged and hidden behind a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *usecase.AppError
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseError(w, http.StatusInternalServerError, usecase.ErrInternal.Code, usecase.ErrInternal.Message, nil)
		return
	}

	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := appErr.Message
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("code", appErr.Code))
		if status == http.StatusInternalServerError {
			message = usecase.ErrInternal.Message
		}
	default:
		log.Warn(operation+" failed", zap.Error(err), zap.String("code", appErr.Code))
	}

	utils.ResponseError(w, status, appErr.Code, message, appErr.Fields)
}

func badRequest(w http.ResponseWriter, message string, fields map[string]string) {
	utils.ResponseError(w, http.StatusBadRequest, usecase.ErrValidation.Code, message, fields)
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// currentUser returns the user id set by the auth middleware, writing a 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, usecase.ErrUnauthorized.Code, "Authentication required", nil)
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid URL parameter. Malformed ids are reported as not found.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseError(w, http.StatusNotFound, usecase.ErrNotFound.Code, "Resource not found", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
