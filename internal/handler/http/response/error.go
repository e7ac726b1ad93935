package response

import (
	"errors"
	"net/http"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/editrequest"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/user"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/camera"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/validator"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream rejections pass through verbatim: the server is the
	// final arbiter and its message is what the employee should see.
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		UpstreamError(w, apiErr.StatusCode, apiErr.Message)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrHrAccessRequired):
		Forbidden(w, err.Error())

	// Timelog domain errors
	case errors.Is(err, timelog.ErrPhotoRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timelog.ErrActionNotAllowed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timelog.ErrActionInFlight):
		Conflict(w, err.Error())
	case errors.Is(err, timelog.ErrTimelogNotFound):
		NotFound(w, "Timelog record not found")

	// Edit request domain errors
	case errors.Is(err, editrequest.ErrRequestNotFound):
		NotFound(w, "Timelog edit request not found")
	case errors.Is(err, editrequest.ErrRequestAlreadyProcessed):
		Conflict(w, "Timelog edit request already processed")
	case errors.Is(err, editrequest.ErrNotAssignedReviewer):
		Forbidden(w, err.Error())

	// Camera errors
	case errors.Is(err, camera.ErrUnsupported):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, camera.ErrPermissionDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, camera.ErrDeviceBusy):
		Conflict(w, err.Error())
	case errors.Is(err, camera.ErrAcquisition):
		InternalServerError(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
