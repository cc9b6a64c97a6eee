package api

import (
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/service"
	"alcyxob/training-tracker/internal/storage"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusForError maps service and engine errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, schedule.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, schedule.ErrAthleteMismatch),
		errors.Is(err, service.ErrScheduleAccessDenied),
		errors.Is(err, service.ErrPlanAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, schedule.ErrUnsupportedKind),
		errors.Is(err, schedule.ErrInvalidConfig),
		errors.Is(err, service.ErrKindMismatch),
		errors.Is(err, service.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrPlanExerciseNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConcurrentUpdate),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrExerciseExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts with the status matching err. Internal errors are
// logged and answered with fallback instead of the error text.
func respondError(c *gin.Context, err error, fallback string) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		log.WithField("path", c.Request.URL.Path).Errorf("%s: %s", fallback, err)
		abortWithError(c, code, fallback)
		return
	}
	abortWithError(c, code, err.Error())
}
