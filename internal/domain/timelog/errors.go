package timelog

import "errors"

// Timelog domain errors
var (
	// Clock action errors
	ErrPhotoRequired    = errors.New("a confirmed verification photo is required for this action")
	ErrActionNotAllowed = errors.New("action is not allowed in the current attendance status")
	ErrActionInFlight   = errors.New("another clock action is still in progress")

	// General errors
	ErrTimelogNotFound = errors.New("timelog record not found")
)
