package editrequest

import "errors"

// Edit request domain errors
var (
	ErrRequestNotFound         = errors.New("timelog edit request not found")
	ErrRequestAlreadyProcessed = errors.New("timelog edit request has already been approved or rejected")
	ErrNotAssignedReviewer     = errors.New("only the assigned HR reviewer may process this request")
)
