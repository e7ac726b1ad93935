package editrequest

import (
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/validator"
)

// ========================================
// EDIT REQUEST DTOs
// ========================================

// CreateRequest is the employee submission. Requested values are
// independently optional; the reason and assignee are not.
type CreateRequest struct {
	TimelogID              int64         `json:"timelogId"`
	AssignedHrID           int64         `json:"assignedHrId"`
	Reason                 string        `json:"reason"`
	RequestedTimeIn        *apitime.Time `json:"requestedTimeIn,omitempty"`
	RequestedTimeOut       *apitime.Time `json:"requestedTimeOut,omitempty"`
	RequestedBreakDuration *int64        `json:"requestedBreakDuration,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimelogID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "timelogId",
			Message: "timelogId is required",
		})
	}

	if r.AssignedHrID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "assignedHrId",
			Message: "an assigned HR reviewer is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a reason is required",
		})
	}

	if r.RequestedBreakDuration != nil && *r.RequestedBreakDuration < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "requestedBreakDuration",
			Message: "requested break duration must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecisionRequest carries the HR response text for an approve or
// reject. The response is optional on approval and required on
// rejection.
type DecisionRequest struct {
	HrResponse string `json:"hrResponse"`
}

func (r *DecisionRequest) ValidateForApprove() error {
	return nil
}

func (r *DecisionRequest) ValidateForReject() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.HrResponse) {
		errs = append(errs, validator.ValidationError{
			Field:   "hrResponse",
			Message: "a response is required when rejecting a request",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
