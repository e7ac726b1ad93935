package editrequest

import (
	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
)

// RequestStatus is the lifecycle of a timelog edit request. PENDING is
// the only non-terminal state.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// Resolved reports whether the request has reached a terminal state.
func (s RequestStatus) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// HrStaff identifies an HR reviewer selectable as an assignee.
type HrStaff struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Position string `json:"position,omitempty"`
}

// EditRequest is an employee-initiated correction to a historical
// timelog, routed to one HR reviewer. Immutable once resolved.
type EditRequest struct {
	ID                     int64            `json:"id"`
	Timelog                *timelog.Timelog `json:"timelog,omitempty"`
	EmployeeID             int64            `json:"employeeId,omitempty"`
	EmployeeUsername       string           `json:"employeeUsername,omitempty"`
	AssignedHrID           int64            `json:"assignedHrId,omitempty"`
	Reason                 string           `json:"reason"`
	RequestedTimeIn        *apitime.Time    `json:"requestedTimeIn,omitempty"`
	RequestedTimeOut       *apitime.Time    `json:"requestedTimeOut,omitempty"`
	RequestedBreakDuration *int64           `json:"requestedBreakDuration,omitempty"`
	Status                 RequestStatus    `json:"status"`
	HrResponse             *string          `json:"hrResponse,omitempty"`
	ProcessedDate          *apitime.Time    `json:"processedDate,omitempty"`
	CreatedDate            *apitime.Time    `json:"createdDate,omitempty"`
	UpdatedDate            *apitime.Time    `json:"updatedDate,omitempty"`
}
