package timelog

import (
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/validator"
)

// ========================================
// TIMELOG DTOs
// ========================================

// ClockRequest is the upstream payload for clock-in and clock-out.
type ClockRequest struct {
	Photo string `json:"photo"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "a verification photo is required",
		})
	} else if !validator.IsDataURI(r.Photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo must be a base64 image data URI",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StatusResponse is the upstream /timelog/status payload: the current
// status plus the open timelog, if any.
type StatusResponse struct {
	Status  Status   `json:"status"`
	Timelog *Timelog `json:"timelog"`
}

// TotalHoursResponse is the upstream /timelog/hours/total payload.
type TotalHoursResponse struct {
	TotalHours float64 `json:"totalHours"`
}

// AdjustRequest is the HR adjustment payload. Any subset of the
// adjusted fields may be set; the reason is mandatory.
type AdjustRequest struct {
	TimelogID             int64         `json:"timelogId"`
	AdjustedTimeIn        *apitime.Time `json:"adjustedTimeIn,omitempty"`
	AdjustedTimeOut       *apitime.Time `json:"adjustedTimeOut,omitempty"`
	AdjustedBreakDuration *int64        `json:"adjustedBreakDuration,omitempty"`
	Reason                string        `json:"reason"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimelogID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "timelogId",
			Message: "timelogId is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "an adjustment reason is required",
		})
	}

	if r.AdjustedTimeIn == nil && r.AdjustedTimeOut == nil && r.AdjustedBreakDuration == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "adjustment",
			Message: "at least one adjusted value is required",
		})
	}

	if r.AdjustedBreakDuration != nil && *r.AdjustedBreakDuration < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "adjustedBreakDuration",
			Message: "adjusted break duration must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlyFilter selects the month served by /timelog/monthly.
type MonthlyFilter struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (f *MonthlyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RangeFilter selects the window served by /timelog/hours/total and
// /timelog/range. Dates are YYYY-MM-DD.
type RangeFilter struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
