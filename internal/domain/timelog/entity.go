package timelog

import (
	"time"

	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
)

// Status is the employee's current attendance state. The upstream server
// owns the value; the kiosk only ever holds a cached projection of it.
type Status string

const (
	StatusClockedOut Status = "CLOCKED_OUT"
	StatusClockedIn  Status = "CLOCKED_IN"
	StatusOnBreak    Status = "ON_BREAK"
)

func (s Status) Valid() bool {
	switch s {
	case StatusClockedOut, StatusClockedIn, StatusOnBreak:
		return true
	}
	return false
}

// Timelog is one attendance record per employee per calendar day, as
// served by the upstream API. Adjusted* fields are HR overrides layered
// on top of the original values; both are kept.
type Timelog struct {
	ID                           int64         `json:"id"`
	LogDate                      *apitime.Time `json:"logDate,omitempty"`
	TimeIn                       *apitime.Time `json:"timeIn,omitempty"`
	TimeOut                      *apitime.Time `json:"timeOut,omitempty"`
	BreakTimeStart               *apitime.Time `json:"breakTimeStart,omitempty"`
	BreakTimeEnd                 *apitime.Time `json:"breakTimeEnd,omitempty"`
	BreakDurationMinutes         *int64        `json:"breakDurationMinutes,omitempty"`
	TotalWorkedHours             *float64      `json:"totalWorkedHours,omitempty"`
	TimeInPhoto                  *string       `json:"timeInPhoto,omitempty"`
	TimeOutPhoto                 *string       `json:"timeOutPhoto,omitempty"`
	AdjustedTimeIn               *apitime.Time `json:"adjustedTimeIn,omitempty"`
	AdjustedTimeOut              *apitime.Time `json:"adjustedTimeOut,omitempty"`
	AdjustedBreakDurationMinutes *int64        `json:"adjustedBreakDurationMinutes,omitempty"`
	AdjustmentReason             *string       `json:"adjustmentReason,omitempty"`
	AdjustedBy                   *string       `json:"adjustedBy,omitempty"`
	AdjustmentDate               *apitime.Time `json:"adjustmentDate,omitempty"`
	Status                       Status        `json:"status"`
}

// EffectiveTimeIn returns the HR-adjusted clock-in when present,
// otherwise the original.
func (t *Timelog) EffectiveTimeIn() *time.Time {
	if t.AdjustedTimeIn != nil {
		return &t.AdjustedTimeIn.Time
	}
	if t.TimeIn != nil {
		return &t.TimeIn.Time
	}
	return nil
}

// EffectiveTimeOut returns the HR-adjusted clock-out when present,
// otherwise the original.
func (t *Timelog) EffectiveTimeOut() *time.Time {
	if t.AdjustedTimeOut != nil {
		return &t.AdjustedTimeOut.Time
	}
	if t.TimeOut != nil {
		return &t.TimeOut.Time
	}
	return nil
}

// EffectiveBreakMinutes returns the HR-adjusted break duration when
// present, otherwise the recorded one. Zero when neither is set.
func (t *Timelog) EffectiveBreakMinutes() int64 {
	if t.AdjustedBreakDurationMinutes != nil {
		return *t.AdjustedBreakDurationMinutes
	}
	if t.BreakDurationMinutes != nil {
		return *t.BreakDurationMinutes
	}
	return 0
}

// WorkedHours recomputes the total worked hours from the effective
// values: (time out - time in) minus the effective break. Returns nil
// while the log is still open.
func (t *Timelog) WorkedHours() *float64 {
	in := t.EffectiveTimeIn()
	out := t.EffectiveTimeOut()
	if in == nil || out == nil {
		return nil
	}

	minutes := int64(out.Sub(*in).Minutes())
	minutes -= t.EffectiveBreakMinutes()
	if minutes < 0 {
		minutes = 0
	}

	hours := float64(minutes) / 60.0
	return &hours
}

// IsAdjusted reports whether HR has overridden any of the original
// values.
func (t *Timelog) IsAdjusted() bool {
	return t.AdjustedTimeIn != nil || t.AdjustedTimeOut != nil || t.AdjustedBreakDurationMinutes != nil
}

// Employee is the upstream projection of a user in the HR presence
// reads: who is currently clocked in or on break.
type Employee struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Position string `json:"position,omitempty"`
}
