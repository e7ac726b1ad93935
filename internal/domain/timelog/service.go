package timelog

import (
	"context"
)

// TimeclockService defines the kiosk-side time and attendance
// operations. Reads are served through the query cache; mutations go
// upstream and reconcile the cache before reporting completion.
type TimeclockService interface {
	// CurrentStatus returns the employee's attendance status plus the
	// open timelog, if any.
	CurrentStatus(ctx context.Context) (StatusResponse, error)

	// TodayLog returns today's timelog, nil when not clocked in yet.
	TodayLog(ctx context.Context) (*Timelog, error)

	// MonthlyLogs returns the employee's logs for one month.
	MonthlyLogs(ctx context.Context, filter MonthlyFilter) ([]Timelog, error)

	// RangeLogs returns the employee's logs over a date range.
	RangeLogs(ctx context.Context, filter RangeFilter) ([]Timelog, error)

	// TotalHours returns the aggregate worked hours over a date range.
	TotalHours(ctx context.Context, filter RangeFilter) (float64, error)

	// AllLogs returns every employee's timelogs (HR only).
	AllLogs(ctx context.Context) ([]Timelog, error)

	// IncompleteLogs returns logs missing a clock-out (HR only).
	IncompleteLogs(ctx context.Context) ([]Timelog, error)

	// ClockedInUsers returns the employees currently clocked in (HR
	// only).
	ClockedInUsers(ctx context.Context) ([]Employee, error)

	// OnBreakUsers returns the employees currently on break (HR only).
	OnBreakUsers(ctx context.Context) ([]Employee, error)

	// ClockIn dispatches a clock-in with a confirmed verification photo.
	ClockIn(ctx context.Context, photo string) (*Timelog, error)

	// ClockOut dispatches a clock-out with a confirmed verification photo.
	ClockOut(ctx context.Context, photo string) (*Timelog, error)

	// StartBreak dispatches a break start. No payload.
	StartBreak(ctx context.Context) (*Timelog, error)

	// EndBreak dispatches a break end. No payload.
	EndBreak(ctx context.Context) (*Timelog, error)

	// Adjust applies an HR override to an existing timelog.
	Adjust(ctx context.Context, req AdjustRequest) (*Timelog, error)

	// Delete removes a timelog (HR only).
	Delete(ctx context.Context, timelogID int64) error
}
