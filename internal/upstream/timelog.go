package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
)

// TimelogClient talks to the timelog feature area.
type TimelogClient struct {
	*Client
}

func NewTimelogClient(base *Client) *TimelogClient {
	return &TimelogClient{Client: base}
}

// ClockIn submits the confirmed verification photo and opens today's
// log.
func (c *TimelogClient) ClockIn(ctx context.Context, photo string) (*timelog.Timelog, error) {
	var result timelog.Timelog
	req := timelog.ClockRequest{Photo: photo}
	if err := c.post(ctx, "/timelog/time-in", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClockOut submits the confirmed verification photo and closes today's
// log.
func (c *TimelogClient) ClockOut(ctx context.Context, photo string) (*timelog.Timelog, error) {
	var result timelog.Timelog
	req := timelog.ClockRequest{Photo: photo}
	if err := c.post(ctx, "/timelog/time-out", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TimelogClient) StartBreak(ctx context.Context) (*timelog.Timelog, error) {
	var result timelog.Timelog
	if err := c.post(ctx, "/timelog/break/start", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TimelogClient) EndBreak(ctx context.Context) (*timelog.Timelog, error) {
	var result timelog.Timelog
	if err := c.post(ctx, "/timelog/break/end", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TimelogClient) GetStatus(ctx context.Context) (*timelog.StatusResponse, error) {
	var result timelog.StatusResponse
	if err := c.get(ctx, "/timelog/status", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetToday returns today's log, or nil when the employee has not
// clocked in yet.
func (c *TimelogClient) GetToday(ctx context.Context) (*timelog.Timelog, error) {
	var result *timelog.Timelog
	if err := c.get(ctx, "/timelog/today", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *TimelogClient) GetMonthly(ctx context.Context, year, month int) ([]timelog.Timelog, error) {
	query := url.Values{
		"year":  []string{strconv.Itoa(year)},
		"month": []string{strconv.Itoa(month)},
	}
	var result []timelog.Timelog
	if err := c.get(ctx, "/timelog/monthly", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *TimelogClient) GetRange(ctx context.Context, startDate, endDate string) ([]timelog.Timelog, error) {
	query := url.Values{
		"startDate": []string{startDate},
		"endDate":   []string{endDate},
	}
	var result []timelog.Timelog
	if err := c.get(ctx, "/timelog/range", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *TimelogClient) GetTotalHours(ctx context.Context, startDate, endDate string) (float64, error) {
	query := url.Values{
		"startDate": []string{startDate},
		"endDate":   []string{endDate},
	}
	var result timelog.TotalHoursResponse
	if err := c.get(ctx, "/timelog/hours/total", query, &result); err != nil {
		return 0, err
	}
	return result.TotalHours, nil
}

// GetAll returns every employee's timelogs. HR only.
func (c *TimelogClient) GetAll(ctx context.Context) ([]timelog.Timelog, error) {
	var result []timelog.Timelog
	if err := c.get(ctx, "/timelog/all", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetIncomplete returns logs missing a clock-out. HR only.
func (c *TimelogClient) GetIncomplete(ctx context.Context) ([]timelog.Timelog, error) {
	var result []timelog.Timelog
	if err := c.get(ctx, "/timelog/incomplete", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetClockedIn returns the employees currently clocked in. HR only.
func (c *TimelogClient) GetClockedIn(ctx context.Context) ([]timelog.Employee, error) {
	var result []timelog.Employee
	if err := c.get(ctx, "/timelog/users/clocked-in", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOnBreak returns the employees currently on break. HR only.
func (c *TimelogClient) GetOnBreak(ctx context.Context) ([]timelog.Employee, error) {
	var result []timelog.Employee
	if err := c.get(ctx, "/timelog/users/on-break", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Adjust applies an HR override on top of an existing log.
func (c *TimelogClient) Adjust(ctx context.Context, req timelog.AdjustRequest) (*timelog.Timelog, error) {
	var result timelog.Timelog
	if err := c.post(ctx, "/timelog/adjust", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a timelog. HR only; employees never delete their own
// logs.
func (c *TimelogClient) Delete(ctx context.Context, timelogID int64) error {
	return c.delete(ctx, fmt.Sprintf("/timelog/%d", timelogID), nil)
}
