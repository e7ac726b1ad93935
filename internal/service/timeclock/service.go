package timeclock

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

// Cache freshness per query family. Status and today are near-live;
// the aggregates tolerate a couple of minutes.
const (
	statusTTL     = 5 * time.Second
	todayTTL      = 15 * time.Second
	monthlyTTL    = 2 * time.Minute
	rangeTTL      = 2 * time.Minute
	totalHoursTTL = 2 * time.Minute
	hrListTTL     = time.Minute
	presenceTTL   = 10 * time.Second
)

// reconcileFamilies are invalidated and refetched after every
// successful clock mutation, HR adjustment, and HR delete. Monthly,
// range, and total-hours match on family alone: an adjustment may touch
// a period other than the one currently viewed. The HR monitoring
// families ride along because every mutation moves someone's row on the
// HR dashboard.
var reconcileFamilies = []querycache.Family{
	querycache.FamilyStatus,
	querycache.FamilyToday,
	querycache.FamilyMonthly,
	querycache.FamilyRange,
	querycache.FamilyTotalHours,
	querycache.FamilyTimelogsHr,
	querycache.FamilyPresence,
}

type TimeclockServiceImpl struct {
	api   *upstream.TimelogClient
	cache *querycache.Cache

	// One clock action at a time. The triggering control is disabled
	// while a request is in flight; a second dispatch is rejected, not
	// queued.
	inFlight atomic.Bool
}

func NewTimeclockService(api *upstream.TimelogClient, cache *querycache.Cache) timelog.TimeclockService {
	return &TimeclockServiceImpl{
		api:   api,
		cache: cache,
	}
}

// CurrentStatus implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) CurrentStatus(ctx context.Context) (timelog.StatusResponse, error) {
	key := querycache.Key{Family: querycache.FamilyStatus}
	value, err := s.cache.Get(ctx, key, statusTTL, func(ctx context.Context) (any, error) {
		resp, err := s.api.GetStatus(ctx)
		if err != nil {
			return nil, err
		}
		return *resp, nil
	})
	if err != nil {
		return timelog.StatusResponse{}, err
	}
	return value.(timelog.StatusResponse), nil
}

// TodayLog implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) TodayLog(ctx context.Context) (*timelog.Timelog, error) {
	key := querycache.Key{Family: querycache.FamilyToday}
	value, err := s.cache.Get(ctx, key, todayTTL, func(ctx context.Context) (any, error) {
		return s.api.GetToday(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.(*timelog.Timelog), nil
}

// MonthlyLogs implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) MonthlyLogs(ctx context.Context, filter timelog.MonthlyFilter) ([]timelog.Timelog, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key := querycache.Key{
		Family: querycache.FamilyMonthly,
		Params: strconv.Itoa(filter.Year) + "-" + strconv.Itoa(filter.Month),
	}
	value, err := s.cache.Get(ctx, key, monthlyTTL, func(ctx context.Context) (any, error) {
		return s.api.GetMonthly(ctx, filter.Year, filter.Month)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Timelog), nil
}

// RangeLogs implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) RangeLogs(ctx context.Context, filter timelog.RangeFilter) ([]timelog.Timelog, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	key := querycache.Key{
		Family: querycache.FamilyRange,
		Params: filter.StartDate + ".." + filter.EndDate,
	}
	value, err := s.cache.Get(ctx, key, rangeTTL, func(ctx context.Context) (any, error) {
		return s.api.GetRange(ctx, filter.StartDate, filter.EndDate)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Timelog), nil
}

// AllLogs implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) AllLogs(ctx context.Context) ([]timelog.Timelog, error) {
	key := querycache.Key{Family: querycache.FamilyTimelogsHr, Params: "all"}
	value, err := s.cache.Get(ctx, key, hrListTTL, func(ctx context.Context) (any, error) {
		return s.api.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Timelog), nil
}

// IncompleteLogs implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) IncompleteLogs(ctx context.Context) ([]timelog.Timelog, error) {
	key := querycache.Key{Family: querycache.FamilyTimelogsHr, Params: "incomplete"}
	value, err := s.cache.Get(ctx, key, hrListTTL, func(ctx context.Context) (any, error) {
		return s.api.GetIncomplete(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Timelog), nil
}

// ClockedInUsers implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) ClockedInUsers(ctx context.Context) ([]timelog.Employee, error) {
	key := querycache.Key{Family: querycache.FamilyPresence, Params: "clocked-in"}
	value, err := s.cache.Get(ctx, key, presenceTTL, func(ctx context.Context) (any, error) {
		return s.api.GetClockedIn(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Employee), nil
}

// OnBreakUsers implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) OnBreakUsers(ctx context.Context) ([]timelog.Employee, error) {
	key := querycache.Key{Family: querycache.FamilyPresence, Params: "on-break"}
	value, err := s.cache.Get(ctx, key, presenceTTL, func(ctx context.Context) (any, error) {
		return s.api.GetOnBreak(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]timelog.Employee), nil
}

// TotalHours implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) TotalHours(ctx context.Context, filter timelog.RangeFilter) (float64, error) {
	if err := filter.Validate(); err != nil {
		return 0, err
	}

	key := querycache.Key{
		Family: querycache.FamilyTotalHours,
		Params: filter.StartDate + ".." + filter.EndDate,
	}
	value, err := s.cache.Get(ctx, key, totalHoursTTL, func(ctx context.Context) (any, error) {
		return s.api.GetTotalHours(ctx, filter.StartDate, filter.EndDate)
	})
	if err != nil {
		return 0, err
	}
	return value.(float64), nil
}

// ClockIn implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) ClockIn(ctx context.Context, photo string) (*timelog.Timelog, error) {
	return s.dispatch(ctx, timelog.ActionClockIn, photo, func(ctx context.Context) (*timelog.Timelog, error) {
		return s.api.ClockIn(ctx, photo)
	})
}

// ClockOut implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) ClockOut(ctx context.Context, photo string) (*timelog.Timelog, error) {
	return s.dispatch(ctx, timelog.ActionClockOut, photo, func(ctx context.Context) (*timelog.Timelog, error) {
		return s.api.ClockOut(ctx, photo)
	})
}

// StartBreak implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) StartBreak(ctx context.Context) (*timelog.Timelog, error) {
	return s.dispatch(ctx, timelog.ActionStartBreak, "", func(ctx context.Context) (*timelog.Timelog, error) {
		return s.api.StartBreak(ctx)
	})
}

// EndBreak implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) EndBreak(ctx context.Context) (*timelog.Timelog, error) {
	return s.dispatch(ctx, timelog.ActionEndBreak, "", func(ctx context.Context) (*timelog.Timelog, error) {
		return s.api.EndBreak(ctx)
	})
}

// dispatch runs one clock action end to end: photo validation, the
// allowed-actions gate against the last known status, the upstream
// call, and cache reconciliation. The server stays the final arbiter;
// the local gate only stops actions the UI should never have offered.
func (s *TimeclockServiceImpl) dispatch(ctx context.Context, action timelog.Action, photo string, call func(ctx context.Context) (*timelog.Timelog, error)) (*timelog.Timelog, error) {
	if action.RequiresPhoto() {
		if photo == "" {
			return nil, timelog.ErrPhotoRequired
		}
		req := timelog.ClockRequest{Photo: photo}
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	if status, known := s.lastKnownStatus(); known && !status.Allows(action) {
		return nil, fmt.Errorf("%w: status is %s", timelog.ErrActionNotAllowed, status)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, timelog.ErrActionInFlight
	}
	defer s.inFlight.Store(false)

	result, err := call(ctx)
	if err != nil {
		// Status unchanged; the server message surfaces verbatim so
		// the employee can retry.
		return nil, err
	}

	s.reconcile(ctx)
	return result, nil
}

// Adjust implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) Adjust(ctx context.Context, req timelog.AdjustRequest) (*timelog.Timelog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.api.Adjust(ctx, req)
	if err != nil {
		return nil, err
	}

	s.reconcile(ctx)
	return result, nil
}

// Delete implements timelog.TimeclockService.
func (s *TimeclockServiceImpl) Delete(ctx context.Context, timelogID int64) error {
	if timelogID <= 0 {
		return timelog.ErrTimelogNotFound
	}

	if err := s.api.Delete(ctx, timelogID); err != nil {
		return err
	}

	s.reconcile(ctx)
	return nil
}

// reconcile invalidates and eagerly refetches every dependent query
// family. Refetch failures are logged, not returned: the mutation
// already succeeded, and the entries stay invalidated so the next read
// fetches fresh.
func (s *TimeclockServiceImpl) reconcile(ctx context.Context) {
	if err := s.cache.Reconcile(ctx, reconcileFamilies...); err != nil {
		slog.Warn("cache refetch after mutation failed", "error", err)
	}
}

// lastKnownStatus reads the cached status without hitting upstream.
func (s *TimeclockServiceImpl) lastKnownStatus() (timelog.Status, bool) {
	value, ok := s.cache.Peek(querycache.Key{Family: querycache.FamilyStatus})
	if !ok {
		return "", false
	}
	resp, ok := value.(timelog.StatusResponse)
	if !ok || !resp.Status.Valid() {
		return "", false
	}
	return resp.Status, true
}
