package timeclock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/session"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

const testPhoto = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

// fakeUpstream is an in-memory rendition of the timelog feature area:
// one employee, one day, server-side state transitions.
type fakeUpstream struct {
	mu       sync.Mutex
	status   timelog.Status
	today    *timelog.Timelog
	requests map[string]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		status:   timelog.StatusClockedOut,
		requests: make(map[string]int),
	}
}

func (f *fakeUpstream) hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *fakeUpstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests[r.URL.Path]++

		switch r.URL.Path {
		case "/timelog/status":
			json.NewEncoder(w).Encode(timelog.StatusResponse{Status: f.status, Timelog: f.today})
		case "/timelog/today":
			json.NewEncoder(w).Encode(f.today)
		case "/timelog/monthly", "/timelog/range", "/timelog/all":
			logs := []timelog.Timelog{}
			if f.today != nil {
				logs = append(logs, *f.today)
			}
			json.NewEncoder(w).Encode(logs)
		case "/timelog/incomplete":
			logs := []timelog.Timelog{}
			if f.today != nil && f.today.TimeOut == nil && f.status != timelog.StatusClockedOut {
				logs = append(logs, *f.today)
			}
			json.NewEncoder(w).Encode(logs)
		case "/timelog/users/clocked-in":
			users := []timelog.Employee{}
			if f.status == timelog.StatusClockedIn {
				users = append(users, timelog.Employee{UserID: 42, Username: "jdoe"})
			}
			json.NewEncoder(w).Encode(users)
		case "/timelog/users/on-break":
			users := []timelog.Employee{}
			if f.status == timelog.StatusOnBreak {
				users = append(users, timelog.Employee{UserID: 42, Username: "jdoe"})
			}
			json.NewEncoder(w).Encode(users)
		case "/timelog/hours/total":
			json.NewEncoder(w).Encode(timelog.TotalHoursResponse{TotalHours: 8})
		case "/timelog/time-in":
			if f.status != timelog.StatusClockedOut {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Already clocked in for today"))
				return
			}
			f.status = timelog.StatusClockedIn
			f.today = &timelog.Timelog{ID: 1, Status: f.status}
			json.NewEncoder(w).Encode(f.today)
		case "/timelog/time-out":
			f.status = timelog.StatusClockedOut
			f.today.Status = f.status
			json.NewEncoder(w).Encode(f.today)
		case "/timelog/break/start":
			f.status = timelog.StatusOnBreak
			f.today.Status = f.status
			json.NewEncoder(w).Encode(f.today)
		case "/timelog/break/end":
			f.status = timelog.StatusClockedIn
			f.today.Status = f.status
			json.NewEncoder(w).Encode(f.today)
		case "/timelog/adjust":
			var req timelog.AdjustRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.TimelogID != 1 || f.today == nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Time log not found"))
				return
			}
			f.today.AdjustedTimeIn = req.AdjustedTimeIn
			f.today.AdjustedTimeOut = req.AdjustedTimeOut
			json.NewEncoder(w).Encode(f.today)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Not found"))
		}
	})
}

func newTestService(t *testing.T) (timelog.TimeclockService, *querycache.Cache, *fakeUpstream) {
	t.Helper()

	fake := newFakeUpstream()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	store, err := session.NewStore("")
	require.NoError(t, err)
	require.NoError(t, store.Set(session.KeyToken, "test-token"))

	cache := querycache.New()
	api := upstream.NewTimelogClient(upstream.NewClient(server.URL, store))
	return NewTimeclockService(api, cache), cache, fake
}

func TestClockInHappyPath(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	result, err := svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusClockedIn, result.Status)
	assert.Equal(t, 1, fake.hits("/timelog/time-in"))
}

func TestClockInWithoutPhotoNeverReachesNetwork(t *testing.T) {
	svc, _, fake := newTestService(t)

	_, err := svc.ClockIn(context.Background(), "")
	assert.ErrorIs(t, err, timelog.ErrPhotoRequired)
	assert.Zero(t, fake.hits("/timelog/time-in"))

	_, err = svc.ClockIn(context.Background(), "not-a-data-uri")
	require.Error(t, err)
	assert.Zero(t, fake.hits("/timelog/time-in"))
}

func TestBreakActionsNeedNoPhoto(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)

	result, err := svc.StartBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusOnBreak, result.Status)

	result, err = svc.EndBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusClockedIn, result.Status)
	assert.Equal(t, 1, fake.hits("/timelog/break/start"))
	assert.Equal(t, 1, fake.hits("/timelog/break/end"))
}

func TestActionGateUsesLastKnownStatus(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	// Prime the status cache: CLOCKED_OUT.
	_, err := svc.CurrentStatus(ctx)
	require.NoError(t, err)

	// StartBreak is not offered while clocked out; the dispatch is
	// blocked locally.
	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, timelog.ErrActionNotAllowed)
	assert.Zero(t, fake.hits("/timelog/break/start"))
}

func TestMutationReconcilesDependentQueries(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	// Warm every dependent family.
	status, err := svc.CurrentStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusClockedOut, status.Status)

	_, err = svc.TodayLog(ctx)
	require.NoError(t, err)
	_, err = svc.MonthlyLogs(ctx, timelog.MonthlyFilter{Year: 2024, Month: 3})
	require.NoError(t, err)
	_, err = svc.TotalHours(ctx, timelog.RangeFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	statusHits := fake.hits("/timelog/status")
	todayHits := fake.hits("/timelog/today")
	monthlyHits := fake.hits("/timelog/monthly")
	hoursHits := fake.hits("/timelog/hours/total")

	_, err = svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)

	// Every warmed family was eagerly refetched.
	assert.Equal(t, statusHits+1, fake.hits("/timelog/status"))
	assert.Equal(t, todayHits+1, fake.hits("/timelog/today"))
	assert.Equal(t, monthlyHits+1, fake.hits("/timelog/monthly"))
	assert.Equal(t, hoursHits+1, fake.hits("/timelog/hours/total"))

	// And the refreshed status reflects the mutation without another
	// upstream round trip.
	status, err = svc.CurrentStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusClockedIn, status.Status)
	assert.Equal(t, statusHits+1, fake.hits("/timelog/status"))
}

func TestFailedActionLeavesCacheAlone(t *testing.T) {
	svc, cache, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)

	// Drop the local status projection so the second clock-in passes the
	// local gate and gets rejected by the server instead.
	cache.InvalidateFamily(querycache.FamilyStatus)
	statusHits := fake.hits("/timelog/status")

	_, err = svc.ClockIn(ctx, testPhoto)
	require.Error(t, err)

	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Already clocked in for today", apiErr.Error())

	// No reconciliation happened on the failure path.
	assert.Equal(t, statusHits, fake.hits("/timelog/status"))
}

func TestOneActionAtATime(t *testing.T) {
	fake := newFakeUpstream()
	slow := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/timelog/time-in" {
			<-slow
		}
		fake.handler().ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	store, err := session.NewStore("")
	require.NoError(t, err)

	svc := NewTimeclockService(upstream.NewTimelogClient(upstream.NewClient(server.URL, store)), querycache.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	var inFlightErrs atomic.Int32
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.ClockIn(ctx, testPhoto)
		assert.NoError(t, err)
	}()

	// Wait for the first dispatch to reach the upstream, then race a
	// second one against it.
	require.Eventually(t, func() bool {
		return fake.hits("/timelog/time-in") == 1
	}, time.Second, 5*time.Millisecond)

	_, err = svc.ClockIn(ctx, testPhoto)
	if errors.Is(err, timelog.ErrActionInFlight) {
		inFlightErrs.Add(1)
	}
	close(slow)
	wg.Wait()

	assert.EqualValues(t, 1, inFlightErrs.Load())
}

func TestAdjustValidatesThenReconciles(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)

	t.Run("invalid request never reaches network", func(t *testing.T) {
		_, err := svc.Adjust(ctx, timelog.AdjustRequest{TimelogID: 1})
		require.Error(t, err)
		assert.Zero(t, fake.hits("/timelog/adjust"))
	})

	t.Run("valid adjustment round trips", func(t *testing.T) {
		in, err := apitime.Parse("2024-03-15T09:00:00")
		require.NoError(t, err)

		result, err := svc.Adjust(ctx, timelog.AdjustRequest{
			TimelogID:      1,
			AdjustedTimeIn: &in,
			Reason:         "Badge reader outage",
		})
		require.NoError(t, err)
		assert.True(t, result.IsAdjusted())
		assert.Equal(t, 1, fake.hits("/timelog/adjust"))
	})
}

func TestDeleteRejectsBadID(t *testing.T) {
	svc, _, fake := newTestService(t)

	err := svc.Delete(context.Background(), 0)
	assert.ErrorIs(t, err, timelog.ErrTimelogNotFound)
	assert.Zero(t, fake.hits("/timelog/0"))
}

func TestRangeLogsValidatedThenCached(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.RangeLogs(ctx, timelog.RangeFilter{StartDate: "2024-03-31", EndDate: "2024-03-01"})
	require.Error(t, err)
	assert.Zero(t, fake.hits("/timelog/range"))

	filter := timelog.RangeFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"}
	_, err = svc.RangeLogs(ctx, filter)
	require.NoError(t, err)
	_, err = svc.RangeLogs(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.hits("/timelog/range"))
}

func TestHrReadsAreCached(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.AllLogs(ctx)
		require.NoError(t, err)
		_, err = svc.IncompleteLogs(ctx)
		require.NoError(t, err)
		_, err = svc.ClockedInUsers(ctx)
		require.NoError(t, err)
		_, err = svc.OnBreakUsers(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, fake.hits("/timelog/all"))
	assert.Equal(t, 1, fake.hits("/timelog/incomplete"))
	assert.Equal(t, 1, fake.hits("/timelog/users/clocked-in"))
	assert.Equal(t, 1, fake.hits("/timelog/users/on-break"))
}

func TestMutationRefreshesHrMonitoringViews(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	clockedIn, err := svc.ClockedInUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, clockedIn)

	incomplete, err := svc.IncompleteLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, incomplete)

	_, err = svc.ClockIn(ctx, testPhoto)
	require.NoError(t, err)

	// The presence and HR list views were refetched by the
	// reconciliation; subsequent reads come from cache and already show
	// the new state.
	clockedInHits := fake.hits("/timelog/users/clocked-in")
	incompleteHits := fake.hits("/timelog/incomplete")

	clockedIn, err = svc.ClockedInUsers(ctx)
	require.NoError(t, err)
	require.Len(t, clockedIn, 1)
	assert.Equal(t, "jdoe", clockedIn[0].Username)

	incomplete, err = svc.IncompleteLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, incomplete, 1)

	assert.Equal(t, clockedInHits, fake.hits("/timelog/users/clocked-in"))
	assert.Equal(t, incompleteHits, fake.hits("/timelog/incomplete"))
}

func TestMonthlyFilterValidatedBeforeFetch(t *testing.T) {
	svc, _, fake := newTestService(t)

	_, err := svc.MonthlyLogs(context.Background(), timelog.MonthlyFilter{Year: 2024, Month: 13})
	require.Error(t, err)
	assert.Zero(t, fake.hits("/timelog/monthly"))
}
