package editrequest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/editrequest"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/session"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

// reviewerID is the HR reviewer the fake upstream treats as the
// authenticated caller; decisions on requests assigned elsewhere are
// refused.
const reviewerID = int64(7)

// fakeReviewQueue is an in-memory rendition of the edit-request feature
// area with one assigned HR reviewer.
type fakeReviewQueue struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*editrequest.EditRequest
	hits     map[string]int
}

func newFakeReviewQueue() *fakeReviewQueue {
	return &fakeReviewQueue{
		nextID:   1,
		requests: make(map[int64]*editrequest.EditRequest),
		hits:     make(map[string]int),
	}
}

func (f *fakeReviewQueue) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeReviewQueue) list(pendingOnly bool) []editrequest.EditRequest {
	var out []editrequest.EditRequest
	for id := int64(1); id < f.nextID; id++ {
		req := f.requests[id]
		if req == nil {
			continue
		}
		if pendingOnly && req.Status != editrequest.StatusPending {
			continue
		}
		out = append(out, *req)
	}
	if out == nil {
		out = []editrequest.EditRequest{}
	}
	return out
}

func (f *fakeReviewQueue) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits[r.URL.Path]++

		switch {
		case r.URL.Path == "/create":
			var req editrequest.CreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			created := &editrequest.EditRequest{
				ID:           f.nextID,
				Timelog:      &timelog.Timelog{ID: req.TimelogID},
				AssignedHrID: req.AssignedHrID,
				Reason:       req.Reason,
				Status:       editrequest.StatusPending,
			}
			f.requests[f.nextID] = created
			f.nextID++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(created)
		case r.URL.Path == "/hr-staff":
			json.NewEncoder(w).Encode([]editrequest.HrStaff{{ID: 7, Username: "hr.lee", Position: "HR Manager"}})
		case r.URL.Path == "/employee":
			json.NewEncoder(w).Encode(f.list(false))
		case r.URL.Path == "/hr":
			json.NewEncoder(w).Encode(f.list(false))
		case r.URL.Path == "/hr/pending":
			json.NewEncoder(w).Encode(f.list(true))
		case strings.HasPrefix(r.URL.Path, "/approve/"), strings.HasPrefix(r.URL.Path, "/reject/"):
			id, _ := strconv.ParseInt(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], 10, 64)
			req := f.requests[id]
			if req == nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Edit request not found"))
				return
			}
			if req.AssignedHrID != reviewerID {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Unauthorized to process this request"))
				return
			}
			if req.Status != editrequest.StatusPending {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte("Request has already been processed"))
				return
			}
			var decision editrequest.DecisionRequest
			json.NewDecoder(r.Body).Decode(&decision)
			if strings.HasPrefix(r.URL.Path, "/approve/") {
				req.Status = editrequest.StatusApproved
			} else {
				req.Status = editrequest.StatusRejected
			}
			req.HrResponse = &decision.HrResponse
			json.NewEncoder(w).Encode(req)
		default:
			id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/"), 10, 64)
			if err == nil {
				if req := f.requests[id]; req != nil {
					json.NewEncoder(w).Encode(req)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Edit request not found"))
		}
	})
}

func newTestService(t *testing.T) (editrequest.EditRequestService, *querycache.Cache, *fakeReviewQueue) {
	t.Helper()

	fake := newFakeReviewQueue()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	store, err := session.NewStore("")
	require.NoError(t, err)
	require.NoError(t, store.Set(session.KeyToken, "test-token"))

	cache := querycache.New()
	api := upstream.NewEditRequestClient(upstream.NewClient(server.URL, store))
	return NewEditRequestService(api, cache), cache, fake
}

func submit(t *testing.T, svc editrequest.EditRequestService) *editrequest.EditRequest {
	t.Helper()
	created, err := svc.Create(context.Background(), editrequest.CreateRequest{
		TimelogID:    42,
		AssignedHrID: 7,
		Reason:       "Forgot to clock out, left at six",
	})
	require.NoError(t, err)
	return created
}

func TestCreateSubmitsPending(t *testing.T) {
	svc, _, _ := newTestService(t)

	created := submit(t, svc)
	assert.Equal(t, editrequest.StatusPending, created.Status)
	require.NotNil(t, created.Timelog)
	assert.EqualValues(t, 42, created.Timelog.ID)
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	svc, _, fake := newTestService(t)

	_, err := svc.Create(context.Background(), editrequest.CreateRequest{TimelogID: 42})
	require.Error(t, err)
	assert.Zero(t, fake.count("/create"))
}

func TestRejectRequiresResponseBeforeNetwork(t *testing.T) {
	svc, _, fake := newTestService(t)
	created := submit(t, svc)

	_, err := svc.Reject(context.Background(), created.ID, editrequest.DecisionRequest{})
	require.Error(t, err)
	assert.Zero(t, fake.count(fmt.Sprintf("/reject/%d", created.ID)))

	result, err := svc.Reject(context.Background(), created.ID, editrequest.DecisionRequest{
		HrResponse: "Door logs show a 5pm exit",
	})
	require.NoError(t, err)
	assert.Equal(t, editrequest.StatusRejected, result.Status)
}

func TestApproveWithoutResponse(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := submit(t, svc)

	result, err := svc.Approve(context.Background(), created.ID, editrequest.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, editrequest.StatusApproved, result.Status)
}

func TestResolvedRequestStaysResolved(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := submit(t, svc)

	_, err := svc.Approve(context.Background(), created.ID, editrequest.DecisionRequest{})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), created.ID, editrequest.DecisionRequest{HrResponse: "no"})
	assert.ErrorIs(t, err, editrequest.ErrRequestAlreadyProcessed)

	_, err = svc.Approve(context.Background(), created.ID, editrequest.DecisionRequest{})
	assert.ErrorIs(t, err, editrequest.ErrRequestAlreadyProcessed)
}

func TestOnlyAssignedReviewerMayDecide(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), editrequest.CreateRequest{
		TimelogID:    42,
		AssignedHrID: 8,
		Reason:       "Forgot to clock out, left at six",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, editrequest.DecisionRequest{})
	assert.ErrorIs(t, err, editrequest.ErrNotAssignedReviewer)

	_, err = svc.Reject(context.Background(), created.ID, editrequest.DecisionRequest{HrResponse: "no"})
	assert.ErrorIs(t, err, editrequest.ErrNotAssignedReviewer)
}

func TestDecisionOnMissingRequest(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), 999, editrequest.DecisionRequest{})
	assert.ErrorIs(t, err, editrequest.ErrRequestNotFound)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, editrequest.ErrRequestNotFound)
}

func TestResolutionReconcilesBothSides(t *testing.T) {
	svc, cache, fake := newTestService(t)
	ctx := context.Background()
	created := submit(t, svc)

	// Warm the employee and HR views plus the notifications family the
	// resolution will generate entries in.
	_, err := svc.MyRequests(ctx)
	require.NoError(t, err)
	_, err = svc.PendingRequests(ctx)
	require.NoError(t, err)

	var notifFetches atomic.Int32
	_, err = cache.Get(ctx, querycache.Key{Family: querycache.FamilyNotifications}, time.Minute, func(ctx context.Context) (any, error) {
		notifFetches.Add(1)
		return "notifications", nil
	})
	require.NoError(t, err)

	employeeHits := fake.count("/employee")
	pendingHits := fake.count("/hr/pending")

	_, err = svc.Approve(ctx, created.ID, editrequest.DecisionRequest{HrResponse: "Approved"})
	require.NoError(t, err)

	assert.Equal(t, employeeHits+1, fake.count("/employee"))
	assert.Equal(t, pendingHits+1, fake.count("/hr/pending"))
	assert.EqualValues(t, 2, notifFetches.Load())

	// The refreshed pending list no longer carries the request and is
	// served from cache.
	pending, err := svc.PendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, pendingHits+1, fake.count("/hr/pending"))
}

func TestHrStaffListing(t *testing.T) {
	svc, _, _ := newTestService(t)

	staff, err := svc.HrStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "hr.lee", staff[0].Username)
}

func TestGetByIDRejectsBadID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, editrequest.ErrRequestNotFound)
}
