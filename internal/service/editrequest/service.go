package editrequest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/editrequest"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/querycache"
	"github.com/techstaffhub/attendance-kiosk/internal/upstream"
)

const listTTL = time.Minute

// resolutionFamilies are invalidated and refetched when an HR reviewer
// approves or rejects a request. The resolution also generates a
// notification for the requesting employee, so the notifications family
// is included.
var resolutionFamilies = []querycache.Family{
	querycache.FamilyEditRequestsEmployee,
	querycache.FamilyEditRequestsHr,
	querycache.FamilyNotifications,
}

type EditRequestServiceImpl struct {
	api   *upstream.EditRequestClient
	cache *querycache.Cache
}

func NewEditRequestService(api *upstream.EditRequestClient, cache *querycache.Cache) editrequest.EditRequestService {
	return &EditRequestServiceImpl{
		api:   api,
		cache: cache,
	}
}

// Create implements editrequest.EditRequestService. Validation happens
// before any network call: an empty reason or a missing assignee never
// reaches the upstream.
func (s *EditRequestServiceImpl) Create(ctx context.Context, req editrequest.CreateRequest) (*editrequest.EditRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.reconcile(ctx, querycache.FamilyEditRequestsEmployee, querycache.FamilyEditRequestsHr)
	return result, nil
}

// HrStaff implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) HrStaff(ctx context.Context) ([]editrequest.HrStaff, error) {
	return s.api.HrStaff(ctx)
}

// MyRequests implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) MyRequests(ctx context.Context) ([]editrequest.EditRequest, error) {
	key := querycache.Key{Family: querycache.FamilyEditRequestsEmployee}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.ByEmployee(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]editrequest.EditRequest), nil
}

// AssignedRequests implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) AssignedRequests(ctx context.Context) ([]editrequest.EditRequest, error) {
	key := querycache.Key{Family: querycache.FamilyEditRequestsHr, Params: "assigned"}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.ByHr(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]editrequest.EditRequest), nil
}

// PendingRequests implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) PendingRequests(ctx context.Context) ([]editrequest.EditRequest, error) {
	key := querycache.Key{Family: querycache.FamilyEditRequestsHr, Params: "pending"}
	value, err := s.cache.Get(ctx, key, listTTL, func(ctx context.Context) (any, error) {
		return s.api.PendingByHr(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]editrequest.EditRequest), nil
}

// GetByID implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) GetByID(ctx context.Context, requestID int64) (*editrequest.EditRequest, error) {
	if requestID <= 0 {
		return nil, editrequest.ErrRequestNotFound
	}

	result, err := s.api.ByID(ctx, requestID)
	if err != nil {
		return nil, reviewError(err)
	}
	return result, nil
}

// Approve implements editrequest.EditRequestService. The upstream
// enforces that only the assigned reviewer may act and that resolved
// requests stay resolved.
func (s *EditRequestServiceImpl) Approve(ctx context.Context, requestID int64, decision editrequest.DecisionRequest) (*editrequest.EditRequest, error) {
	if requestID <= 0 {
		return nil, editrequest.ErrRequestNotFound
	}
	if err := decision.ValidateForApprove(); err != nil {
		return nil, err
	}

	result, err := s.api.Approve(ctx, requestID, decision)
	if err != nil {
		return nil, reviewError(err)
	}

	s.reconcile(ctx, resolutionFamilies...)
	return result, nil
}

// Reject implements editrequest.EditRequestService. A rejection
// requires a response text; this is checked before the network call.
func (s *EditRequestServiceImpl) Reject(ctx context.Context, requestID int64, decision editrequest.DecisionRequest) (*editrequest.EditRequest, error) {
	if requestID <= 0 {
		return nil, editrequest.ErrRequestNotFound
	}
	if err := decision.ValidateForReject(); err != nil {
		return nil, err
	}

	result, err := s.api.Reject(ctx, requestID, decision)
	if err != nil {
		return nil, reviewError(err)
	}

	s.reconcile(ctx, resolutionFamilies...)
	return result, nil
}

func (s *EditRequestServiceImpl) reconcile(ctx context.Context, families ...querycache.Family) {
	if err := s.cache.Reconcile(ctx, families...); err != nil {
		slog.Warn("cache refetch after edit request mutation failed", "error", err)
	}
}

// reviewError translates upstream review rejections into domain
// sentinels. A 409 means the request was already resolved, a 403 means
// the caller is not the assigned reviewer, a 404 means the request does
// not exist. Anything else passes through verbatim.
func reviewError(err error) error {
	switch {
	case upstream.IsStatus(err, http.StatusNotFound):
		return editrequest.ErrRequestNotFound
	case upstream.IsStatus(err, http.StatusConflict):
		return editrequest.ErrRequestAlreadyProcessed
	case upstream.IsStatus(err, http.StatusForbidden):
		return editrequest.ErrNotAssignedReviewer
	}
	return err
}
