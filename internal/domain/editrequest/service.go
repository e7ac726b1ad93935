package editrequest

import (
	"context"
)

// EditRequestService defines the timelog correction workflow: employee
// submission plus HR review.
type EditRequestService interface {
	// Create submits a correction request. Validation failures block
	// the request before it reaches the network.
	Create(ctx context.Context, req CreateRequest) (*EditRequest, error)

	// HrStaff lists the reviewers selectable as assignee.
	HrStaff(ctx context.Context) ([]HrStaff, error)

	// MyRequests lists the signed-in employee's requests.
	MyRequests(ctx context.Context) ([]EditRequest, error)

	// AssignedRequests lists all requests assigned to the signed-in HR
	// reviewer.
	AssignedRequests(ctx context.Context) ([]EditRequest, error)

	// PendingRequests lists the unresolved requests assigned to the
	// signed-in HR reviewer.
	PendingRequests(ctx context.Context) ([]EditRequest, error)

	// GetByID returns one request.
	GetByID(ctx context.Context, requestID int64) (*EditRequest, error)

	// Approve resolves a pending request. The HR response is optional.
	Approve(ctx context.Context, requestID int64, decision DecisionRequest) (*EditRequest, error)

	// Reject resolves a pending request. The HR response is required.
	Reject(ctx context.Context, requestID int64, decision DecisionRequest) (*EditRequest, error)
}
