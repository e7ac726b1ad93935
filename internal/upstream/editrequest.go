package upstream

import (
	"context"
	"fmt"

	"github.com/techstaffhub/attendance-kiosk/internal/domain/editrequest"
)

// EditRequestClient talks to the timelog-edit-request feature area.
type EditRequestClient struct {
	*Client
}

func NewEditRequestClient(base *Client) *EditRequestClient {
	return &EditRequestClient{Client: base}
}

func (c *EditRequestClient) Create(ctx context.Context, req editrequest.CreateRequest) (*editrequest.EditRequest, error) {
	var result editrequest.EditRequest
	if err := c.post(ctx, "/create", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HrStaff lists the HR reviewers an employee can assign a request to.
func (c *EditRequestClient) HrStaff(ctx context.Context) ([]editrequest.HrStaff, error) {
	var result []editrequest.HrStaff
	if err := c.get(ctx, "/hr-staff", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ByEmployee lists the signed-in employee's own requests.
func (c *EditRequestClient) ByEmployee(ctx context.Context) ([]editrequest.EditRequest, error) {
	var result []editrequest.EditRequest
	if err := c.get(ctx, "/employee", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ByHr lists the requests assigned to the signed-in HR reviewer.
func (c *EditRequestClient) ByHr(ctx context.Context) ([]editrequest.EditRequest, error) {
	var result []editrequest.EditRequest
	if err := c.get(ctx, "/hr", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *EditRequestClient) PendingByHr(ctx context.Context) ([]editrequest.EditRequest, error) {
	var result []editrequest.EditRequest
	if err := c.get(ctx, "/hr/pending", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *EditRequestClient) ByID(ctx context.Context, requestID int64) (*editrequest.EditRequest, error) {
	var result editrequest.EditRequest
	if err := c.get(ctx, fmt.Sprintf("/%d", requestID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *EditRequestClient) Approve(ctx context.Context, requestID int64, decision editrequest.DecisionRequest) (*editrequest.EditRequest, error) {
	var result editrequest.EditRequest
	if err := c.put(ctx, fmt.Sprintf("/approve/%d", requestID), decision, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *EditRequestClient) Reject(ctx context.Context, requestID int64, decision editrequest.DecisionRequest) (*editrequest.EditRequest, error) {
	var result editrequest.EditRequest
	if err := c.put(ctx, fmt.Sprintf("/reject/%d", requestID), decision, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
