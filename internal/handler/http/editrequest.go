package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/editrequest"
	"github.com/techstaffhub/attendance-kiosk/internal/handler/http/response"
)

type EditRequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	HrStaff(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	AssignedRequests(w http.ResponseWriter, r *http.Request)
	PendingRequests(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type editRequestHandlerImpl struct {
	editRequestService editrequest.EditRequestService
}

func NewEditRequestHandler(editRequestService editrequest.EditRequestService) EditRequestHandler {
	return &editRequestHandlerImpl{
		editRequestService: editRequestService,
	}
}

// Create implements EditRequestHandler.
func (h *editRequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req editrequest.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode edit request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.editRequestService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Edit request submitted", result)
}

// HrStaff implements EditRequestHandler.
func (h *editRequestHandlerImpl) HrStaff(w http.ResponseWriter, r *http.Request) {
	result, err := h.editRequestService.HrStaff(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// MyRequests implements EditRequestHandler.
func (h *editRequestHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.editRequestService.MyRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// AssignedRequests implements EditRequestHandler.
func (h *editRequestHandlerImpl) AssignedRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.editRequestService.AssignedRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// PendingRequests implements EditRequestHandler.
func (h *editRequestHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.editRequestService.PendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Get implements EditRequestHandler.
func (h *editRequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	result, err := h.editRequestService.GetByID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Approve implements EditRequestHandler.
func (h *editRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	var decision editrequest.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		slog.Error("Failed to decode approve decision", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.editRequestService.Approve(r.Context(), requestID, decision)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Edit request approved", result)
}

// Reject implements EditRequestHandler.
func (h *editRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	var decision editrequest.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		slog.Error("Failed to decode reject decision", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.editRequestService.Reject(r.Context(), requestID, decision)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Edit request rejected", result)
}
