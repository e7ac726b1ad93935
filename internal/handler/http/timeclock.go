package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/timelog"
	"github.com/techstaffhub/attendance-kiosk/internal/handler/http/response"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/camera"
	"github.com/techstaffhub/attendance-kiosk/internal/service/timeclock"
)

type TimeclockHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	TotalHours(w http.ResponseWriter, r *http.Request)
	All(w http.ResponseWriter, r *http.Request)
	Incomplete(w http.ResponseWriter, r *http.Request)
	ClockedIn(w http.ResponseWriter, r *http.Request)
	OnBreak(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	timeclockService timelog.TimeclockService
	poller           *timeclock.StatusPoller
	device           camera.Device
}

func NewTimeclockHandler(timeclockService timelog.TimeclockService, poller *timeclock.StatusPoller, device camera.Device) TimeclockHandler {
	return &timeclockHandlerImpl{
		timeclockService: timeclockService,
		poller:           poller,
		device:           device,
	}
}

// statusPayload is what the kiosk display renders: the current status,
// the open log, and exactly the actions valid in that status.
type statusPayload struct {
	Status         timelog.Status   `json:"status"`
	Timelog        *timelog.Timelog `json:"timelog,omitempty"`
	AllowedActions []timelog.Action `json:"allowedActions"`
	Loading        bool             `json:"loading"`
}

// Status implements TimeclockHandler.
func (h *timeclockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.CurrentStatus(r.Context())
	if err != nil {
		// Serve the last known value while upstream is unreachable.
		if latest, known := h.poller.Latest(); known {
			result = latest
		} else {
			response.HandleError(w, err)
			return
		}
	}

	response.Success(w, statusPayload{
		Status:         result.Status,
		Timelog:        result.Timelog,
		AllowedActions: timelog.AllowedActions(result.Status),
		Loading:        h.poller.Loading(),
	})
}

// Today implements TimeclockHandler.
func (h *timeclockHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.TodayLog(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Monthly implements TimeclockHandler.
func (h *timeclockHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	filter := timelog.MonthlyFilter{
		Year:  getIntQueryParam(r, "year", 0),
		Month: getIntQueryParam(r, "month", 0),
	}

	result, err := h.timeclockService.MonthlyLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Range implements TimeclockHandler.
func (h *timeclockHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	filter := timelog.RangeFilter{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	result, err := h.timeclockService.RangeLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// All implements TimeclockHandler.
func (h *timeclockHandlerImpl) All(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.AllLogs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Incomplete implements TimeclockHandler.
func (h *timeclockHandlerImpl) Incomplete(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.IncompleteLogs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ClockedIn implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockedIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.ClockedInUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// OnBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) OnBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.OnBreakUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// TotalHours implements TimeclockHandler.
func (h *timeclockHandlerImpl) TotalHours(w http.ResponseWriter, r *http.Request) {
	filter := timelog.RangeFilter{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	total, err := h.timeclockService.TotalHours(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, timelog.TotalHoursResponse{TotalHours: total})
}

// ClockIn implements TimeclockHandler. The capture gate runs first: a
// clock-in is never dispatched without a confirmed photo, and the
// camera stream is released on every path.
func (h *timeclockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	photo, err := camera.CapturePhoto(r.Context(), h.device)
	if err != nil {
		slog.Error("Clock-in photo capture failed", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.ClockIn(r.Context(), photo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	photo, err := camera.CapturePhoto(r.Context(), h.device)
	if err != nil {
		slog.Error("Clock-out photo capture failed", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.timeclockService.ClockOut(r.Context(), photo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// StartBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.StartBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.EndBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", result)
}

// Adjust implements TimeclockHandler.
func (h *timeclockHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	var req timelog.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode adjust request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timeclockService.Adjust(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timelog adjusted", result)
}

// Delete implements TimeclockHandler.
func (h *timeclockHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	timelogID, err := strconv.ParseInt(chi.URLParam(r, "timelogID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid timelog ID", nil)
		return
	}

	if err := h.timeclockService.Delete(r.Context(), timelogID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timelog deleted", nil)
}
