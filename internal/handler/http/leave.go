package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/handler/http/middleware"
	"github.com/peoplecore/hr-portal-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	gateway lifecycle.Gateway
}

func NewLeaveHandler(gateway lifecycle.Gateway) LeaveHandler {
	return &leaveHandlerImpl{
		gateway: gateway,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.SubmitLeave(r.Context(), actor, req, gatewayOptions(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "requestID")

	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.DecideLeave(r.Context(), actor, req, gatewayOptions(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	req := leave.CancelRequest{
		RequestID: chi.URLParam(r, "requestID"),
	}

	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.CancelLeave(r.Context(), actor, req, gatewayOptions(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.GetLeave(r.Context(), actor, chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("leave_type"); v != "" {
		filter.LeaveType = &v
	}

	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.ListLeave(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.Balance(r.Context(), actor, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyBalance implements LeaveHandler.
func (h *leaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	result, err := h.gateway.Balance(r.Context(), actor, actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
