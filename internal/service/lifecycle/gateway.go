package lifecycle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

type GatewayImpl struct {
	engine   attendance.Engine
	workflow leave.Workflow
	tx       lifecycle.TxManager
	idem     lifecycle.IdempotencyRepository
	clock    clock.Clock
	loc      *time.Location
}

func NewGateway(
	engine attendance.Engine,
	workflow leave.Workflow,
	tx lifecycle.TxManager,
	idem lifecycle.IdempotencyRepository,
	clk clock.Clock,
	loc *time.Location,
) lifecycle.Gateway {
	return &GatewayImpl{
		engine:   engine,
		workflow: workflow,
		tx:       tx,
		idem:     idem,
		clock:    clk,
		loc:      loc,
	}
}

// CheckIn implements lifecycle.Gateway.
func (g *GatewayImpl) CheckIn(ctx context.Context, actor staff.Actor, req attendance.CheckInRequest, opts lifecycle.Options) (attendance.RecordResponse, error) {
	req.EmployeeID = actor.EmployeeID
	if !staff.Allowed(staff.OpCheckIn, actor, req.EmployeeID) {
		return attendance.RecordResponse{}, staff.ErrUnauthorized
	}

	return runMutation(ctx, g, actor, string(staff.OpCheckIn), g.attendanceKey(req.EmployeeID), opts, http.StatusCreated, req,
		func(txCtx context.Context) (attendance.RecordResponse, error) {
			return g.engine.CheckIn(txCtx, req)
		})
}

// CheckOut implements lifecycle.Gateway.
func (g *GatewayImpl) CheckOut(ctx context.Context, actor staff.Actor, req attendance.CheckOutRequest, opts lifecycle.Options) (attendance.RecordResponse, error) {
	req.EmployeeID = actor.EmployeeID
	if !staff.Allowed(staff.OpCheckOut, actor, req.EmployeeID) {
		return attendance.RecordResponse{}, staff.ErrUnauthorized
	}

	return runMutation(ctx, g, actor, string(staff.OpCheckOut), g.attendanceKey(req.EmployeeID), opts, http.StatusOK, req,
		func(txCtx context.Context) (attendance.RecordResponse, error) {
			return g.engine.CheckOut(txCtx, req)
		})
}

// GetAttendance implements lifecycle.Gateway.
func (g *GatewayImpl) GetAttendance(ctx context.Context, actor staff.Actor, employeeID, date string) (attendance.RecordResponse, error) {
	if !staff.Allowed(staff.OpViewAttendance, actor, employeeID) {
		return attendance.RecordResponse{}, staff.ErrUnauthorized
	}
	return g.engine.Get(ctx, employeeID, date)
}

// ListAttendance implements lifecycle.Gateway. Non-privileged actors get
// their own records regardless of the requested filter.
func (g *GatewayImpl) ListAttendance(ctx context.Context, actor staff.Actor, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if !staff.Allowed(staff.OpListAttendance, actor, "") {
		employeeID := actor.EmployeeID
		filter.EmployeeID = &employeeID
	}
	return g.engine.List(ctx, filter)
}

// SubmitLeave implements lifecycle.Gateway.
func (g *GatewayImpl) SubmitLeave(ctx context.Context, actor staff.Actor, req leave.SubmitRequest, opts lifecycle.Options) (leave.RequestResponse, error) {
	req.EmployeeID = actor.EmployeeID
	if !staff.Allowed(staff.OpSubmitLeave, actor, req.EmployeeID) {
		return leave.RequestResponse{}, staff.ErrUnauthorized
	}

	return runMutation(ctx, g, actor, string(staff.OpSubmitLeave), "leave:submit:"+req.EmployeeID, opts, http.StatusCreated, req,
		func(txCtx context.Context) (leave.RequestResponse, error) {
			return g.workflow.Submit(txCtx, req)
		})
}

// DecideLeave implements lifecycle.Gateway.
func (g *GatewayImpl) DecideLeave(ctx context.Context, actor staff.Actor, req leave.DecideRequest, opts lifecycle.Options) (leave.RequestResponse, error) {
	if !staff.Allowed(staff.OpDecideLeave, actor, "") {
		return leave.RequestResponse{}, staff.ErrUnauthorized
	}
	req.DecidedBy = actor.EmployeeID

	return runMutation(ctx, g, actor, string(staff.OpDecideLeave), "leave:"+req.RequestID, opts, http.StatusOK, req,
		func(txCtx context.Context) (leave.RequestResponse, error) {
			return g.workflow.Decide(txCtx, req)
		})
}

// CancelLeave implements lifecycle.Gateway. Ownership is checked against
// the request being cancelled, so the lookup happens before the gate.
func (g *GatewayImpl) CancelLeave(ctx context.Context, actor staff.Actor, req leave.CancelRequest, opts lifecycle.Options) (leave.RequestResponse, error) {
	target, err := g.workflow.Get(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !staff.Allowed(staff.OpCancelLeave, actor, target.EmployeeID) {
		return leave.RequestResponse{}, staff.ErrUnauthorized
	}
	req.CancelledBy = actor.EmployeeID

	return runMutation(ctx, g, actor, string(staff.OpCancelLeave), "leave:"+req.RequestID, opts, http.StatusOK, req,
		func(txCtx context.Context) (leave.RequestResponse, error) {
			return g.workflow.Cancel(txCtx, req)
		})
}

// GetLeave implements lifecycle.Gateway.
func (g *GatewayImpl) GetLeave(ctx context.Context, actor staff.Actor, requestID string) (leave.RequestResponse, error) {
	resp, err := g.workflow.Get(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !staff.Allowed(staff.OpViewLeave, actor, resp.EmployeeID) {
		return leave.RequestResponse{}, staff.ErrUnauthorized
	}
	return resp, nil
}

// Balance implements lifecycle.Gateway.
func (g *GatewayImpl) Balance(ctx context.Context, actor staff.Actor, employeeID string) (leave.BalanceResponse, error) {
	if !staff.Allowed(staff.OpViewBalance, actor, employeeID) {
		return leave.BalanceResponse{}, staff.ErrUnauthorized
	}
	return g.workflow.Balance(ctx, employeeID)
}

// ListLeave implements lifecycle.Gateway. Same fallback as attendance:
// everyone may list their own requests.
func (g *GatewayImpl) ListLeave(ctx context.Context, actor staff.Actor, filter leave.RequestFilter) (leave.ListResponse, error) {
	if !staff.Allowed(staff.OpListLeave, actor, "") {
		employeeID := actor.EmployeeID
		filter.EmployeeID = &employeeID
	}
	return g.workflow.List(ctx, filter)
}

// attendanceKey serializes check-in and check-out for one employee-day.
func (g *GatewayImpl) attendanceKey(employeeID string) string {
	date := g.clock.Now().UTC().In(g.loc).Format(validator.DateLayout)
	return fmt.Sprintf("attendance:%s:%s", employeeID, date)
}

// runMutation wraps one state change in a keyed transaction with
// idempotency. A replayed key with the same fingerprint short-circuits
// to the stored response; the same key with a different body is an
// error, never a silent re-run.
func runMutation[T any](
	ctx context.Context,
	g *GatewayImpl,
	actor staff.Actor,
	operation, txKey string,
	opts lifecycle.Options,
	successStatus int,
	payload any,
	fn func(txCtx context.Context) (T, error),
) (T, error) {
	var result T

	err := g.tx.RunInKey(ctx, txKey, func(txCtx context.Context) error {
		if opts.IdempotencyKey != "" {
			rec, err := g.idem.Get(txCtx, opts.IdempotencyKey, actor.EmployeeID)
			if err == nil {
				if rec.RequestHash != fingerprint(operation, txKey, payload) {
					slog.Warn("Idempotency key reused with a different request",
						"operation", operation, "actor_id", actor.EmployeeID)
					return lifecycle.ErrIdempotencyMismatch
				}
				slog.Info("Replaying stored idempotent response",
					"operation", operation, "actor_id", actor.EmployeeID)
				return json.Unmarshal(rec.ResponseBody, &result)
			}
			if !errors.Is(err, lifecycle.ErrIdempotencyNotFound) {
				return err
			}
		}

		var err error
		result, err = fn(txCtx)
		if err != nil {
			return err
		}

		if opts.IdempotencyKey != "" {
			body, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("failed to snapshot response: %w", err)
			}
			return g.idem.Save(txCtx, lifecycle.IdempotencyRecord{
				Key:          opts.IdempotencyKey,
				ActorID:      actor.EmployeeID,
				Operation:    operation,
				RequestHash:  fingerprint(operation, txKey, payload),
				StatusCode:   successStatus,
				ResponseBody: body,
			})
		}

		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// fingerprint hashes the operation, the transaction key and the body so
// key reuse across different requests is detectable. The transaction key
// carries the target identity (employee-day or request ID), which the
// body alone does not: route-bound fields are excluded from the JSON.
func fingerprint(operation, txKey string, payload any) string {
	body, _ := json.Marshal(payload)
	sum := sha256.Sum256([]byte(operation + "\n" + txKey + "\n" + string(body)))
	return hex.EncodeToString(sum[:])
}
