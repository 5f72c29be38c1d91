package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/dto"
	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

// LeaveHandler は休暇申請 API の gin ハンドラです。
type LeaveHandler struct {
	svc leave.UseCase
}

// NewLeaveHandler は LeaveHandler を生成します。
func NewLeaveHandler(svc leave.UseCase) *LeaveHandler {
	return &LeaveHandler{svc: svc}
}

// Request は承認待ちの休暇申請を登録します。
func (h *LeaveHandler) Request(c *gin.Context) {
	h.submit(c, h.svc.RequestAbsence, "Absence request submitted successfully", "Failed to submit absence request")
}

// SkipApproval は承認済みの休暇を登録します。
func (h *LeaveHandler) SkipApproval(c *gin.Context) {
	h.submit(c, h.svc.SkipApproval, "Absence request approved successfully", "Failed to process absence request")
}

// List は従業員の休暇申請一覧を返します。
func (h *LeaveHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employeeId")

	requests, err := h.svc.ListRequests(ctx, employeeID)
	if err != nil {
		respondError(c, err, "Failed to fetch leave requests")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Success: true, Data: dto.ToLeaveRequestResponses(requests)})
}

// LeaveOn は指定日 (省略時は当日) に取得中の休暇種別を返します。
func (h *LeaveHandler) LeaveOn(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employeeId")

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := leave.ParseDate(raw)
		if err != nil {
			respondError(c, err, "Failed to fetch leave status")
			return
		}
		date = parsed
	}

	t, ok, err := h.svc.LeaveOn(ctx, employeeID, date)
	if err != nil {
		respondError(c, err, "Failed to fetch leave status")
		return
	}

	resp := dto.LeaveOnResponse{EmployeeID: employeeID, Date: date.Format(time.DateOnly), OnLeave: ok}
	if ok {
		resp.Type = string(t)
		resp.TypeLabel = t.Label()
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Data: resp})
}

func (h *LeaveHandler) submit(c *gin.Context, register func(ctx context.Context, in leave.RequestAbsenceInput) (*leave.Request, error), okMessage, failMessage string) {
	ctx := c.Request.Context()

	var req dto.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: failMessage, Error: err.Error()})
		return
	}

	start, err := leave.ParseDate(req.StartDate)
	if err != nil {
		respondError(c, err, failMessage)
		return
	}
	end, err := leave.ParseDate(req.EndDate)
	if err != nil {
		respondError(c, err, failMessage)
		return
	}

	created, err := register(ctx, leave.RequestAbsenceInput{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Comment:    req.Comment,
	})
	if err != nil {
		respondError(c, err, failMessage)
		return
	}

	zerolog.Ctx(ctx).Info().
		Int64("id", created.ID).
		Str("employee_id", created.EmployeeID).
		Str("status", string(created.Status)).
		Msg("leave request stored")
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: okMessage, Data: dto.ToLeaveRequestResponse(created)})
}

func respondError(c *gin.Context, err error, message string) {
	code := http.StatusInternalServerError
	if isValidationError(err) {
		code = http.StatusBadRequest
	} else {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(message)
	}
	c.JSON(code, dto.Envelope{Success: false, Message: message, Error: err.Error()})
}

func isValidationError(err error) bool {
	return errors.Is(err, leave.ErrInvalidEmployeeID) ||
		errors.Is(err, leave.ErrInvalidType) ||
		errors.Is(err, leave.ErrInvalidDate) ||
		errors.Is(err, leave.ErrInvalidDateRange)
}
