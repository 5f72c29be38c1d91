package dto

import (
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

// AbsenceRequest は休暇申請 API のリクエストボディです。
type AbsenceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Type       string `json:"type" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Comment    string `json:"comment"`
}

// LeaveRequestResponse は休暇申請のレスポンス表現です。
type LeaveRequestResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	TypeLabel  string `json:"typeLabel"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Comment    string `json:"comment"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// LeaveOnResponse は指定日の休暇取得状況です。
type LeaveOnResponse struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	OnLeave    bool   `json:"onLeave"`
	Type       string `json:"type,omitempty"`
	TypeLabel  string `json:"typeLabel,omitempty"`
}

// Envelope は API 共通のレスポンス形式です。
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ToLeaveRequestResponse(r *leave.Request) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       string(r.Type),
		TypeLabel:  r.Type.Label(),
		StartDate:  r.StartDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		Comment:    r.Comment,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToLeaveRequestResponses(requests []*leave.Request) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToLeaveRequestResponse(r))
	}
	return out
}
