package joborder

import (
	"strings"
	"time"
)

// Status は求人案件の状態を表します。
type Status string

const (
	StatusOpen   Status = "Open"
	StatusHold   Status = "Hold"
	StatusClosed Status = "Closed"
	StatusPlaced Status = "Placed"
)

// Priority は求人案件の優先度を表します。
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// JobOrder は求人案件エンティティです。
type JobOrder struct {
	ID                  string
	ClientName          string
	JobTitle            string
	Location            string
	Salary              float64
	Status              Status
	Priority            Priority
	ReceivedDate        *time.Time
	DueDate             *time.Time
	PlacementDate       *time.Time
	PotentialCommission float64
	// EarnedCommission は成約日が記録されていれば PotentialCommission と同額です。
	// ステータスではなく成約日に連動するため、Placed から戻しても残ります。
	EarnedCommission    float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsPlaced は成約日が記録済みかどうかを返します。
func (j *JobOrder) IsPlaced() bool {
	return j.PlacementDate != nil
}

// Clone は JobOrder のディープコピーを返します。
func (j *JobOrder) Clone() *JobOrder {
	if j == nil {
		return nil
	}
	c := *j
	c.ReceivedDate = cloneTime(j.ReceivedDate)
	c.DueDate = cloneTime(j.DueDate)
	c.PlacementDate = cloneTime(j.PlacementDate)
	return &c
}

// ParseStatus は大文字小文字を区別せずにステータスを解釈します。
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return StatusOpen, nil
	case "hold":
		return StatusHold, nil
	case "closed":
		return StatusClosed, nil
	case "placed":
		return StatusPlaced, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ParsePriority は大文字小文字を区別せずに優先度を解釈します。
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusOpen, StatusHold, StatusClosed, StatusPlaced:
		return true
	default:
		return false
	}
}

func isValidPriority(priority Priority) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
