package leave

import (
	"strings"
	"time"
)

// Type は休暇の種別です。
type Type string

const (
	TypePaid      Type = "paid"
	TypeUnpaid    Type = "unpaid"
	TypeSick      Type = "sick"
	TypeMaternity Type = "maternity"
)

// Status は休暇申請の状態です。
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Request は休暇申請です。StartDate と EndDate は日付単位で両端を含みます。
type Request struct {
	ID         int64
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Comment    string
	Status     Status
	CreatedAt  time.Time
}

// Covers は date が申請期間に含まれるかを返します。
func (r Request) Covers(date time.Time) bool {
	day := truncateDay(date)
	return !day.Before(truncateDay(r.StartDate)) && !day.After(truncateDay(r.EndDate))
}

// Label は休暇種別の表示名を返します。
func (t Type) Label() string {
	switch t {
	case TypePaid:
		return "Paid Leave"
	case TypeUnpaid:
		return "Unpaid Leave"
	case TypeSick:
		return "Sick Leave"
	case TypeMaternity:
		return "Maternity Leave"
	default:
		return string(t)
	}
}

// ParseType は大文字小文字を区別せずに休暇種別を解釈します。
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypePaid, TypeUnpaid, TypeSick, TypeMaternity:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// ParseDate は "2006-01-02" または RFC3339 形式の日付を解釈します。
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// TypeOn は date に該当する最初の申請の休暇種別を返します。
func TypeOn(date time.Time, requests []Request) (Type, bool) {
	for _, r := range requests {
		if r.Covers(date) {
			return r.Type, true
		}
	}
	return "", false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
