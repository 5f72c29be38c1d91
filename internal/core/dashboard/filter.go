package dashboard

import (
	"strings"
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
)

// All は絞り込みを行わないことを表す番兵値です。
const All = "all"

// Period は成約日による期間絞り込みの単位です。
type Period string

const (
	PeriodAll     Period = All
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod は期間指定を解釈します。空文字は PeriodAll として扱います。
func ParsePeriod(raw string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", All:
		return PeriodAll, nil
	case "week":
		return PeriodWeek, nil
	case "month":
		return PeriodMonth, nil
	case "quarter":
		return PeriodQuarter, nil
	case "year":
		return PeriodYear, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// windowStart は now から遡った期間の開始時刻を返します。
func (p Period) windowStart(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return subMonths(now, 1), true
	case PeriodQuarter:
		return subMonths(now, 3), true
	case PeriodYear:
		return subMonths(now, 12), true
	default:
		return time.Time{}, false
	}
}

// subMonths は n か月前の同日を返します。対象月に同日がない場合は月末日に丸めます。
func subMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// FilterState はダッシュボードの絞り込み条件です。各項目は空文字または All で無効になります。
type FilterState struct {
	Period     Period
	Status     string
	JobTitle   string
	ClientName string
}

// Normalize は空の項目を All に揃えた FilterState を返します。
func (f FilterState) Normalize() FilterState {
	f.Period = Period(strings.ToLower(orAll(string(f.Period))))
	f.Status = orAll(f.Status)
	f.JobTitle = orAll(f.JobTitle)
	f.ClientName = orAll(f.ClientName)
	return f
}

// Filter は条件をすべて満たす求人案件だけを返します。入力は変更しません。
func Filter(jobs []joborder.JobOrder, f FilterState, now time.Time) []joborder.JobOrder {
	f = f.Normalize()
	from, dated := f.Period.windowStart(now)

	out := make([]joborder.JobOrder, 0, len(jobs))
	for _, job := range jobs {
		if f.Status != All && !strings.EqualFold(string(job.Status), f.Status) {
			continue
		}
		if f.JobTitle != All && job.JobTitle != f.JobTitle {
			continue
		}
		if f.ClientName != All && job.ClientName != f.ClientName {
			continue
		}
		if dated {
			if job.PlacementDate == nil {
				continue
			}
			placed := *job.PlacementDate
			if placed.Before(from) || placed.After(now) {
				continue
			}
		}
		out = append(out, job)
	}

	return out
}

func orAll(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, All) {
		return All
	}
	return v
}
