package activity

import (
	"fmt"
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/kpi"
)

// Counters は週次活動のカウンタ群です。
type Counters struct {
	CVsSourced           int
	ScreeningsConducted  int
	SubmissionsToClients int
	InHouseInterviews    int
	ClientInterviews     int
	PlacementsMade       int
	TimeToFill           int
}

// Add はカウンタを加算した結果を返します。負数は 0 として扱います。
func (c Counters) Add(other Counters) Counters {
	return Counters{
		CVsSourced:           c.CVsSourced + nonNegative(other.CVsSourced),
		ScreeningsConducted:  c.ScreeningsConducted + nonNegative(other.ScreeningsConducted),
		SubmissionsToClients: c.SubmissionsToClients + nonNegative(other.SubmissionsToClients),
		InHouseInterviews:    c.InHouseInterviews + nonNegative(other.InHouseInterviews),
		ClientInterviews:     c.ClientInterviews + nonNegative(other.ClientInterviews),
		PlacementsMade:       c.PlacementsMade + nonNegative(other.PlacementsMade),
		TimeToFill:           c.TimeToFill + nonNegative(other.TimeToFill),
	}
}

// Actuals は KPI スコアリング用の実績値に変換します。
func (c Counters) Actuals() kpi.Actuals {
	return kpi.Actuals{
		kpi.CVsSourced:           float64(c.CVsSourced),
		kpi.ScreeningsConducted:  float64(c.ScreeningsConducted),
		kpi.SubmissionsToClients: float64(c.SubmissionsToClients),
		kpi.InHouseInterviews:    float64(c.InHouseInterviews),
		kpi.ClientInterviews:     float64(c.ClientInterviews),
		kpi.PlacementsMade:       float64(c.PlacementsMade),
		kpi.TimeToFill:           float64(c.TimeToFill),
	}
}

func (c Counters) validate() error {
	values := []struct {
		name  string
		value int
	}{
		{"cvs_sourced", c.CVsSourced},
		{"screenings_conducted", c.ScreeningsConducted},
		{"submissions_to_clients", c.SubmissionsToClients},
		{"in_house_interviews", c.InHouseInterviews},
		{"client_interviews", c.ClientInterviews},
		{"placements_made", c.PlacementsMade},
		{"time_to_fill", c.TimeToFill},
	}
	for _, v := range values {
		if v.value < 0 {
			return fmt.Errorf("%s: %w", v.name, ErrInvalidCounter)
		}
	}
	return nil
}

// Entry は求人案件ごとの週次活動記録です。
type Entry struct {
	ID          string
	JobID       string
	RecruiterID string
	Timestamp   time.Time
	WeekKey     string
	Counters    Counters
	Notes       string
}

// Clone は Entry のコピーを返します。
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// WeekKey は ISO 週 ("2024-W03") を返します。週は月曜日始まりです。
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekBounds は t を含む週の開始 (月曜 0:00) と終了 (日曜 23:59:59.999999999) を返します。
func WeekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
