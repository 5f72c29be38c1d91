package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
	"github.com/ogurasousui/recruit-dashboard/internal/core/kpi"
)

// snapshotFile はダッシュボード集計用のスナップショットファイルです。JSON も YAML として読めます。
type snapshotFile struct {
	Jobs       []jobRecord      `yaml:"jobs"`
	Activities []activityRecord `yaml:"activities"`
}

type jobRecord struct {
	ID            string  `yaml:"id"`
	ClientName    string  `yaml:"clientName"`
	JobTitle      string  `yaml:"jobTitle"`
	Location      string  `yaml:"location"`
	Salary        float64 `yaml:"salary"`
	Status        string  `yaml:"status"`
	Priority      string  `yaml:"priority"`
	ReceivedDate  string  `yaml:"receivedDate"`
	DueDate       string  `yaml:"dueDate"`
	PlacementDate string  `yaml:"placementDate"`
}

type activityRecord struct {
	ID          string         `yaml:"id"`
	JobID       string         `yaml:"jobId"`
	RecruiterID string         `yaml:"recruiterId"`
	Timestamp   string         `yaml:"timestamp"`
	Counters    map[string]int `yaml:"counters"`
	Notes       string         `yaml:"notes"`
}

type jobSnapshot []joborder.JobOrder

func (s jobSnapshot) Snapshot(context.Context) ([]joborder.JobOrder, error) {
	out := make([]joborder.JobOrder, 0, len(s))
	for i := range s {
		out = append(out, *s[i].Clone())
	}
	return out, nil
}

type activitySnapshot []activity.Entry

func (s activitySnapshot) Snapshot(context.Context) ([]activity.Entry, error) {
	return append([]activity.Entry(nil), s...), nil
}

// loadSnapshot はファイルを読み込み、手数料率 rate で見込み手数料を算出します。
// 成約済みで成約日が無い案件は now を成約日とします。
func loadSnapshot(path string, rate float64, now time.Time) (jobSnapshot, activitySnapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, nil, fmt.Errorf("parse snapshot: %w", err)
	}

	calc, err := commission.NewCalculator(rate)
	if err != nil {
		return nil, nil, err
	}

	jobs := make(jobSnapshot, 0, len(file.Jobs))
	for i, rec := range file.Jobs {
		job, err := rec.toJobOrder(calc, now)
		if err != nil {
			return nil, nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		jobs = append(jobs, job)
	}

	entries := make(activitySnapshot, 0, len(file.Activities))
	for i, rec := range file.Activities {
		entry, err := rec.toEntry()
		if err != nil {
			return nil, nil, fmt.Errorf("activities[%d]: %w", i, err)
		}
		entries = append(entries, entry)
	}

	return jobs, entries, nil
}

func (r jobRecord) toJobOrder(calc commission.Calculator, now time.Time) (joborder.JobOrder, error) {
	job := joborder.JobOrder{
		ID:         r.ID,
		ClientName: strings.TrimSpace(r.ClientName),
		JobTitle:   strings.TrimSpace(r.JobTitle),
		Location:   r.Location,
		Salary:     r.Salary,
		Status:     joborder.StatusOpen,
		Priority:   joborder.PriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if r.Status != "" {
		s, err := joborder.ParseStatus(r.Status)
		if err != nil {
			return job, err
		}
		job.Status = s
	}
	if r.Priority != "" {
		p, err := joborder.ParsePriority(r.Priority)
		if err != nil {
			return job, err
		}
		job.Priority = p
	}

	var err error
	if job.ReceivedDate, err = parseOptionalDate(r.ReceivedDate); err != nil {
		return job, fmt.Errorf("receivedDate: %w", err)
	}
	if job.DueDate, err = parseOptionalDate(r.DueDate); err != nil {
		return job, fmt.Errorf("dueDate: %w", err)
	}
	if job.PlacementDate, err = parseOptionalDate(r.PlacementDate); err != nil {
		return job, fmt.Errorf("placementDate: %w", err)
	}

	if job.PotentialCommission, err = calc.Commission(job.Salary); err != nil {
		return job, fmt.Errorf("salary: %w", err)
	}
	if job.Status == joborder.StatusPlaced && job.PlacementDate == nil {
		placed := now
		job.PlacementDate = &placed
	}
	if job.IsPlaced() {
		job.EarnedCommission = job.PotentialCommission
	}
	return job, nil
}

func (r activityRecord) toEntry() (activity.Entry, error) {
	ts, err := parseDate(r.Timestamp)
	if err != nil {
		return activity.Entry{}, fmt.Errorf("timestamp: %w", err)
	}

	var c activity.Counters
	dst := map[kpi.KPI]*int{
		kpi.CVsSourced:           &c.CVsSourced,
		kpi.ScreeningsConducted:  &c.ScreeningsConducted,
		kpi.SubmissionsToClients: &c.SubmissionsToClients,
		kpi.InHouseInterviews:    &c.InHouseInterviews,
		kpi.ClientInterviews:     &c.ClientInterviews,
		kpi.PlacementsMade:       &c.PlacementsMade,
		kpi.TimeToFill:           &c.TimeToFill,
	}
	for key, v := range r.Counters {
		p, ok := dst[kpi.KPI(key)]
		if !ok {
			return activity.Entry{}, fmt.Errorf("counters.%s: unknown counter", key)
		}
		if v < 0 {
			return activity.Entry{}, fmt.Errorf("counters.%s: %w", key, activity.ErrInvalidCounter)
		}
		*p = v
	}

	return activity.Entry{
		ID:          r.ID,
		JobID:       r.JobID,
		RecruiterID: r.RecruiterID,
		Timestamp:   ts,
		WeekKey:     activity.WeekKey(ts),
		Counters:    c,
		Notes:       r.Notes,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t.UTC(), nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
