package activity

import "time"

// WeeklySummary は 1 週間分の活動集計です。
type WeeklySummary struct {
	WeekStart    time.Time
	WeekEnd      time.Time
	Entries      int
	DistinctJobs int
	Totals       Counters
}

// SummarizeWeek は weekOf を含む週 (月曜始まり) の活動を集計します。
// recruiterID が空でなければそのリクルーターの記録だけを対象にします。
func SummarizeWeek(entries []Entry, weekOf time.Time, recruiterID string) WeeklySummary {
	start, end := WeekBounds(weekOf)
	summary := WeeklySummary{WeekStart: start, WeekEnd: end}

	jobs := make(map[string]struct{})
	for _, e := range entries {
		if recruiterID != "" && e.RecruiterID != recruiterID {
			continue
		}
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		summary.Entries++
		summary.Totals = summary.Totals.Add(e.Counters)
		jobs[e.JobID] = struct{}{}
	}
	summary.DistinctJobs = len(jobs)

	return summary
}

// ProgressStatus は案件ごとの進捗の色分けです。
type ProgressStatus string

const (
	ProgressRed    ProgressStatus = "red"
	ProgressYellow ProgressStatus = "yellow"
	ProgressGreen  ProgressStatus = "green"
)

// progressGoal は進捗 100% とみなす応募者対応件数 (sourced + screened + submitted) です。
const progressGoal = 10

// JobProgress は案件ごとの活動進捗です。
type JobProgress struct {
	JobID     string
	Sourced   int
	Screened  int
	Submitted int
	Interview int
	Placed    int
	Percent   float64
	Status    ProgressStatus
}

// ProgressForJob は案件に紐づく活動記録から進捗を算出します。
func ProgressForJob(entries []Entry, jobID string) JobProgress {
	p := JobProgress{JobID: jobID}
	for _, e := range entries {
		if e.JobID != jobID {
			continue
		}
		p.Sourced += nonNegative(e.Counters.CVsSourced)
		p.Screened += nonNegative(e.Counters.ScreeningsConducted)
		p.Submitted += nonNegative(e.Counters.SubmissionsToClients)
		p.Interview += nonNegative(e.Counters.ClientInterviews)
		p.Placed += nonNegative(e.Counters.PlacementsMade)
	}

	total := p.Sourced + p.Screened + p.Submitted
	p.Percent = float64(total) * 100 / progressGoal
	if p.Percent > 100 {
		p.Percent = 100
	}

	switch {
	case total == 0:
		p.Status = ProgressRed
	case p.Percent >= 70:
		p.Status = ProgressGreen
	case p.Percent >= 30:
		p.Status = ProgressYellow
	default:
		p.Status = ProgressRed
	}

	return p
}
