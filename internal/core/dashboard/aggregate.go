package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/ogurasousui/recruit-dashboard/internal/core/joborder"
)

// MonthlyBucket は 1 か月分の手数料集計です。
type MonthlyBucket struct {
	Month     string
	Potential float64
	Earned    float64
}

// ClientShare はクライアントごとの獲得手数料です。
type ClientShare struct {
	Name  string
	Value float64
}

// Summary は求人案件集合の手数料集計結果です。
type Summary struct {
	TotalEarned     float64
	TotalPotential  float64
	OpenJobs        int
	ThisMonthEarned float64
	// Monthly は now の月を先頭に 12 か月分を循環させた系列です。
	Monthly  [12]MonthlyBucket
	ByClient []ClientShare
}

// Aggregate は求人案件を合計値・月次系列・クライアント別内訳に集約します。
// 不正な金額 (NaN, Inf, 負数) は 0 として扱い、エラーにはしません。
func Aggregate(jobs []joborder.JobOrder, now time.Time) Summary {
	var (
		summary  Summary
		calendar [12]MonthlyBucket
	)
	for i := range calendar {
		calendar[i].Month = time.Month(i + 1).String()[:3]
	}

	clientIndex := make(map[string]int)
	for _, job := range jobs {
		earned := amount(job.EarnedCommission)
		potential := amount(job.PotentialCommission)

		summary.TotalEarned += earned
		summary.TotalPotential += potential
		if strings.EqualFold(string(job.Status), string(joborder.StatusOpen)) {
			summary.OpenJobs++
		}

		if job.PlacementDate != nil {
			placed := job.PlacementDate.In(now.Location())
			bucket := &calendar[placed.Month()-1]
			bucket.Potential += potential
			bucket.Earned += earned
			if placed.Year() == now.Year() && placed.Month() == now.Month() {
				summary.ThisMonthEarned += earned
			}
		}

		idx, ok := clientIndex[job.ClientName]
		if !ok {
			idx = len(summary.ByClient)
			clientIndex[job.ClientName] = idx
			summary.ByClient = append(summary.ByClient, ClientShare{Name: job.ClientName})
		}
		summary.ByClient[idx].Value += earned
	}

	current := int(now.Month()) - 1
	for i := range calendar {
		summary.Monthly[(i-current+12)%12] = calendar[i]
	}

	return summary
}

// TopPlacement は獲得手数料が最大の求人案件を返します。獲得済みの案件がなければ nil です。
func TopPlacement(jobs []joborder.JobOrder) *joborder.JobOrder {
	var top *joborder.JobOrder
	for i := range jobs {
		earned := amount(jobs[i].EarnedCommission)
		if earned <= 0 {
			continue
		}
		if top == nil || earned > amount(top.EarnedCommission) {
			top = &jobs[i]
		}
	}
	if top == nil {
		return nil
	}
	return top.Clone()
}

func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
