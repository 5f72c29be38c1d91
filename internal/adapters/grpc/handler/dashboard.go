package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/core/activity"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
	"github.com/ogurasousui/recruit-dashboard/internal/core/kpi"
)

// DashboardGrpcHandler は DashboardService の gRPC 実装です。
type DashboardGrpcHandler struct {
	svc dashboard.UseCase
}

// NewDashboardGrpcHandler は DashboardGrpcHandler を生成します。
func NewDashboardGrpcHandler(svc dashboard.UseCase) *DashboardGrpcHandler {
	return &DashboardGrpcHandler{svc: svc}
}

// GetCommissionSummary は絞り込み条件に応じた手数料集計を返します。
func (h *DashboardGrpcHandler) GetCommissionSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		filter dashboard.FilterState
		period string
		err    error
	)
	if period, err = stringField(req, "period"); err != nil {
		return nil, err
	}
	filter.Period = dashboard.Period(period)
	if filter.Status, err = stringField(req, "status"); err != nil {
		return nil, err
	}
	if filter.JobTitle, err = stringField(req, "jobTitle"); err != nil {
		return nil, err
	}
	if filter.ClientName, err = stringField(req, "clientName"); err != nil {
		return nil, err
	}

	view, err := h.svc.CommissionSummary(ctx, dashboard.CommissionSummaryInput{Filter: filter})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(CommissionViewValue(view))
}

// GetPerformance は週次 KPI スコアを返します。
func (h *DashboardGrpcHandler) GetPerformance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var (
		in  dashboard.PerformanceInput
		err error
	)
	if in.WeekOf, err = timeField(req, "weekOf"); err != nil {
		return nil, err
	}
	if in.RecruiterID, err = stringField(req, "recruiterId"); err != nil {
		return nil, err
	}

	view, err := h.svc.Performance(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(PerformanceViewValue(view))
}

// GetJobProgress は案件ごとの週次進捗を返します。
func (h *DashboardGrpcHandler) GetJobProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	weekOf, err := timeField(req, "weekOf")
	if err != nil {
		return nil, err
	}

	view, err := h.svc.JobProgress(ctx, dashboard.JobProgressInput{WeekOf: weekOf})
	if err != nil {
		return nil, toStatusError(err)
	}

	rows := make([]any, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, map[string]any{
			"jobTitle":   r.JobTitle,
			"clientName": r.ClientName,
			"status":     string(r.Status),
			"progress":   jobProgressValue(r.Progress),
		})
	}

	return newStruct(map[string]any{
		"weekStart": timeValue(view.WeekStart),
		"weekEnd":   timeValue(view.WeekEnd),
		"rows":      rows,
	})
}

// CommissionViewValue は手数料ビューを Struct 用の値に変換します。
func CommissionViewValue(view *dashboard.CommissionView) map[string]any {
	jobs := make([]any, 0, len(view.Jobs))
	for i := range view.Jobs {
		jobs = append(jobs, jobOrderValue(&view.Jobs[i]))
	}

	monthly := make([]any, 0, len(view.Summary.Monthly))
	for _, m := range view.Summary.Monthly {
		monthly = append(monthly, map[string]any{
			"month":     m.Month,
			"potential": m.Potential,
			"earned":    m.Earned,
		})
	}

	byClient := make([]any, 0, len(view.Summary.ByClient))
	for _, c := range view.Summary.ByClient {
		byClient = append(byClient, map[string]any{"name": c.Name, "value": c.Value})
	}

	var top any
	if view.TopPlacement != nil {
		top = jobOrderValue(view.TopPlacement)
	}

	return map[string]any{
		"filter": map[string]any{
			"period":     string(view.Filter.Period),
			"status":     view.Filter.Status,
			"jobTitle":   view.Filter.JobTitle,
			"clientName": view.Filter.ClientName,
		},
		"generatedAt": timeValue(view.GeneratedAt),
		"jobs":        jobs,
		"summary": map[string]any{
			"totalEarned":     view.Summary.TotalEarned,
			"totalPotential":  view.Summary.TotalPotential,
			"openJobs":        view.Summary.OpenJobs,
			"thisMonthEarned": view.Summary.ThisMonthEarned,
			"monthly":         monthly,
			"byClient":        byClient,
		},
		"progress":     view.Progress,
		"tier":         string(view.Tier),
		"topPlacement": top,
	}
}

// PerformanceViewValue は KPI ビューを Struct 用の値に変換します。
func PerformanceViewValue(view *dashboard.PerformanceView) map[string]any {
	return map[string]any{
		"recruiterId": view.RecruiterID,
		"week":        weeklySummaryValue(view.Week),
		"score":       scoreValue(view.Score),
	}
}

func weeklySummaryValue(w activity.WeeklySummary) map[string]any {
	return map[string]any{
		"weekStart":    timeValue(w.WeekStart),
		"weekEnd":      timeValue(w.WeekEnd),
		"entries":      w.Entries,
		"distinctJobs": w.DistinctJobs,
		"totals":       countersValue(w.Totals),
	}
}

func scoreValue(r kpi.Result) map[string]any {
	perKPI := make(map[string]any, len(r.PerKPI))
	for k, v := range r.PerKPI {
		perKPI[string(k)] = v
	}
	achieved := make(map[string]any, len(r.Achieved))
	for k, v := range r.Achieved {
		achieved[string(k)] = v
	}
	suggestions := make([]any, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		suggestions = append(suggestions, map[string]any{
			"kpi":     string(s.KPI),
			"label":   s.Label,
			"deficit": s.Deficit,
			"target":  s.Target,
			"message": s.Message,
		})
	}

	return map[string]any{
		"perKpi":      perKPI,
		"overall":     r.Overall,
		"achieved":    achieved,
		"suggestions": suggestions,
	}
}

func jobProgressValue(p activity.JobProgress) map[string]any {
	return map[string]any{
		"jobId":     p.JobID,
		"sourced":   p.Sourced,
		"screened":  p.Screened,
		"submitted": p.Submitted,
		"interview": p.Interview,
		"placed":    p.Placed,
		"percent":   p.Percent,
		"status":    string(p.Status),
	}
}
