package commands

import (
	"github.com/spf13/cobra"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/grpc/handler"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
)

func newScoreCommand(opts *rootOptions) *cobra.Command {
	var (
		weekOf      string
		recruiterID string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a week of recruiter activity against the KPI targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := dashboard.PerformanceInput{RecruiterID: recruiterID}
			if weekOf != "" {
				t, err := parseDate(weekOf)
				if err != nil {
					return err
				}
				in.WeekOf = &t
			}

			view, err := opts.svc.Performance(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printView(cmd, handler.PerformanceViewValue(view))
		},
	}

	cmd.Flags().StringVar(&weekOf, "week-of", "", "any date inside the week to score; defaults to the current week")
	cmd.Flags().StringVar(&recruiterID, "recruiter", "", "only count activity recorded by this recruiter")
	return cmd
}
