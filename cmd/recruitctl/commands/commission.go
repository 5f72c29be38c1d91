package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/grpc/handler"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
)

func newCommissionCommand(opts *rootOptions) *cobra.Command {
	var filter struct {
		period, status, jobTitle, clientName string
	}

	cmd := &cobra.Command{
		Use:   "commission",
		Short: "Print the commission summary for the filtered job orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := opts.svc.CommissionSummary(cmd.Context(), dashboard.CommissionSummaryInput{
				Filter: dashboard.FilterState{
					Period:     dashboard.Period(filter.period),
					Status:     filter.status,
					JobTitle:   filter.jobTitle,
					ClientName: filter.clientName,
				},
			})
			if err != nil {
				return err
			}
			return printView(cmd, handler.CommissionViewValue(view))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&filter.period, "period", dashboard.All, "placement period: all, week, month, quarter or year")
	flags.StringVar(&filter.status, "status", dashboard.All, "job order status or all")
	flags.StringVar(&filter.jobTitle, "job-title", dashboard.All, "job title or all")
	flags.StringVar(&filter.clientName, "client", dashboard.All, "client name or all")
	return cmd
}

func printView(cmd *cobra.Command, fields map[string]any) error {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
