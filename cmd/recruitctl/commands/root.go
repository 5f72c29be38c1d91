package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ogurasousui/recruit-dashboard/internal/core/commission"
	"github.com/ogurasousui/recruit-dashboard/internal/core/dashboard"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/config"
	"github.com/ogurasousui/recruit-dashboard/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type rootOptions struct {
	snapshotPath string
	ratePercent  float64
	now          string
	verbose      bool

	logger zerolog.Logger
	svc    *dashboard.Service
}

// NewRootCommand は recruitctl のルートコマンドを構築します。
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "recruitctl",
		Short:         "recruitctl evaluates commission and KPI dashboards from a snapshot file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger, _, err := logging.New(config.LogConfig{Level: level, Format: "console"}, os.Stderr)
			if err != nil {
				return err
			}
			opts.logger = logger

			return opts.load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.snapshotPath, "snapshot", "s", "", "path to a YAML or JSON snapshot of job orders and activities")
	flags.Float64Var(&opts.ratePercent, "rate", commission.DefaultRatePercent, "commission rate in percent")
	flags.StringVar(&opts.now, "now", "", "evaluate as of this date (YYYY-MM-DD or RFC3339); defaults to the current time")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	_ = cmd.MarkPersistentFlagRequired("snapshot")

	cmd.AddCommand(newCommissionCommand(opts), newScoreCommand(opts))
	return cmd
}

// Execute はコマンドを実行し、エラーを標準エラーに出力します。
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

func (o *rootOptions) load() error {
	now := time.Now().UTC()
	if o.now != "" {
		t, err := parseDate(o.now)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		now = t
	}

	jobs, entries, err := loadSnapshot(o.snapshotPath, o.ratePercent, now)
	if err != nil {
		return err
	}
	o.logger.Debug().
		Str("snapshot", o.snapshotPath).
		Int("jobs", len(jobs)).
		Int("activities", len(entries)).
		Time("now", now).
		Msg("snapshot loaded")

	o.svc = dashboard.NewService(jobs, entries, fixedClock{now: now}, nil)
	return nil
}
