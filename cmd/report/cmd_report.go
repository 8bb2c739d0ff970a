package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/render"
	"student-performance-dashboard/app/service"
	"student-performance-dashboard/config"
	"student-performance-dashboard/database"
	"student-performance-dashboard/logger"
)

type reportFlags struct {
	configFile string
	source     string
	csvPath    string
	outDir     string
	grade      string
	gender     string
	impute     string
	noCharts   bool
}

func newRootCommand() *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the student performance summary and write chart images",
		Long: `Load the student table, derive Total, Average, Grade and Result for every
student and print the summary block: total students, average score, pass and
fail percentages, top student, most common grade, subject averages and gender
averages. Charts are written as PNG files to the output directory.

Examples:
  report --csv students.csv --out ./report
  report --source postgres --grade A --gender Female`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&flags.source, "source", "", "Student source: csv | postgres | mongo")
	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "CSV file when --source=csv")
	cmd.Flags().StringVar(&flags.outDir, "out", "", "Directory for chart images")
	cmd.Flags().StringVar(&flags.grade, "grade", "", "Only include this grade")
	cmd.Flags().StringVar(&flags.gender, "gender", "", "Only include this gender")
	cmd.Flags().StringVar(&flags.impute, "impute", "", "Missing attendance/study hours policy: midpoint | zero")
	cmd.Flags().BoolVar(&flags.noCharts, "no-charts", false, "Skip writing chart images")

	cmd.AddCommand(newImportCommand(flags))
	cmd.AddCommand(newHashPasswordCommand())

	return cmd
}

// loadConfig applies the command line overrides on top of the file and
// environment settings.
func loadConfig(flags *reportFlags, logOut io.Writer) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}

	if flags.source != "" {
		cfg.Data.Source = flags.source
	}
	if flags.csvPath != "" {
		cfg.Data.CSVPath = flags.csvPath
	}
	if flags.outDir != "" {
		cfg.Report.OutputDir = flags.outDir
	}
	if flags.impute != "" {
		cfg.Data.ImputePolicy = flags.impute
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty, Output: logOut})
	return cfg, nil
}

func runReport(cmd *cobra.Command, flags *reportFlags) error {
	cfg, err := loadConfig(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	policy, err := engine.ParseImputePolicy(cfg.Data.ImputePolicy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	source, closeSource, err := database.OpenSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	svc := service.NewReportService(source, policy, render.Options{
		Width:  cfg.Report.ChartWidth,
		Height: cfg.Report.ChartHeight,
	})

	report, err := svc.Build(ctx, engine.Criteria{Grade: flags.grade, Gender: flags.gender})
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := service.WriteText(out, report); err != nil {
		return err
	}

	if flags.noCharts || report.Empty {
		return nil
	}

	paths, err := svc.WriteCharts(cfg.Report.OutputDir, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCharts written to %s (%d files)\n", cfg.Report.OutputDir, len(paths))
	return nil
}
