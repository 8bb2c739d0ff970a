package main

import (
	"fmt"

	"github.com/spf13/cobra"

	repoCSV "student-performance-dashboard/app/repository/csv"
	repoMongo "student-performance-dashboard/app/repository/mongodb"
	repoPostgre "student-performance-dashboard/app/repository/postgresql"
	"student-performance-dashboard/database"
	"student-performance-dashboard/logger"
)

func newImportCommand(flags *reportFlags) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a students CSV into PostgreSQL or MongoDB",
		Long: `Parse a students CSV with the same validation as the loader and bulk insert
the rows into the configured store, so the dashboard can run with
DATA_SOURCE=postgres or DATA_SOURCE=mongo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags, target)
		},
	}

	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "CSV file to import (defaults to CSV_PATH)")
	cmd.Flags().StringVar(&target, "to", "postgres", "Destination: postgres | mongo")

	return cmd
}

func runImport(cmd *cobra.Command, flags *reportFlags, target string) error {
	if target != "postgres" && target != "mongo" {
		return fmt.Errorf("unknown import target %q", target)
	}

	cfg, err := loadConfig(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	records, err := repoCSV.NewStudentRepository(cfg.Data.CSVPath).LoadStudents(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Data.CSVPath, err)
	}

	var inserted int
	switch target {
	case "postgres":
		db, err := database.ConnectPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repoPostgre.NewStudentRepository(db, cfg.Postgres.Table)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
		if inserted, err = repo.InsertStudents(ctx, records); err != nil {
			return err
		}

	case "mongo":
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		repo := repoMongo.NewStudentRepository(db, cfg.Mongo.Collection)
		if inserted, err = repo.InsertStudents(ctx, records); err != nil {
			return err
		}
	}

	logger.Info().Str("target", target).Int("rows", inserted).Msg("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d students into %s\n", inserted, target)
	return nil
}
