package database

import (
	"context"
	"fmt"

	"student-performance-dashboard/app/apperrors"
	base "student-performance-dashboard/app/repository"
	repoCSV "student-performance-dashboard/app/repository/csv"
	repoMongo "student-performance-dashboard/app/repository/mongodb"
	repoPostgre "student-performance-dashboard/app/repository/postgresql"
	"student-performance-dashboard/config"
)

// OpenSource returns the student source selected by DATA_SOURCE together
// with a func that releases its connection.
func OpenSource(ctx context.Context, cfg *config.Config) (base.StudentSource, func(), error) {
	switch cfg.Data.Source {
	case "csv":
		return repoCSV.NewStudentRepository(cfg.Data.CSVPath), func() {}, nil

	case "postgres":
		db, err := ConnectPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repoPostgre.NewStudentRepository(db, cfg.Postgres.Table), func() { db.Close() }, nil

	case "mongo":
		client, db, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return repoMongo.NewStudentRepository(db, cfg.Mongo.Collection), closeFn, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSource, cfg.Data.Source)
}
