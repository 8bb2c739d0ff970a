package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"student-performance-dashboard/app/models"
	base "student-performance-dashboard/app/repository"
)

type StudentRepository interface {
	base.StudentSource
	InsertStudents(ctx context.Context, records []models.StudentRecord) (int, error)
}

type studentRepository struct {
	collection *mongo.Collection
}

func NewStudentRepository(db *mongo.Database, collection string) StudentRepository {
	return &studentRepository{collection: db.Collection(collection)}
}

// studentDocument uses pointers so a missing key can be told apart from 0.
type studentDocument struct {
	Name       *string  `bson:"name"`
	Gender     *string  `bson:"gender"`
	Maths      *float64 `bson:"maths"`
	Science    *float64 `bson:"science"`
	English    *float64 `bson:"english"`
	History    *float64 `bson:"history"`
	Attendance *float64 `bson:"attendance,omitempty"`
	StudyHours *float64 `bson:"study_hours,omitempty"`
}

func (d studentDocument) raw() base.RawStudent {
	return base.RawStudent{
		Name:       d.Name,
		Gender:     d.Gender,
		Maths:      d.Maths,
		Science:    d.Science,
		English:    d.English,
		History:    d.History,
		Attendance: d.Attendance,
		StudyHours: d.StudyHours,
	}
}

func newStudentDocument(r models.StudentRecord) studentDocument {
	return studentDocument{
		Name:       &r.Name,
		Gender:     &r.Gender,
		Maths:      &r.Maths,
		Science:    &r.Science,
		English:    &r.English,
		History:    &r.History,
		Attendance: r.Attendance,
		StudyHours: r.StudyHours,
	}
}

func (r *studentRepository) LoadStudents(ctx context.Context) ([]models.StudentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []studentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return toRecords(docs)
}

func (r *studentRepository) InsertStudents(ctx context.Context, records []models.StudentRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, newStudentDocument(rec))
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func toRecords(docs []studentDocument) ([]models.StudentRecord, error) {
	out := make([]models.StudentRecord, 0, len(docs))
	for i, d := range docs {
		rec, err := d.raw().ToRecord(i + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
