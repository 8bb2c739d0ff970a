package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
)

func decode(t *testing.T, m bson.M) studentDocument {
	t.Helper()
	raw, err := bson.Marshal(m)
	require.NoError(t, err)

	var doc studentDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestToRecords(t *testing.T) {
	t.Run("Success: integer and float scores", func(t *testing.T) {
		doc := decode(t, bson.M{
			"name": "Asha", "gender": "Female",
			"maths": int32(95), "science": 92.5, "english": int64(88), "history": 91.0,
			"attendance": 97.0,
		})

		out, err := toRecords([]studentDocument{doc})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 95.0, out[0].Maths)
		assert.Equal(t, 92.5, out[0].Science)
		assert.Equal(t, 88.0, out[0].English)
		require.NotNil(t, out[0].Attendance)
		assert.Equal(t, 97.0, *out[0].Attendance)
		assert.Nil(t, out[0].StudyHours)
	})

	t.Run("Error: missing score key", func(t *testing.T) {
		ok := decode(t, bson.M{"name": "A", "gender": "F", "maths": 1.0, "science": 1.0, "english": 1.0, "history": 1.0})
		bad := decode(t, bson.M{"name": "B", "gender": "M", "maths": 1.0, "science": 1.0, "english": 1.0})

		_, err := toRecords([]studentDocument{ok, bad})
		var mf *apperrors.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "History", mf.Field)
		assert.Equal(t, 2, mf.Row)
	})
}

func TestNewStudentDocument(t *testing.T) {
	hours := 7.0
	doc := newStudentDocument(models.StudentRecord{
		Name: "Cara", Gender: "Female", Maths: 70, Science: 71, English: 72, History: 73, StudyHours: &hours,
	})

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "Cara", m["name"])
	assert.Equal(t, 7.0, m["study_hours"])
	_, hasAttendance := m["attendance"]
	assert.False(t, hasAttendance)
}
