package models

// Column names as they appear in the source dataset.
const (
	ColName       = "Name"
	ColGender     = "Gender"
	ColMaths      = "Maths"
	ColScience    = "Science"
	ColEnglish    = "English"
	ColHistory    = "History"
	ColAttendance = "Attendance (%)"
	ColStudyHours = "Study Hours/Week"
	ColTotal      = "Total"
	ColAverage    = "Average"
	ColGrade      = "Grade"
	ColResult     = "Result"
)

// Subjects lists the scored subjects in display order.
var Subjects = []string{ColMaths, ColScience, ColEnglish, ColHistory}

// RequiredColumns must be present in every source.
var RequiredColumns = []string{ColName, ColGender, ColMaths, ColScience, ColEnglish, ColHistory}

// Columns is the full column order of an enriched record.
var Columns = []string{
	ColName, ColGender, ColMaths, ColScience, ColEnglish, ColHistory,
	ColAttendance, ColStudyHours, ColTotal, ColAverage, ColGrade, ColResult,
}

const (
	ResultPass = "Pass"
	ResultFail = "Fail"
)

// Grades in descending order of the threshold table.
var Grades = []string{"A+", "A", "B", "C", "D", "F"}

// StudentRecord is a raw row from the dataset. Attendance and StudyHours are
// optional and nil when the source did not supply them.
type StudentRecord struct {
	Name       string   `json:"Name" bson:"name"`
	Gender     string   `json:"Gender" bson:"gender"`
	Maths      float64  `json:"Maths" bson:"maths"`
	Science    float64  `json:"Science" bson:"science"`
	English    float64  `json:"English" bson:"english"`
	History    float64  `json:"History" bson:"history"`
	Attendance *float64 `json:"Attendance (%),omitempty" bson:"attendance,omitempty"`
	StudyHours *float64 `json:"Study Hours/Week,omitempty" bson:"study_hours,omitempty"`
}

// Score returns the score for one of Subjects.
func (r StudentRecord) Score(subject string) float64 {
	switch subject {
	case ColMaths:
		return r.Maths
	case ColScience:
		return r.Science
	case ColEnglish:
		return r.English
	case ColHistory:
		return r.History
	}
	return 0
}

// EnrichedRecord is a StudentRecord with its derived columns. Values are
// computed once by the engine and never mutated afterwards.
type EnrichedRecord struct {
	Name              string  `json:"Name"`
	Gender            string  `json:"Gender"`
	Maths             float64 `json:"Maths"`
	Science           float64 `json:"Science"`
	English           float64 `json:"English"`
	History           float64 `json:"History"`
	Attendance        float64 `json:"Attendance (%)"`
	StudyHours        float64 `json:"Study Hours/Week"`
	Total             float64 `json:"Total"`
	Average           float64 `json:"Average"`
	Grade             string  `json:"Grade"`
	Result            string  `json:"Result"`
	AttendanceImputed bool    `json:"attendanceImputed,omitempty"`
	StudyHoursImputed bool    `json:"studyHoursImputed,omitempty"`
}

// Score returns the score for one of Subjects, or Average for ColAverage.
func (r EnrichedRecord) Score(column string) float64 {
	switch column {
	case ColMaths:
		return r.Maths
	case ColScience:
		return r.Science
	case ColEnglish:
		return r.English
	case ColHistory:
		return r.History
	case ColAverage:
		return r.Average
	}
	return 0
}

// Row returns the record as a column-name keyed map for table renderers.
func (r EnrichedRecord) Row() map[string]interface{} {
	return map[string]interface{}{
		ColName:       r.Name,
		ColGender:     r.Gender,
		ColMaths:      r.Maths,
		ColScience:    r.Science,
		ColEnglish:    r.English,
		ColHistory:    r.History,
		ColAttendance: r.Attendance,
		ColStudyHours: r.StudyHours,
		ColTotal:      r.Total,
		ColAverage:    r.Average,
		ColGrade:      r.Grade,
		ColResult:     r.Result,
	}
}
