package models

// Summary is the KPI block of the dashboard and the header of the report.
type Summary struct {
	TotalStudents   int     `json:"totalStudents"`
	AverageMarks    float64 `json:"averageMarks"`
	PassPercentage  float64 `json:"passPercentage"`
	FailPercentage  float64 `json:"failPercentage"`
	TopPerformer    string  `json:"topPerformer"`
	MostCommonGrade string  `json:"mostCommonGrade"`
}

type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
}

type GenderAverage struct {
	Gender  string  `json:"gender"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type GradeCount struct {
	Grade      string  `json:"grade"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Correlation is a square Pearson matrix; Values[i][j] pairs Labels[i] and Labels[j].
type Correlation struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

type ScatterPoint struct {
	Name       string  `json:"name"`
	Attendance float64 `json:"attendance"`
	Average    float64 `json:"average"`
	StudyHours float64 `json:"studyHours"`
	Result     string  `json:"result"`
	Grade      string  `json:"grade"`
}

type StudyHoursPoint struct {
	StudyHours float64 `json:"studyHours"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
}

type TrendPoint struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
}

// TopStudent is one row of the top-N table.
type TopStudent struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"Name"`
	Gender  string  `json:"Gender"`
	Average float64 `json:"Average"`
	Grade   string  `json:"Grade"`
}

// FilterOptions feeds the grade and gender dropdowns.
type FilterOptions struct {
	Grades  []string `json:"grades"`
	Genders []string `json:"genders"`
}
