package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
)

const (
	CSVFilename  = "filtered_students.csv"
	XLSXFilename = "filtered_students.xlsx"

	studentsSheet = "Students"
	summarySheet  = "Summary"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvRow(r models.EnrichedRecord) []string {
	return []string{
		r.Name,
		r.Gender,
		formatFloat(r.Maths),
		formatFloat(r.Science),
		formatFloat(r.English),
		formatFloat(r.History),
		formatFloat(r.Attendance),
		formatFloat(r.StudyHours),
		formatFloat(r.Total),
		formatFloat(r.Average),
		r.Grade,
		r.Result,
	}
}

// WriteCSV writes the header and one line per record. An empty set still
// produces the header line.
func WriteCSV(w io.Writer, records []models.EnrichedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a Students sheet and, when there is data,
// a Summary sheet.
func WriteXLSX(w io.Writer, records []models.EnrichedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentsSheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(models.Columns))
	for _, c := range models.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(studentsSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.Row()
		row := make([]interface{}, 0, len(models.Columns))
		for _, c := range models.Columns {
			row = append(row, values[c])
		}
		if err := f.SetSheetRow(studentsSheet, cell, &row); err != nil {
			return err
		}
	}

	if summary, err := engine.Summarize(records); err == nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return err
		}
		rows := [][]interface{}{
			{"Total Students", summary.TotalStudents},
			{"Average Marks", engine.Round2(summary.AverageMarks)},
			{"Pass %", engine.Round2(summary.PassPercentage)},
			{"Fail %", engine.Round2(summary.FailPercentage)},
			{"Top Performer", summary.TopPerformer},
			{"Most Common Grade", summary.MostCommonGrade},
		}
		for i := range rows {
			if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
