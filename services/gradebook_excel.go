package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"edumaster/db"
	"edumaster/models"

	"github.com/xuri/excelize/v2"
)

const gradebookSheet = "Sổ Điểm"

var gradebookHeader = []interface{}{"Mã HS", "Học Sinh", "Miệng (x1)", "15 Phút (x1)", "1 Tiết (x2)", "Thi HK (x3)", "Trung Bình"}

// ImportStudentsFromExcel reads the first sheet of an xlsx roster and adds
// each row as a student of classID. Columns: ID, Name, DOB, Gender; the first
// row is a header. Rows that cannot be added are logged and skipped.
func ImportStudentsFromExcel(store *db.Store, file io.Reader, classID string) (int, error) {
	if _, ok := store.Class(classID); !ok {
		return 0, fmt.Errorf("%w: %s", db.ErrClassNotFound, classID)
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		student := models.Student{
			ID:      cell(row, 0),
			Name:    cell(row, 1),
			DOB:     cell(row, 2),
			Gender:  cell(row, 3),
			ClassID: classID,
		}
		if student.Name == "" {
			log.Printf("Skipping row %d: missing name", i+1)
			continue
		}
		if _, err := store.AddStudent(student); err != nil {
			log.Printf("Skipping row %d (%s): %v", i+1, student.Name, err)
			continue
		}
		imported++
	}

	log.Printf("Imported %d students into class %s", imported, classID)
	return imported, nil
}

// ExportGradebook writes the gradebook of one subject as an xlsx workbook
func ExportGradebook(store *db.Store, subjectID string, w io.Writer) error {
	rows, err := Gradebook(store, subjectID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", gradebookSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(gradebookSheet, "A1", &gradebookHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{row.StudentID, row.StudentName, "-", "-", "-", "-", row.Average}
		if rec := row.Record; rec != nil {
			values[2] = joinScores(rec.Oral)
			values[3] = joinScores(rec.Test15)
			values[4] = joinScores(rec.Test45)
			if rec.Semester != nil {
				values[5] = *rec.Semester
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(gradebookSheet, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func joinScores(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
