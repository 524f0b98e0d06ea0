// Package export renders stored profiles as a spreadsheet for placement
// staff.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/campushire/parsume/internal/models"
	"github.com/campushire/parsume/internal/storage"
)

const sheetName = "Profiles"

// headerTitles maps canonical profile keys to spreadsheet column titles.
var headerTitles = map[string]string{
	"first_name":            "First Name",
	"last_name":             "Last Name",
	"email":                 "Email",
	"phone":                 "Phone",
	"department":            "Department",
	"tenth_percentage":      "10th %",
	"tenth_year":            "10th Year",
	"tenth_board":           "10th Board",
	"twelfth_percentage":    "12th %",
	"twelfth_year":          "12th Year",
	"twelfth_board":         "12th Board",
	"diploma_percentage":    "Diploma %",
	"diploma_year":          "Diploma Year",
	"diploma_branch":        "Diploma Branch",
	"engg_passing_year":     "Engg Passing Year",
	"programming_languages": "Programming Languages",
	"academic_projects":     "Academic Projects",
	"certificates":          "Certificates",
	"hobbies":               "Hobbies",
}

// WriteProfiles writes an xlsx workbook with one row per profile, columns
// following the canonical profile key order. Absent values render as empty
// cells.
func WriteProfiles(w io.Writer, profiles []*storage.StudentProfile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Student ID"}
	for _, key := range models.CanonicalKeys {
		title, ok := headerTitles[key]
		if !ok {
			title = key
		}
		header = append(header, title)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, sp := range profiles {
		row := []interface{}{sp.StudentID}
		for _, key := range models.CanonicalKeys {
			if v := sp.Profile[key]; v != nil {
				row = append(row, *v)
			} else {
				row = append(row, "")
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
