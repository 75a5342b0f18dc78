// Package export renders dashboard panels as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	auditSheet    = "Audit"
	studentsSheet = "Students"
)

// WriteAudit writes the audit panel as a single-sheet workbook.
func WriteAudit(w io.Writer, rows []ports.AuditRow) error {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.Time, r.User, r.Role, r.Action})
	}
	return writeSheet(w, auditSheet, []any{"Time", "User", "Role", "Action"}, data)
}

// WriteStudents writes the student panel as a single-sheet workbook.
func WriteStudents(w io.Writer, rows []ports.StudentRow) error {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.Name, r.Grade, r.Counselor, r.CrisisBadge})
	}
	return writeSheet(w, studentsSheet, []any{"Name", "Grade", "Counselor", "Crisis"}, data)
}

func writeSheet(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
