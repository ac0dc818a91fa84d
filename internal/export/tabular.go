package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// WriteCSV renders the flattened variable table. Column order is the
// stable order FlatColumns computes; absent cells are empty strings.
func WriteCSV(w io.Writer, vars []*variable.Variable) error {
	columns := variable.FlatColumns(vars)
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range vars {
		flat := v.Flatten()
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellString(flat[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", v.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExcel renders a workbook with a Variables sheet and a Project
// Info sheet.
func WriteExcel(w io.Writer, project ledger.ProjectInfo, vars []*variable.Variable) error {
	f := excelize.NewFile()
	defer f.Close()

	const varSheet = "Variables"
	if err := f.SetSheetName("Sheet1", varSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	columns := variable.FlatColumns(vars)
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(varSheet, cell, col); err != nil {
			return err
		}
		if err := f.SetCellStyle(varSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for r, v := range vars {
		flat := v.Flatten()
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(varSheet, cell, cellString(flat[col])); err != nil {
				return err
			}
		}
	}

	const infoSheet = "Project Info"
	if _, err := f.NewSheet(infoSheet); err != nil {
		return fmt.Errorf("create info sheet: %w", err)
	}
	info := [][]string{
		{"project_name", project.ProjectName},
		{"version", project.Version},
		{"description", project.Description},
		{"stakeholders", strings.Join(project.Stakeholders, ", ")},
	}
	for r, pair := range info {
		keyCell, _ := excelize.CoordinatesToCellName(1, r+1)
		valCell, _ := excelize.CoordinatesToCellName(2, r+1)
		if err := f.SetCellValue(infoSheet, keyCell, pair[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(infoSheet, valCell, pair[1]); err != nil {
			return err
		}
		if err := f.SetCellStyle(infoSheet, keyCell, keyCell, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellString(val any) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}
