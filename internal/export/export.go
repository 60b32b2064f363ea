// Package export writes grid views and tracker reports to XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zeabis/zeabis/internal/grid"
)

// Sheet is one worksheet: a header row followed by data rows. Cell values
// are written with their Go type, so numbers stay numeric in the workbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// FromView turns a built grid view into a sheet of its rendered cells.
// Loading and empty views produce a single message row.
func FromView(name string, v grid.View) Sheet {
	s := Sheet{Name: name, Headers: make([]string, len(v.Headers))}
	for i, h := range v.Headers {
		s.Headers[i] = h.Label
	}
	if v.State != grid.StateRows {
		s.Rows = [][]any{{v.Message}}
		return s
	}
	for _, r := range v.Rows {
		row := make([]any, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = c
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// Workbook builds a workbook with one worksheet per sheet, in order. The
// header row is bold and frozen.
func Workbook(sheets ...Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("naming sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("adding sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write encodes sheets as an XLSX document to w.
func Write(w io.Writer, sheets ...Sheet) error {
	f, err := Workbook(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", s.Name, err)
	}
	if len(s.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("styling %s header: %w", s.Name, err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(s.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, "A", lastCol, 16); err != nil {
			return fmt.Errorf("sizing %s columns: %w", s.Name, err)
		}
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", s.Name, i+1, err)
		}
	}
	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
