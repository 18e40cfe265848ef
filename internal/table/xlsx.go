package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// HighlightFill is the fill colour for marked cells in spreadsheet exports.
const HighlightFill = "#ADD8E6"

// WriteXLSX writes one worksheet per grid, named after the grid title, with
// marked cells filled.
func WriteXLSX(w io.Writer, grids ...Grid) error {
	if len(grids) == 0 {
		return fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	cellStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
	})
	if err != nil {
		return fmt.Errorf("create cell style: %w", err)
	}
	markStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
		Fill:      excelize.Fill{Type: "pattern", Color: []string{HighlightFill}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create highlight style: %w", err)
	}

	for i, g := range grids {
		name := sheetName(g.Title, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}

		for r := range g.Cells {
			for c, cell := range g.Cells[r] {
				if cell.Blank {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(name, ref, cell.Number); err != nil {
					return fmt.Errorf("set %s!%s: %w", name, ref, err)
				}
				styleID := cellStyleID
				if cell.Highlighted {
					styleID = markStyleID
				}
				if err := f.SetCellStyle(name, ref, ref, styleID); err != nil {
					return fmt.Errorf("style %s!%s: %w", name, ref, err)
				}
			}
		}

		lastCol, err := excelize.ColumnNumberToName(Cols)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, "A", lastCol, 5); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}
}

// sheetName trims a title to the 31 characters a worksheet name allows.
func sheetName(title string, i int) string {
	if title == "" {
		return fmt.Sprintf("Table %d", i+1)
	}
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
