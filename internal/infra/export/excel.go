package export

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

const (
	SheetName   = "History"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"ID", "Title", "Date", "Score", "Verdict", "URL", "Text Snippet"}

// WriteHistory renders records as an .xlsx workbook into w, one row per record
// in the order given.
func WriteHistory(w io.Writer, records []*history.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(SheetName, "A", "A", 38)
	f.SetColWidth(SheetName, "B", "B", 50)
	f.SetColWidth(SheetName, "C", "C", 22)
	f.SetColWidth(SheetName, "D", "D", 8)
	f.SetColWidth(SheetName, "E", "E", 24)
	f.SetColWidth(SheetName, "F", "G", 60)

	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(SheetName, cell, h)
		f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	for i, rec := range records {
		row := i + 2
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), string(rec.ID))
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), rec.Title)
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), rec.Date.Format("2006-01-02 15:04:05"))
		f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), rec.Score)
		if rec.FullResult != nil {
			f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), string(rec.FullResult.Verdict))
		}
		if rec.URL != nil {
			f.SetCellValue(SheetName, fmt.Sprintf("F%d", row), *rec.URL)
		}
		if rec.TextSnippet != nil {
			f.SetCellValue(SheetName, fmt.Sprintf("G%d", row), *rec.TextSnippet)
		}
	}

	return errors.Wrap(f.Write(w), "write workbook")
}
