// aqarat-crm/internal/reports/excel.go

package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// renderExcel выгружает таблицу отчета в книгу Excel.
func renderExcel(data *table) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := data.Title
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	// Лист Sheet1 создается библиотекой автоматически и в книге не нужен
	f.DeleteSheet("Sheet1")

	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for r, row := range data.Rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Итоговые строки под таблицей, через одну пустую
	summaryRow := len(data.Rows) + 3
	for i, line := range data.Summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+i), line)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
