// aqarat-crm/internal/reports/pdf.go

package reports

import (
	"math"

	"github.com/divan/num2words"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// renderPDF верстает таблицу отчета в PDF через maroto.
func renderPDF(data *table) ([]byte, error) {
	m := maroto.New()

	m.AddRow(12, text.NewCol(12, data.Title, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	colSize := 12 / len(data.Headers)

	headerCols := make([]core.Col, 0, len(data.Headers))
	for _, h := range data.Headers {
		headerCols = append(headerCols, text.NewCol(colSize, h, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
		}))
	}
	m.AddRow(8, headerCols...)

	for _, row := range data.Rows {
		cols := make([]core.Col, 0, len(row))
		for _, cell := range row {
			cols = append(cols, text.NewCol(colSize, cell, props.Text{Size: 8}))
		}
		m.AddRow(6, cols...)
	}

	for _, line := range data.Summary {
		m.AddRow(7, text.NewCol(12, line, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Right,
		}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// amountInWords переводит сумму в словесную запись для итоговой строки отчета.
func amountInWords(amount float64) string {
	whole := int(math.Floor(math.Abs(amount)))
	return num2words.Convert(whole)
}
