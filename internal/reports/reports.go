// aqarat-crm/internal/reports/reports.go

// Package reports генерирует отчеты в PDF и Excel.
package reports

import (
	"errors"
	"fmt"
	"time"

	"aqarat-crm/internal/finance"
	"aqarat-crm/models"

	"gorm.io/gorm"
)

// Типы и форматы отчетов. Любая другая комбинация — ошибка аргумента.
const (
	TypeFinancial = "financial"
	TypeUnits     = "units"
	TypeCustomers = "customers"

	FormatPDF   = "pdf"
	FormatExcel = "excel"

	ContentTypePDF   = "application/pdf"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrInvalidReport возвращается при неизвестном типе или формате отчета.
var ErrInvalidReport = errors.New("неизвестный тип или формат отчета")

// Document — готовый отчет: содержимое, MIME-тип и имя файла для скачивания.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// table — подготовленные данные отчета, общие для PDF и Excel.
type table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Summary []string
}

// Generate строит отчет заданного типа в заданном формате.
// Имя файла содержит тип отчета и отметку времени.
func Generate(db *gorm.DB, reportType, format string) (*Document, error) {
	var data *table
	var err error

	switch reportType {
	case TypeFinancial:
		data, err = financialTable(db)
	case TypeUnits:
		data, err = unitsTable(db)
	case TypeCustomers:
		data, err = customersTable(db)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReport, reportType)
	}
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatPDF:
		pdf, err := renderPDF(data)
		if err != nil {
			return nil, err
		}
		return &Document{
			Data:        pdf,
			ContentType: ContentTypePDF,
			Filename:    fmt.Sprintf("%s_report_%s.pdf", reportType, stamp),
		}, nil
	case FormatExcel:
		xlsx, err := renderExcel(data)
		if err != nil {
			return nil, err
		}
		return &Document{
			Data:        xlsx,
			ContentType: ContentTypeExcel,
			Filename:    fmt.Sprintf("%s_report_%s.xlsx", reportType, stamp),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReport, format)
	}
}

// financialTable собирает финансовый отчет: по каждому договору — оплачено,
// остаток и процент сбора (через сервис расчетов).
func financialTable(db *gorm.DB) (*table, error) {
	var contracts []models.Contract
	if err := db.Preload("Installments").Preload("Customer").
		Order("contract_number ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}

	var totalFinal, totalPaid float64
	rows := make([][]string, 0, len(contracts))
	for i := range contracts {
		c := &contracts[i]
		res := finance.Remaining(c)
		pct := finance.CollectionPercentage(c)

		customerName := ""
		if c.Customer != nil {
			customerName = c.Customer.FullName
		}

		rows = append(rows, []string{
			c.ContractNumber,
			customerName,
			fmt.Sprintf("%.2f", c.FinalPrice),
			fmt.Sprintf("%.2f", res.TotalPaid),
			fmt.Sprintf("%.2f", res.RemainingAmount),
			fmt.Sprintf("%.2f%%", pct),
		})

		totalFinal += c.FinalPrice
		totalPaid += res.TotalPaid
	}

	return &table{
		Title:   "Финансовый отчет",
		Headers: []string{"Договор", "Покупатель", "Итоговая цена", "Оплачено", "Остаток", "% сбора"},
		Rows:    rows,
		Summary: []string{
			fmt.Sprintf("Договоров: %d", len(contracts)),
			fmt.Sprintf("Сумма договоров: %.2f", totalFinal),
			fmt.Sprintf("Собрано: %.2f", totalPaid),
			fmt.Sprintf("Прописью: %s", amountInWords(totalPaid)),
		},
	}, nil
}

// unitsTable собирает отчет по объектам недвижимости.
func unitsTable(db *gorm.DB) (*table, error) {
	var units []models.Unit
	if err := db.Order("code ASC").Find(&units).Error; err != nil {
		return nil, err
	}

	counts, err := finance.UnitCounts(db)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{
			u.Code,
			u.UnitType,
			fmt.Sprintf("%d", u.Floor),
			fmt.Sprintf("%.2f", u.Area),
			fmt.Sprintf("%.2f", u.Price),
			u.Status,
		})
	}

	return &table{
		Title:   "Отчет по объектам",
		Headers: []string{"Код", "Тип", "Этаж", "Площадь", "Цена", "Статус"},
		Rows:    rows,
		Summary: []string{
			fmt.Sprintf("Всего: %d", counts.TotalUnits),
			fmt.Sprintf("Свободно: %d", counts.AvailableUnits),
			fmt.Sprintf("Забронировано: %d", counts.ReservedUnits),
			fmt.Sprintf("Продано: %d", counts.SoldUnits),
		},
	}, nil
}

// customersTable собирает отчет по покупателям с количеством договоров.
func customersTable(db *gorm.DB) (*table, error) {
	type customerRow struct {
		FullName      string
		Phone         string
		NationalID    string
		ContractCount int64
	}

	var result []customerRow
	err := db.Table("customers").
		Select(`
			customers.full_name,
			customers.phone,
			customers.national_id,
			(SELECT COUNT(*) FROM contracts
			 WHERE contracts.customer_id = customers.id AND contracts.deleted_at IS NULL) as contract_count
		`).
		Where("customers.deleted_at IS NULL").
		Order("customers.full_name ASC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(result))
	for _, r := range result {
		rows = append(rows, []string{
			r.FullName,
			r.Phone,
			r.NationalID,
			fmt.Sprintf("%d", r.ContractCount),
		})
	}

	return &table{
		Title:   "Отчет по покупателям",
		Headers: []string{"Покупатель", "Телефон", "Удостоверение", "Договоров"},
		Rows:    rows,
		Summary: []string{fmt.Sprintf("Всего покупателей: %d", len(result))},
	}, nil
}
