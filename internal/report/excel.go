package report

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

var (
	stockHeaders = []string{"ID", "Название", "Количество", "Изображение"}
	stockWidths  = []float64{10, 40, 15, 50}

	orderHeaders = []string{"ID", "Дата заказа", "Номер машины", "Статус", "Парный экипаж", "Позиции"}
	orderWidths  = []float64{10, 20, 20, 15, 18, 60}
)

// WriteExcel renders the report as an xlsx workbook with a stock sheet and
// a completed-orders sheet.
func WriteExcel(w io.Writer, rep *Report) error {
	file := xlsx.NewFile()

	stock, err := file.AddSheet("Остатки")
	if err != nil {
		return fmt.Errorf("adding stock sheet: %w", err)
	}
	addHeaderRow(stock, stockHeaders, stockWidths)
	for _, row := range rep.Stock {
		r := stock.AddRow()
		r.AddCell().SetValue(row.ID)
		r.AddCell().SetValue(row.Title)
		r.AddCell().SetValue(row.Quantity)
		r.AddCell().SetValue(row.Image)
	}

	orders, err := file.AddSheet("Заказы")
	if err != nil {
		return fmt.Errorf("adding orders sheet: %w", err)
	}
	addHeaderRow(orders, orderHeaders, orderWidths)
	for _, row := range rep.Orders {
		r := orders.AddRow()
		r.AddCell().SetValue(row.ID)
		r.AddCell().SetValue(row.OrderDate)
		r.AddCell().SetValue(row.CarNumber)
		r.AddCell().SetValue(row.Status)
		r.AddCell().SetValue(row.IsPairCrew)
		r.AddCell().SetValue(row.Items)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers []string, widths []float64) {
	style := xlsx.NewStyle()
	style.Font.Bold = true
	style.Font.Size = 12
	style.ApplyFont = true
	style.Fill = *xlsx.NewFill("solid", "E0E0E0", "FFFFFF")
	style.ApplyFill = true
	style.Alignment.Horizontal = "center"
	style.Alignment.Vertical = "center"
	style.ApplyAlignment = true

	row := sheet.AddRow()
	for i, h := range headers {
		cell := row.AddCell()
		cell.SetValue(h)
		cell.SetStyle(style)
		sheet.SetColWidth(i, i, widths[i])
	}
}
