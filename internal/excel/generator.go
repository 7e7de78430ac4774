package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aircomp/propostas-service/internal/format"
	"github.com/aircomp/propostas-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate monta a planilha do período: uma aba de resumo e uma aba
// com as propostas linha a linha.
func (g *Generator) Generate(export model.ProposalExport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, export); err != nil {
		return nil, err
	}

	detailSheet := "Propostas"
	file.NewSheet(detailSheet)
	if err := g.writeDetail(file, detailSheet, export); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, export model.ProposalExport) error {
	var purchases, rentals int
	var total float64
	for _, row := range export.Rows {
		if row.Kind == model.DocumentKindRental {
			rentals++
		} else {
			purchases++
		}
		total += row.Total
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Início do período")
	set("B1", format.DateTime(export.PeriodStart))
	set("A2", "Fim do período")
	set("B2", format.DateTime(export.PeriodEnd))
	set("A3", "Total de propostas")
	set("B3", len(export.Rows))
	set("A4", "Cotações")
	set("B4", purchases)
	set("A5", "Locações")
	set("B5", rentals)
	set("A6", "Valor total")
	set("B6", format.Currency(total))

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, export model.ProposalExport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Número", "Tipo", "Data", "Cliente", "Status", "Valor"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, row := range export.Rows {
		line := i + 2
		set(fmt.Sprintf("A%d", line), row.Number)
		set(fmt.Sprintf("B%d", line), kindLabel(row.Kind))
		set(fmt.Sprintf("C%d", line), format.DateTime(row.IssueDate))
		set(fmt.Sprintf("D%d", line), row.ClientName)
		set(fmt.Sprintf("E%d", line), string(row.Status))
		set(fmt.Sprintf("F%d", line), format.Currency(row.Total))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	_ = file.SetColWidth(sheet, "C", "C", 12)
	_ = file.SetColWidth(sheet, "D", "D", 40)
	_ = file.SetColWidth(sheet, "E", "E", 12)
	_ = file.SetColWidth(sheet, "F", "F", 16)
	return nil
}

func kindLabel(kind model.DocumentKind) string {
	if kind == model.DocumentKindRental {
		return "Locação"
	}
	return "Cotação"
}
