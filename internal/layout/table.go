package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aircomp/propostas-service/internal/format"
	"github.com/aircomp/propostas-service/internal/model"
)

// Disciplina de fluxo da seção de itens: todo o resto da página é
// posicionado de forma absoluta, mas as linhas da tabela fluem por
// páginas de continuação, repetindo o título da seção e a linha de
// cabeçalho e com a margem superior reduzida.

type tableColumn struct {
	title string
	frac  float64
	align string
}

var purchaseColumns = []tableColumn{
	{title: "Item", frac: 0.08, align: "C"},
	{title: "Descrição", frac: 0.47, align: "L"},
	{title: "Qtd", frac: 0.10, align: "C"},
	{title: "Valor Unit.", frac: 0.175, align: "R"},
	{title: "Valor Total", frac: 0.175, align: "R"},
}

var rentalColumns = []tableColumn{
	{title: "Equipamento", frac: 0.45, align: "L"},
	{title: "Qtd", frac: 0.10, align: "C"},
	{title: "Valor Mensal", frac: 0.25, align: "R"},
	{title: "Período (meses)", frac: 0.20, align: "C"},
}

func (b *build) itemsTable(page model.TemplatePage, el *model.Element) {
	columns := purchaseColumns
	title := "ITENS DA PROPOSTA"
	if b.opts.Kind == model.DocumentKindRental {
		columns = rentalColumns
		title = "EQUIPAMENTOS DA LOCAÇÃO"
	}

	y := b.tableSection(el, columns, title, el.Y)

	for i, item := range b.ctx.Items() {
		cells := b.itemCells(el, i, item)
		rowH := b.rowHeight(cells, columns, el.W)
		if y+rowH > tableBottomPt {
			y = b.tableBreak(page, el, columns, title)
		}
		b.tableRow(el, columns, cells, y, rowH, false)
		y += rowH
	}

	totalCells := b.totalCells(columns)
	totalH := tableHeaderHeightPt
	if y+totalH > tableBottomPt {
		y = b.tableBreak(page, el, columns, title)
	}
	b.tableRow(el, columns, totalCells, y, totalH, true)
}

// tableSection emite o título da seção e a linha de cabeçalho e devolve
// o Y da primeira linha de dados.
func (b *build) tableSection(el *model.Element, columns []tableColumn, title string, y float64) float64 {
	b.ops = append(b.ops, PlaceText{
		X:          el.X,
		Y:          y,
		W:          el.W,
		Lines:      []string{title},
		LineHeight: 12,
		Font:       model.FontStyle{Family: defaultFontFamily, Size: 11, Bold: true},
	})
	y += sectionTitleHeightPt

	b.ops = append(b.ops, FillRect{
		Box:  Box{X: el.X, Y: y, W: el.W, H: tableHeaderHeightPt},
		Fill: &model.Color{R: 230, G: 230, B: 230},
	})
	x := el.X
	for _, col := range columns {
		colW := col.frac * el.W
		b.ops = append(b.ops, PlaceText{
			X:          x + cellPaddingPt,
			Y:          y + 4,
			W:          colW - 2*cellPaddingPt,
			Lines:      []string{col.title},
			LineHeight: tableFontSize + 2,
			Font:       model.FontStyle{Family: defaultFontFamily, Size: tableFontSize, Bold: true},
			Align:      col.align,
		})
		x += colW
	}
	return y + tableHeaderHeightPt
}

// tableBreak fecha a página corrente e abre a de continuação, com o
// chrome da página da tabela e a seção reaberta na margem reduzida.
func (b *build) tableBreak(page model.TemplatePage, el *model.Element, columns []tableColumn, title string) float64 {
	if page.HasFooter {
		b.emitFooter()
	}
	b.ops = append(b.ops, EndPage{Number: b.page})

	b.page++
	b.ops = append(b.ops, BeginPage{Number: b.page, Border: true})
	if page.HasHeader {
		b.emitHeader()
	}
	return b.tableSection(el, columns, title, tableContinuationTopPt)
}

func (b *build) itemCells(el *model.Element, index int, item model.DocumentItem) []string {
	if b.opts.Kind == model.DocumentKindRental {
		return []string{
			format.Sanitize(item.Name),
			formatQty(item.Quantity),
			format.Currency(item.UnitValue),
			strconv.Itoa(item.Months),
		}
	}
	return []string{
		strconv.Itoa(item.Position),
		b.itemDescription(el, item),
		formatQty(item.Quantity),
		format.Currency(item.UnitValue),
		format.Currency(item.Total),
	}
}

// itemDescription compõe a célula de descrição conforme o tipo do item.
func (b *build) itemDescription(el *model.Element, item model.DocumentItem) string {
	switch item.Kind {
	case model.ItemKindService:
		var sb strings.Builder
		sb.WriteString("Serviço: ")
		sb.WriteString(item.Name)
		sb.WriteString("\nDetalhes:")
		if item.LaborValue > 0 {
			sb.WriteString(fmt.Sprintf("\n- Mão de obra: R$%.2f", item.LaborValue))
		}
		if item.TravelValue > 0 {
			sb.WriteString(fmt.Sprintf("\n- Deslocamento: R$%.2f", item.TravelValue))
		}
		if item.LodgingValue > 0 {
			sb.WriteString(fmt.Sprintf("\n- Estadia: R$%.2f", item.LodgingValue))
		}
		return format.Sanitize(sb.String())
	case model.ItemKindKit:
		if item.CompositionErr {
			b.diag(model.DiagKitCompositionUnavailable, el.ID,
				fmt.Sprintf("composição do kit %q indisponível", item.Name))
			return "Erro ao carregar composição"
		}
		var sb strings.Builder
		sb.WriteString("Kit: ")
		sb.WriteString(item.Name)
		sb.WriteString("\nComposição:")
		for _, comp := range item.Composition {
			sb.WriteString(fmt.Sprintf("\n%s x %s", formatQty(comp.Quantity), comp.Name))
		}
		return format.Sanitize(sb.String())
	case model.ItemKindRental:
		return format.Sanitize("Locação - " + item.Name)
	default:
		return format.Sanitize(item.Name)
	}
}

func (b *build) totalCells(columns []tableColumn) []string {
	if b.opts.Kind == model.DocumentKindRental {
		total := 0.0
		for _, item := range b.ctx.Items() {
			total += item.Quantity * item.UnitValue * float64(item.Months)
		}
		return []string{"TOTAL GERAL", "", format.Currency(total), ""}
	}
	total := 0.0
	for _, item := range b.ctx.Items() {
		total += item.Total
	}
	return []string{"", "TOTAL", "", "", format.Currency(total)}
}

// rowHeight mede a linha pela célula mais alta depois da quebra de
// texto na largura de cada coluna.
func (b *build) rowHeight(cells []string, columns []tableColumn, tableW float64) float64 {
	maxLines := 1
	for i, cell := range cells {
		colW := columns[i].frac * tableW
		if n := len(wrapText(cell, colW, tableFontSize)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*(tableFontSize+2) + 6
}

func (b *build) tableRow(el *model.Element, columns []tableColumn, cells []string, y, rowH float64, bold bool) {
	x := el.X
	for i, col := range columns {
		colW := col.frac * el.W
		lines := wrapText(cells[i], colW, tableFontSize)
		b.ops = append(b.ops, PlaceText{
			X:          x + cellPaddingPt,
			Y:          y + 3,
			W:          colW - 2*cellPaddingPt,
			Lines:      lines,
			LineHeight: tableFontSize + 2,
			Font:       model.FontStyle{Family: defaultFontFamily, Size: tableFontSize, Bold: bold},
			Align:      col.align,
		})
		x += colW
	}
	b.ops = append(b.ops, StrokeLine{
		X1:        el.X,
		Y1:        y + rowH,
		X2:        el.X + el.W,
		Y2:        y + rowH,
		Thickness: 0.5,
		Color:     model.Color{R: 180, G: 180, B: 180},
	})
}

// literalTable desenha uma tabela embutida no template, sem fluxo.
func (b *build) literalTable(el *model.Element) {
	columns := make([]tableColumn, len(el.TableHeader))
	for i, header := range el.TableHeader {
		columns[i] = tableColumn{title: header, frac: 1.0 / float64(len(el.TableHeader)), align: "L"}
	}

	y := el.Y
	b.ops = append(b.ops, FillRect{
		Box:  Box{X: el.X, Y: y, W: el.W, H: tableHeaderHeightPt},
		Fill: &model.Color{R: 230, G: 230, B: 230},
	})
	x := el.X
	for _, col := range columns {
		colW := col.frac * el.W
		b.ops = append(b.ops, PlaceText{
			X:          x + cellPaddingPt,
			Y:          y + 4,
			W:          colW - 2*cellPaddingPt,
			Lines:      []string{format.Sanitize(col.title)},
			LineHeight: tableFontSize + 2,
			Font:       model.FontStyle{Family: defaultFontFamily, Size: tableFontSize, Bold: true},
		})
		x += colW
	}
	y += tableHeaderHeightPt

	for _, row := range el.TableRows {
		cells := make([]string, len(columns))
		for i := range columns {
			if i < len(row) {
				cells[i] = b.ctx.Resolve(row[i])
			}
		}
		b.drainMissing(el.ID)
		rowH := b.rowHeight(cells, columns, el.W)
		b.tableRow(el, columns, cells, y, rowH, false)
		y += rowH
	}
}
