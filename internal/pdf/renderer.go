// Package pdf materializa a lista de desenho do layout em bytes de PDF
// usando gofpdf.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/aircomp/propostas-service/internal/format"
	"github.com/aircomp/propostas-service/internal/layout"
	"github.com/aircomp/propostas-service/internal/model"
)

const mmPerPt = 25.4 / 72.0

// Cor de destaque do rodapé.
var footerAccent = model.Color{R: 137, G: 207, B: 240}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render emite um PDF A4 a partir da lista de desenho. As coordenadas
// das operações estão em pontos com origem no canto superior esquerdo;
// a conversão de eixo para mm acontece aqui. O carimbo de data do
// arquivo é fixado em creationDate para que duas renderizações do mesmo
// documento produzam bytes idênticos.
func (r *Renderer) Render(ops []layout.Op, creationDate time.Time) ([]byte, []model.Diagnostic, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	if !creationDate.IsZero() {
		doc.SetCreationDate(creationDate)
		doc.SetModificationDate(creationDate)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	var diags []model.Diagnostic

	for _, op := range ops {
		switch o := op.(type) {
		case layout.BeginPage:
			doc.AddPage()
			if o.Border {
				doc.SetDrawColor(120, 120, 120)
				doc.SetLineWidth(0.3)
				doc.Rect(5, 5, 200, 287, "D")
			}
		case layout.EndPage:
			// nada a fazer; a página seguinte abre com BeginPage

		case layout.EmitCoverBackground:
			// capa ausente fica em branco, sem diagnóstico
			_ = r.image(doc, o.Path, 0, 0, 210, 297, true)

		case layout.EmitHeader:
			r.header(doc, tr, o)

		case layout.EmitFooter:
			r.footer(doc, tr, o)

		case layout.PlaceText:
			r.text(doc, tr, o)

		case layout.PlaceImage:
			diag := r.image(doc, o.Path,
				o.Box.X*mmPerPt, o.Box.Y*mmPerPt, o.Box.W*mmPerPt, o.Box.H*mmPerPt, false)
			if diag != nil && !o.Silent {
				diag.ElementID = o.ElementID
				diag.Page = o.Page
				diags = append(diags, *diag)
			}

		case layout.StrokeLine:
			doc.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
			doc.SetLineWidth(o.Thickness * mmPerPt)
			doc.Line(o.X1*mmPerPt, o.Y1*mmPerPt, o.X2*mmPerPt, o.Y2*mmPerPt)

		case layout.FillRect:
			r.rect(doc, o)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, diags, err
	}
	return buf.Bytes(), diags, nil
}

func (r *Renderer) header(doc *gofpdf.Fpdf, tr func(string) string, o layout.EmitHeader) {
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 11)
	doc.SetXY(10, 11)
	doc.CellFormat(100, 6, tr(format.Sanitize(o.FilialName)), "", 0, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.SetXY(120, 11)
	doc.CellFormat(80, 5, tr("PROPOSTA COMERCIAL:"), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.SetXY(120, 17)
	doc.CellFormat(80, 4, tr(format.Sanitize("NÚMERO: "+o.Number)), "", 0, "L", false, 0, "")
	doc.SetXY(120, 22)
	doc.CellFormat(80, 4, tr(format.Sanitize("DATA: "+o.Date)), "", 0, "L", false, 0, "")

	doc.SetDrawColor(footerAccent.R, footerAccent.G, footerAccent.B)
	doc.SetLineWidth(0.4)
	doc.Line(10, 30, 200, 30)
}

// footer pinta as três linhas centralizadas na cor de destaque dentro
// dos últimos 25 mm da página, com um filete acima do bloco. Nunca é
// chamado em páginas de capa.
func (r *Renderer) footer(doc *gofpdf.Fpdf, tr func(string) string, o layout.EmitFooter) {
	doc.SetDrawColor(footerAccent.R, footerAccent.G, footerAccent.B)
	doc.SetLineWidth(0.2)
	doc.Line(10, 275, 200, 275)

	doc.SetTextColor(footerAccent.R, footerAccent.G, footerAccent.B)
	doc.SetFont("Helvetica", "", 8)
	lines := []string{
		o.Address,
		"CNPJ: " + o.CNPJ,
		o.Contact,
	}
	y := 278.0
	for _, line := range lines {
		doc.SetXY(10, y)
		doc.CellFormat(190, 4, tr(format.Sanitize(line)), "", 0, "C", false, 0, "")
		y += 4.5
	}
	doc.SetTextColor(0, 0, 0)
}

func (r *Renderer) text(doc *gofpdf.Fpdf, tr func(string) string, o layout.PlaceText) {
	family, style := fontFor(o.Font)
	doc.SetFont(family, style, o.Font.Size)
	doc.SetTextColor(o.Font.Color.R, o.Font.Color.G, o.Font.Color.B)

	align := o.Align
	if align == "" {
		align = "L"
	}
	y := o.Y
	for _, line := range o.Lines {
		doc.SetXY(o.X*mmPerPt, y*mmPerPt)
		doc.CellFormat(o.W*mmPerPt, o.LineHeight*mmPerPt, tr(format.Sanitize(line)), "", 0, align, false, 0, "")
		y += o.LineHeight
	}
	doc.SetTextColor(0, 0, 0)
}

func (r *Renderer) rect(doc *gofpdf.Fpdf, o layout.FillRect) {
	styleStr := ""
	if o.Fill != nil {
		doc.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
		styleStr += "F"
	}
	if o.Stroke != nil {
		doc.SetDrawColor(o.Stroke.R, o.Stroke.G, o.Stroke.B)
		width := o.StrokeWidth
		if width <= 0 {
			width = 1
		}
		doc.SetLineWidth(width * mmPerPt)
		styleStr += "D"
	}
	if styleStr == "" {
		return
	}
	doc.Rect(o.Box.X*mmPerPt, o.Box.Y*mmPerPt, o.Box.W*mmPerPt, o.Box.H*mmPerPt, styleStr)
}

// image valida e desenha um arquivo de imagem; devolve o diagnóstico a
// registrar quando o arquivo falta ou o formato não é suportado.
func (r *Renderer) image(doc *gofpdf.Fpdf, path string, x, y, w, h float64, fullPage bool) *model.Diagnostic {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &model.Diagnostic{
			Kind:    model.DiagImageMissing,
			Message: fmt.Sprintf("imagem não encontrada: %s", path),
		}
	}

	imageType := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		imageType = "JPG"
	case ".png":
		imageType = "PNG"
	default:
		return &model.Diagnostic{
			Kind:    model.DiagImageUnsupported,
			Message: fmt.Sprintf("formato de imagem não suportado: %s", path),
		}
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	if fullPage {
		doc.ImageOptions(path, 0, 0, 210, 297, false, opts, 0, "")
		return nil
	}
	doc.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	return nil
}

// fontFor mapeia a tipografia do elemento para as famílias internas do
// PDF. Famílias desconhecidas caem em Helvetica no estilo mais próximo.
func fontFor(font model.FontStyle) (string, string) {
	family := "Helvetica"
	switch strings.ToLower(font.Family) {
	case "times", "times new roman", "serif":
		family = "Times"
	case "courier", "courier new", "mono", "monospace":
		family = "Courier"
	}

	style := ""
	if font.Bold {
		style += "B"
	}
	if font.Italic {
		style += "I"
	}
	return family, style
}
