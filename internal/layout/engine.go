package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aircomp/propostas-service/internal/model"
	"github.com/aircomp/propostas-service/internal/resolver"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 10.0

	// Limite vertical da tabela de itens; abaixo disso a linha vai para
	// a página seguinte. Reserva o bloco de rodapé (últimos 25 mm).
	tableBottomPt = model.PageHeightPt - 75

	// Margem superior reduzida da seção de itens em páginas de
	// continuação, logo abaixo do chrome de cabeçalho.
	tableContinuationTopPt = 40 * ptPerMM

	sectionTitleHeightPt = 18.0
	tableHeaderHeightPt  = 18.0
	tableFontSize        = 9.0
	cellPaddingPt        = 4.0

	ptPerMM = 72.0 / 25.4
)

// Options parametriza uma construção de lista de desenho.
type Options struct {
	Kind model.DocumentKind
	// Caminhos da política de capa, já escolhidos pelo montador.
	// Arquivos ausentes deixam a capa em branco, sem diagnóstico.
	CoverBackground string
	CoverInner      string
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// build carrega o estado de uma única construção.
type build struct {
	ops   []Op
	diags []model.Diagnostic
	ctx   *resolver.Context
	opts  Options
	page  int // número da página de saída, 1-based
}

// Build percorre as páginas do template na ordem declarada e emite a
// lista de operações de desenho, mais os diagnósticos recuperados.
func (e *Engine) Build(tpl *model.Template, ctx *resolver.Context, opts Options) ([]Op, []model.Diagnostic) {
	b := &build{ctx: ctx, opts: opts}

	for _, page := range tpl.Pages {
		b.page++
		if page.IsCover {
			b.emitCover()
			continue
		}

		b.ops = append(b.ops, BeginPage{Number: b.page, Border: true})
		if page.HasHeader {
			b.emitHeader()
		}
		for i := range page.Elements {
			b.element(page, &page.Elements[i])
		}
		if page.HasFooter {
			b.emitFooter()
		}
		b.ops = append(b.ops, EndPage{Number: b.page})
	}

	return b.ops, b.diags
}

func (b *build) emitCover() {
	b.ops = append(b.ops, BeginPage{Number: b.page, Border: false})
	if b.opts.CoverBackground != "" && fileExists(b.opts.CoverBackground) {
		b.ops = append(b.ops, EmitCoverBackground{Path: b.opts.CoverBackground})
	}
	if b.opts.CoverInner != "" && fileExists(b.opts.CoverInner) {
		w := 120 * ptPerMM
		h := 120 * ptPerMM
		b.ops = append(b.ops, PlaceImage{
			Box:    Box{X: (model.PageWidthPt - w) / 2, Y: 105 * ptPerMM, W: w, H: h},
			Path:   b.opts.CoverInner,
			Silent: true,
		})
	}
	b.ops = append(b.ops, EndPage{Number: b.page})
}

func (b *build) emitHeader() {
	b.ops = append(b.ops, EmitHeader{
		FilialName: b.lookup("filial_nome"),
		Number:     b.lookup("numero_proposta"),
		Date:       b.lookup("data_criacao"),
	})
}

func (b *build) emitFooter() {
	b.ops = append(b.ops, EmitFooter{
		Address: b.lookup("filial_endereco_completo"),
		CNPJ:    b.lookup("filial_cnpj"),
		Contact: b.lookup("filial_contato_completo"),
	})
}

func (b *build) lookup(token string) string {
	value, _ := b.ctx.Lookup(token)
	return value
}

func (b *build) element(page model.TemplatePage, el *model.Element) {
	switch el.Kind {
	case model.ElementText:
		b.textBox(el, b.ctx.Resolve(el.Content))
	case model.ElementDynamicField:
		b.textBox(el, b.ctx.ResolveDynamic(el.ContentTemplate, el.CurrentField))
	case model.ElementImage:
		path := b.ctx.Resolve(el.Content)
		b.drainMissing(el.ID)
		if strings.TrimSpace(path) == "" {
			b.diag(model.DiagImageMissing, el.ID, "elemento de imagem sem caminho")
			return
		}
		b.ops = append(b.ops, PlaceImage{
			Box:       Box{X: el.X, Y: el.Y, W: el.W, H: el.H},
			Path:      path,
			ElementID: el.ID,
			Page:      b.page,
		})
	case model.ElementLine:
		b.ops = append(b.ops, StrokeLine{
			X1:        el.X,
			Y1:        el.Y + el.H/2,
			X2:        el.X + el.W,
			Y2:        el.Y + el.H/2,
			Thickness: lineThickness(el),
			Color:     lineColor(el),
		})
	case model.ElementRectangle:
		b.ops = append(b.ops, FillRect{
			Box:         Box{X: el.X, Y: el.Y, W: el.W, H: el.H},
			Fill:        el.FillColor,
			Stroke:      el.BorderColor,
			StrokeWidth: el.BorderWidth,
		})
	case model.ElementTable:
		if el.RowSource == "items" {
			b.itemsTable(page, el)
		} else {
			b.literalTable(el)
		}
	}
}

// textBox aplica o contrato de posicionamento de texto: quebra gulosa
// por palavra na largura do box, teto de linhas pela altura e centro
// vertical quando o bloco cabe com folga.
func (b *build) textBox(el *model.Element, content string) {
	b.drainMissing(el.ID)

	font := elementFont(el)
	lines := wrapText(content, el.W, font.Size)
	lineHeight := font.Size + 2

	maxLines := int(el.H / lineHeight)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		b.diag(model.DiagTextOverflow, el.ID,
			fmt.Sprintf("texto truncado em %d linhas", maxLines))
	}

	y := el.Y
	if blockH := float64(len(lines)) * lineHeight; blockH < el.H {
		y = el.Y + (el.H-blockH)/2
	}

	b.ops = append(b.ops, PlaceText{
		X:          el.X,
		Y:          y,
		W:          el.W,
		Lines:      lines,
		LineHeight: lineHeight,
		Font:       font,
	})
}

// wrapText quebra o conteúdo em linhas que caibam na largura dada.
// Largura efetiva de caractere ~= 0.35 * corpo da fonte; palavras
// maiores que a linha são partidas.
func wrapText(content string, w, fontSize float64) []string {
	maxChars := int((w - 8) / (0.35 * fontSize))
	if maxChars < 3 {
		maxChars = 3
	}

	var lines []string
	for _, paragraph := range strings.Split(content, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxChars)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func wrapParagraph(paragraph string, maxChars int) []string {
	if len(paragraph) <= maxChars {
		return []string{paragraph}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(paragraph) {
		for len(word) > maxChars {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:maxChars])
			word = word[maxChars:]
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxChars:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (b *build) drainMissing(elementID uuid.UUID) {
	for _, token := range b.ctx.DrainMissing() {
		b.diag(model.DiagResolverMissingField, elementID,
			fmt.Sprintf("token não resolvido: %s", token))
	}
}

func (b *build) diag(kind model.DiagnosticKind, elementID uuid.UUID, message string) {
	b.diags = append(b.diags, model.Diagnostic{
		Kind:      kind,
		ElementID: elementID,
		Page:      b.page,
		Message:   message,
	})
}

func elementFont(el *model.Element) model.FontStyle {
	font := el.Font
	if font.Family == "" {
		font.Family = defaultFontFamily
	}
	if font.Size == 0 {
		font.Size = defaultFontSize
	}
	return font
}

func lineThickness(el *model.Element) float64 {
	if el.BorderWidth > 0 {
		return el.BorderWidth
	}
	return 1
}

func lineColor(el *model.Element) model.Color {
	if el.BorderColor != nil {
		return *el.BorderColor
	}
	return el.Font.Color
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strings.Replace(strconv.FormatFloat(q, 'f', 2, 64), ".", ",", 1)
}
