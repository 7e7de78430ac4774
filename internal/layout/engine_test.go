package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aircomp/propostas-service/internal/model"
	"github.com/aircomp/propostas-service/internal/resolver"
)

func testContext(kind model.DocumentKind, items []model.DocumentItem) *resolver.Context {
	bundle := model.DocumentBundle{
		Document: model.Document{
			Number:    "2024/0001",
			Kind:      kind,
			IssueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Total:     1000,
		},
		Items:  items,
		Filial: model.Filial{TradeName: "AirComp Matriz", CNPJ: "12345678000190", Email: "x@y.br", Phones: "(11) 1111-1111"},
		Client: model.Client{LegalName: "Cliente Teste"},
	}
	return resolver.BuildContext(bundle, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
}

func TestWrapText(t *testing.T) {
	t.Run("curto fica numa linha", func(t *testing.T) {
		lines := wrapText("abc", 100, 10)
		if len(lines) != 1 || lines[0] != "abc" {
			t.Fatalf("lines = %v", lines)
		}
	})

	t.Run("quebra por palavra dentro da largura", func(t *testing.T) {
		// w=100, corpo 10 → 26 caracteres por linha.
		lines := wrapText("uma frase comprida que precisa de mais de uma linha", 100, 10)
		if len(lines) < 2 {
			t.Fatalf("esperava quebra, got %v", lines)
		}
		for _, line := range lines {
			if len(line) > 26 {
				t.Fatalf("linha %q excede 26 caracteres", line)
			}
		}
	})

	t.Run("palavra maior que a linha é partida", func(t *testing.T) {
		word := strings.Repeat("x", 40)
		lines := wrapText(word, 100, 10)
		if len(lines) != 2 || lines[0] != strings.Repeat("x", 26) || lines[1] != strings.Repeat("x", 14) {
			t.Fatalf("lines = %v", lines)
		}
	})

	t.Run("mínimo de três caracteres por linha", func(t *testing.T) {
		lines := wrapText("abcdef", 8, 10)
		if len(lines) != 2 || lines[0] != "abc" || lines[1] != "def" {
			t.Fatalf("lines = %v", lines)
		}
	})

	t.Run("vazio produz uma linha vazia", func(t *testing.T) {
		lines := wrapText("", 100, 10)
		if len(lines) != 1 || lines[0] != "" {
			t.Fatalf("lines = %v", lines)
		}
	})

	t.Run("parágrafos preservados", func(t *testing.T) {
		lines := wrapText("a\nb", 100, 10)
		if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
			t.Fatalf("lines = %v", lines)
		}
	})
}

func TestTextBoxTruncatesAndReports(t *testing.T) {
	b := &build{ctx: testContext(model.DocumentKindPurchase, nil), page: 1}
	el := &model.Element{
		ID:   uuid.New(),
		Kind: model.ElementText,
		X:    40, Y: 100, W: 100, H: 12,
		Font: model.FontStyle{Size: 10},
	}

	b.textBox(el, "uma frase comprida que nao cabe de jeito nenhum neste box")

	var placed *PlaceText
	for _, op := range b.ops {
		if p, ok := op.(PlaceText); ok {
			placed = &p
		}
	}
	if placed == nil {
		t.Fatal("nenhum PlaceText emitido")
	}
	if len(placed.Lines) != 1 {
		t.Fatalf("esperava truncar em 1 linha, got %d", len(placed.Lines))
	}

	if len(b.diags) != 1 || b.diags[0].Kind != model.DiagTextOverflow {
		t.Fatalf("diags = %+v", b.diags)
	}
	if b.diags[0].ElementID != el.ID || b.diags[0].Page != 1 {
		t.Fatalf("diagnóstico sem origem: %+v", b.diags[0])
	}
}

func TestTextBoxCentersWhenBlockFits(t *testing.T) {
	b := &build{ctx: testContext(model.DocumentKindPurchase, nil)}
	el := &model.Element{
		ID:   uuid.New(),
		Kind: model.ElementText,
		X:    40, Y: 100, W: 200, H: 60,
		Font: model.FontStyle{Size: 10},
	}

	b.textBox(el, "linha única")

	placed, ok := b.ops[len(b.ops)-1].(PlaceText)
	if !ok {
		t.Fatalf("última op não é PlaceText: %T", b.ops[len(b.ops)-1])
	}
	// Bloco de 12pt num box de 60pt: centro em Y + 24.
	if placed.Y != 124 {
		t.Fatalf("Y = %v, want 124", placed.Y)
	}
}

func TestMissingTokenBecomesDiagnostic(t *testing.T) {
	b := &build{ctx: testContext(model.DocumentKindPurchase, nil), page: 2}
	el := &model.Element{
		ID:   uuid.New(),
		Kind: model.ElementText,
		X:    40, Y: 100, W: 300, H: 20,
		Font: model.FontStyle{Size: 10},
	}

	b.textBox(el, b.ctx.Resolve("ref {token_inexistente}"))

	placed := b.ops[len(b.ops)-1].(PlaceText)
	if placed.Lines[0] != "ref [token_inexistente]" {
		t.Fatalf("linha = %q", placed.Lines[0])
	}
	if len(b.diags) != 1 || b.diags[0].Kind != model.DiagResolverMissingField {
		t.Fatalf("diags = %+v", b.diags)
	}
}

func TestCoverPolicy(t *testing.T) {
	engine := NewEngine()
	tpl := &model.Template{
		Name: "capa",
		Kind: model.DocumentKindPurchase,
		Pages: []model.TemplatePage{
			{Number: 1, IsCover: true},
		},
	}
	ctx := testContext(model.DocumentKindPurchase, nil)

	t.Run("arquivos ausentes deixam a capa em branco sem diagnóstico", func(t *testing.T) {
		ops, diags := engine.Build(tpl, ctx, Options{
			Kind:            model.DocumentKindPurchase,
			CoverBackground: "nao-existe.jpg",
			CoverInner:      "tambem-nao.jpg",
		})
		if len(diags) != 0 {
			t.Fatalf("diags = %+v", diags)
		}
		if len(ops) != 2 {
			t.Fatalf("esperava só BeginPage e EndPage, got %d ops", len(ops))
		}
		begin, ok := ops[0].(BeginPage)
		if !ok || begin.Border {
			t.Fatalf("capa não deve ter borda: %+v", ops[0])
		}
	})

	t.Run("fundo existente vira operação de capa", func(t *testing.T) {
		bg := filepath.Join(t.TempDir(), "fundo.jpg")
		if err := os.WriteFile(bg, []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
		ops, _ := engine.Build(tpl, ctx, Options{Kind: model.DocumentKindPurchase, CoverBackground: bg})
		found := false
		for _, op := range ops {
			if cover, ok := op.(EmitCoverBackground); ok && cover.Path == bg {
				found = true
			}
		}
		if !found {
			t.Fatal("EmitCoverBackground não emitido")
		}
	})

	t.Run("capa do usuário centralizada", func(t *testing.T) {
		inner := filepath.Join(t.TempDir(), "capa.jpg")
		if err := os.WriteFile(inner, []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
		ops, _ := engine.Build(tpl, ctx, Options{Kind: model.DocumentKindPurchase, CoverInner: inner})
		var img *PlaceImage
		for _, op := range ops {
			if p, ok := op.(PlaceImage); ok {
				img = &p
			}
		}
		if img == nil {
			t.Fatal("PlaceImage não emitido")
		}
		if !img.Silent {
			t.Fatal("capa do usuário deve ser silenciosa")
		}
		wantW := 120 * ptPerMM
		if img.Box.W != wantW || img.Box.X != (model.PageWidthPt-wantW)/2 {
			t.Fatalf("box = %+v", img.Box)
		}
	})
}

func TestBuildChromePerPage(t *testing.T) {
	engine := NewEngine()
	tpl := &model.Template{
		Name: "duas páginas",
		Kind: model.DocumentKindPurchase,
		Pages: []model.TemplatePage{
			{Number: 1, HasHeader: true, HasFooter: true},
			{Number: 2, HasHeader: true, HasFooter: false},
		},
	}
	ops, diags := engine.Build(tpl, testContext(model.DocumentKindPurchase, nil), Options{Kind: model.DocumentKindPurchase})
	if len(diags) != 0 {
		t.Fatalf("diags = %+v", diags)
	}

	var begins, headers, footers int
	lastPage := 0
	for _, op := range ops {
		switch o := op.(type) {
		case BeginPage:
			begins++
			if o.Number <= lastPage {
				t.Fatalf("número de página não monotônico: %d depois de %d", o.Number, lastPage)
			}
			lastPage = o.Number
			if !o.Border {
				t.Fatal("páginas de conteúdo devem ter borda")
			}
		case EmitHeader:
			headers++
			if o.FilialName != "AirComp Matriz" {
				t.Fatalf("cabeçalho com filial %q", o.FilialName)
			}
		case EmitFooter:
			footers++
		}
	}
	if begins != 2 || headers != 2 || footers != 1 {
		t.Fatalf("begins=%d headers=%d footers=%d", begins, headers, footers)
	}
}
