// Package layout converte um template mais o contexto resolvido numa
// lista de operações de desenho consumida pelo renderizador de PDF.
package layout

import (
	"github.com/google/uuid"

	"github.com/aircomp/propostas-service/internal/model"
)

// Box é um retângulo em pontos, origem no canto superior esquerdo da
// página (espaço 595x842 do template).
type Box struct {
	X, Y, W, H float64
}

// Op é uma operação de desenho com posição absoluta; não há fluxo
// implícito entre operações.
type Op interface {
	op()
}

type BeginPage struct {
	Number int
	// Borda externa de 5 mm; desligada em páginas de capa.
	Border bool
}

type EndPage struct {
	Number int
}

// EmitHeader carrega as strings já resolvidas do chrome de cabeçalho.
type EmitHeader struct {
	FilialName string
	Number     string
	Date       string
}

// EmitFooter carrega as três linhas centralizadas do rodapé.
type EmitFooter struct {
	Address string
	CNPJ    string
	Contact string
}

type EmitCoverBackground struct {
	Path string
}

// PlaceText posiciona linhas já quebradas; o renderizador apenas as
// desenha uma a uma a partir de Y.
type PlaceText struct {
	X          float64
	Y          float64
	W          float64
	Lines      []string
	LineHeight float64
	Font       model.FontStyle
	Align      string // "L", "C" ou "R"
}

type PlaceImage struct {
	Box  Box
	Path string
	// Identidade para diagnósticos do renderizador.
	ElementID uuid.UUID
	Page      int
	// Imagens de capa ausentes são ignoradas em silêncio.
	Silent bool
}

type StrokeLine struct {
	X1, Y1, X2, Y2 float64
	Thickness      float64
	Color          model.Color
}

type FillRect struct {
	Box         Box
	Fill        *model.Color
	Stroke      *model.Color
	StrokeWidth float64
}

func (BeginPage) op()           {}
func (EndPage) op()             {}
func (EmitHeader) op()          {}
func (EmitFooter) op()          {}
func (EmitCoverBackground) op() {}
func (PlaceText) op()           {}
func (PlaceImage) op()          {}
func (StrokeLine) op()          {}
func (FillRect) op()            {}
