package model

import "github.com/google/uuid"

// Página A4 no espaço de coordenadas interno do template, em pontos,
// origem no canto superior esquerdo.
const (
	PageWidthPt  = 595.0
	PageHeightPt = 842.0
)

type ElementKind string

const (
	ElementText         ElementKind = "text"
	ElementDynamicField ElementKind = "dynamic_field"
	ElementImage        ElementKind = "image"
	ElementLine         ElementKind = "line"
	ElementRectangle    ElementKind = "rectangle"
	ElementTable        ElementKind = "table"
)

type FontStyle struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
	Color  Color
}

type Color struct {
	R, G, B int
}

// Element é um elemento posicionado de forma absoluta numa página do
// template. Os campos usados dependem de Kind.
type Element struct {
	ID   uuid.UUID
	Kind ElementKind
	X    float64
	Y    float64
	W    float64
	H    float64
	Font FontStyle

	// text: conteúdo literal (pode conter {token}).
	// image: caminho do arquivo.
	Content string

	// dynamic_field: campo do resolvedor mais template de conteúdo
	// opcional, ex. "CNPJ: {value}". Vazio equivale a "{value}".
	CurrentField    string
	ContentTemplate string

	// rectangle.
	FillColor   *Color
	BorderColor *Color
	BorderWidth float64

	// table: fonte das linhas ("items" usa os itens do documento) e
	// colunas, quando a tabela é literal.
	RowSource   string
	TableHeader []string
	TableRows   [][]string
}

type TemplatePage struct {
	Number    int
	Editable  bool
	HasHeader bool
	HasFooter bool
	// Página de capa: fundo de página inteira, sem chrome nem elementos.
	IsCover  bool
	Elements []Element
}

type Template struct {
	ID      uuid.UUID
	Name    string
	Kind    DocumentKind
	Version int
	Pages   []TemplatePage
}
