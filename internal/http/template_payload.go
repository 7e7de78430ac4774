package http

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aircomp/propostas-service/internal/model"
)

// Representação JSON dos templates na API. A conversão para o modelo
// valida apenas a forma; as regras de conteúdo ficam com o Validate do
// armazém de templates.

type templatePayload struct {
	Name    string        `json:"name"`
	Kind    string        `json:"kind" binding:"required"`
	Version int           `json:"version"`
	Pages   []pagePayload `json:"pages" binding:"required"`
}

type pagePayload struct {
	Number    int              `json:"number"`
	Editable  bool             `json:"editable"`
	HasHeader bool             `json:"has_header"`
	HasFooter bool             `json:"has_footer"`
	IsCover   bool             `json:"is_cover"`
	Elements  []elementPayload `json:"elements"`
}

type elementPayload struct {
	ID              string       `json:"id,omitempty"`
	Kind            string       `json:"kind" binding:"required"`
	X               float64      `json:"x"`
	Y               float64      `json:"y"`
	W               float64      `json:"w"`
	H               float64      `json:"h"`
	Font            *fontPayload `json:"font,omitempty"`
	Content         string       `json:"content,omitempty"`
	CurrentField    string       `json:"current_field,omitempty"`
	ContentTemplate string       `json:"content_template,omitempty"`
	FillColor       *colorJSON   `json:"fill_color,omitempty"`
	BorderColor     *colorJSON   `json:"border_color,omitempty"`
	BorderWidth     float64      `json:"border_width,omitempty"`
	RowSource       string       `json:"row_source,omitempty"`
	TableHeader     []string     `json:"table_header,omitempty"`
	TableRows       [][]string   `json:"table_rows,omitempty"`
}

type fontPayload struct {
	Family string    `json:"family,omitempty"`
	Size   float64   `json:"size,omitempty"`
	Bold   bool      `json:"bold,omitempty"`
	Italic bool      `json:"italic,omitempty"`
	Color  colorJSON `json:"color"`
}

type colorJSON struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func templateToPayload(tpl *model.Template) templatePayload {
	payload := templatePayload{
		Name:    tpl.Name,
		Kind:    string(tpl.Kind),
		Version: tpl.Version,
		Pages:   make([]pagePayload, 0, len(tpl.Pages)),
	}
	for _, page := range tpl.Pages {
		p := pagePayload{
			Number:    page.Number,
			Editable:  page.Editable,
			HasHeader: page.HasHeader,
			HasFooter: page.HasFooter,
			IsCover:   page.IsCover,
			Elements:  make([]elementPayload, 0, len(page.Elements)),
		}
		for _, el := range page.Elements {
			p.Elements = append(p.Elements, elementToPayload(el))
		}
		payload.Pages = append(payload.Pages, p)
	}
	return payload
}

func elementToPayload(el model.Element) elementPayload {
	payload := elementPayload{
		Kind:            string(el.Kind),
		X:               el.X,
		Y:               el.Y,
		W:               el.W,
		H:               el.H,
		Content:         el.Content,
		CurrentField:    el.CurrentField,
		ContentTemplate: el.ContentTemplate,
		BorderWidth:     el.BorderWidth,
		RowSource:       el.RowSource,
		TableHeader:     el.TableHeader,
		TableRows:       el.TableRows,
	}
	if el.ID != uuid.Nil {
		payload.ID = el.ID.String()
	}
	if el.Font != (model.FontStyle{}) {
		payload.Font = &fontPayload{
			Family: el.Font.Family,
			Size:   el.Font.Size,
			Bold:   el.Font.Bold,
			Italic: el.Font.Italic,
			Color:  colorJSON(el.Font.Color),
		}
	}
	if el.FillColor != nil {
		c := colorJSON(*el.FillColor)
		payload.FillColor = &c
	}
	if el.BorderColor != nil {
		c := colorJSON(*el.BorderColor)
		payload.BorderColor = &c
	}
	return payload
}

func payloadToTemplate(payload templatePayload) (*model.Template, error) {
	tpl := &model.Template{
		Name:    payload.Name,
		Kind:    model.DocumentKind(payload.Kind),
		Version: payload.Version,
		Pages:   make([]model.TemplatePage, 0, len(payload.Pages)),
	}
	for i, page := range payload.Pages {
		p := model.TemplatePage{
			Number:    page.Number,
			Editable:  page.Editable,
			HasHeader: page.HasHeader,
			HasFooter: page.HasFooter,
			IsCover:   page.IsCover,
			Elements:  make([]model.Element, 0, len(page.Elements)),
		}
		if p.Number == 0 {
			p.Number = i + 1
		}
		for _, el := range page.Elements {
			converted, err := payloadToElement(el)
			if err != nil {
				return nil, err
			}
			p.Elements = append(p.Elements, converted)
		}
		tpl.Pages = append(tpl.Pages, p)
	}
	return tpl, nil
}

func payloadToElement(payload elementPayload) (model.Element, error) {
	el := model.Element{
		Kind:            model.ElementKind(payload.Kind),
		X:               payload.X,
		Y:               payload.Y,
		W:               payload.W,
		H:               payload.H,
		Content:         payload.Content,
		CurrentField:    payload.CurrentField,
		ContentTemplate: payload.ContentTemplate,
		BorderWidth:     payload.BorderWidth,
		RowSource:       payload.RowSource,
		TableHeader:     payload.TableHeader,
		TableRows:       payload.TableRows,
	}
	if payload.ID != "" {
		id, err := uuid.Parse(payload.ID)
		if err != nil {
			return model.Element{}, fmt.Errorf("invalid element id %q", payload.ID)
		}
		el.ID = id
	} else {
		el.ID = uuid.New()
	}
	if payload.Font != nil {
		el.Font = model.FontStyle{
			Family: payload.Font.Family,
			Size:   payload.Font.Size,
			Bold:   payload.Font.Bold,
			Italic: payload.Font.Italic,
			Color:  model.Color(payload.Font.Color),
		}
	}
	if payload.FillColor != nil {
		c := model.Color(*payload.FillColor)
		el.FillColor = &c
	}
	if payload.BorderColor != nil {
		c := model.Color(*payload.BorderColor)
		el.BorderColor = &c
	}
	return el, nil
}
