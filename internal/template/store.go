// Package template guarda e valida os templates de proposta. Os dois
// templates embutidos existem sempre e não podem ser apagados.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aircomp/propostas-service/internal/model"
)

var (
	ErrNotFound  = errors.New("template não encontrado")
	ErrInvalid   = errors.New("template inválido")
	ErrProtected = errors.New("template protegido")
)

const (
	DefaultPurchaseName = "Default Purchase"
	DefaultRentalName   = "Default Rental"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureBuiltins grava os templates embutidos quando ausentes. Chamado
// na subida do serviço.
func (s *Store) EnsureBuiltins(ctx context.Context) error {
	for _, builtin := range []*model.Template{DefaultPurchase(), DefaultRental()} {
		_, err := s.Load(ctx, builtin.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.Save(ctx, builtin); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) (*model.Template, error) {
	var header struct {
		ID      uuid.UUID
		Name    string
		Kind    string
		Version int
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, name, kind, version FROM templates WHERE name = ? LIMIT 1
	`, name).Scan(&header).Error
	if err != nil {
		return nil, err
	}
	if header.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	tpl := &model.Template{
		ID:      header.ID,
		Name:    header.Name,
		Kind:    model.DocumentKind(header.Kind),
		Version: header.Version,
	}

	var pageRows []struct {
		Number    int
		Editable  bool
		HasHeader bool
		HasFooter bool
		IsCover   bool
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT number, editable, has_header, has_footer, is_cover
		FROM template_pages
		WHERE template_id = ?
		ORDER BY number
	`, tpl.ID).Scan(&pageRows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range pageRows {
		tpl.Pages = append(tpl.Pages, model.TemplatePage{
			Number:    row.Number,
			Editable:  row.Editable,
			HasHeader: row.HasHeader,
			HasFooter: row.HasFooter,
			IsCover:   row.IsCover,
		})
	}

	var elementRows []struct {
		ID              uuid.UUID
		PageNumber      int
		Kind            string
		X, Y, W, H      float64
		FontFamily      string
		FontSize        float64
		Bold            bool
		Italic          bool
		FontColor       string
		Content         string
		CurrentField    string
		ContentTemplate string
		FillColor       string
		BorderColor     string
		BorderWidth     float64
		RowSource       string
		TableData       string
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT id, page_number, kind, x, y, w, h,
			font_family, font_size, bold, italic, font_color,
			content, current_field, content_template,
			fill_color, border_color, border_width,
			row_source, table_data
		FROM template_elements
		WHERE template_id = ?
		ORDER BY page_number, position
	`, tpl.ID).Scan(&elementRows).Error
	if err != nil {
		return nil, err
	}

	pageIndex := make(map[int]int, len(tpl.Pages))
	for i := range tpl.Pages {
		pageIndex[tpl.Pages[i].Number] = i
	}

	for _, row := range elementRows {
		idx, ok := pageIndex[row.PageNumber]
		if !ok {
			continue
		}
		el := model.Element{
			ID:   row.ID,
			Kind: model.ElementKind(row.Kind),
			X:    row.X, Y: row.Y, W: row.W, H: row.H,
			Font: model.FontStyle{
				Family: row.FontFamily,
				Size:   row.FontSize,
				Bold:   row.Bold,
				Italic: row.Italic,
				Color:  parseColor(row.FontColor),
			},
			Content:         row.Content,
			CurrentField:    row.CurrentField,
			ContentTemplate: row.ContentTemplate,
			BorderWidth:     row.BorderWidth,
			RowSource:       row.RowSource,
		}
		if row.FillColor != "" {
			c := parseColor(row.FillColor)
			el.FillColor = &c
		}
		if row.BorderColor != "" {
			c := parseColor(row.BorderColor)
			el.BorderColor = &c
		}
		if row.TableData != "" {
			var data tableData
			if err := json.Unmarshal([]byte(row.TableData), &data); err == nil {
				el.TableHeader = data.Header
				el.TableRows = data.Rows
			}
		}
		tpl.Pages[idx].Elements = append(tpl.Pages[idx].Elements, el)
	}

	return tpl, nil
}

// Save valida e grava o template, substituindo a definição corrente sob
// o mesmo nome e incrementando a versão.
func (s *Store) Save(ctx context.Context, tpl *model.Template) error {
	if err := Validate(tpl); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing struct {
			ID      uuid.UUID
			Version int
		}
		if err := tx.Raw(`SELECT id, version FROM templates WHERE name = ? LIMIT 1`, tpl.Name).
			Scan(&existing).Error; err != nil {
			return err
		}

		id := tpl.ID
		version := 1
		if existing.ID != uuid.Nil {
			id = existing.ID
			version = existing.Version + 1
			if err := tx.Exec(`DELETE FROM template_elements WHERE template_id = ?`, id).Error; err != nil {
				return err
			}
			if err := tx.Exec(`DELETE FROM template_pages WHERE template_id = ?`, id).Error; err != nil {
				return err
			}
			if err := tx.Exec(`UPDATE templates SET kind = ?, version = ? WHERE id = ?`,
				string(tpl.Kind), version, id).Error; err != nil {
				return err
			}
		} else {
			if id == uuid.Nil {
				id = uuid.New()
			}
			if err := tx.Exec(`
				INSERT INTO templates (id, name, kind, version) VALUES (?, ?, ?, ?)
			`, id, tpl.Name, string(tpl.Kind), version).Error; err != nil {
				return err
			}
		}
		tpl.ID = id
		tpl.Version = version

		for _, page := range tpl.Pages {
			if err := tx.Exec(`
				INSERT INTO template_pages (template_id, number, editable, has_header, has_footer, is_cover)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, page.Number, page.Editable, page.HasHeader, page.HasFooter, page.IsCover).Error; err != nil {
				return err
			}
			for pos, el := range page.Elements {
				elementID := el.ID
				if elementID == uuid.Nil {
					elementID = uuid.New()
				}
				data := ""
				if len(el.TableHeader) > 0 || len(el.TableRows) > 0 {
					raw, err := json.Marshal(tableData{Header: el.TableHeader, Rows: el.TableRows})
					if err != nil {
						return err
					}
					data = string(raw)
				}
				if err := tx.Exec(`
					INSERT INTO template_elements (
						id, template_id, page_number, position, kind,
						x, y, w, h,
						font_family, font_size, bold, italic, font_color,
						content, current_field, content_template,
						fill_color, border_color, border_width,
						row_source, table_data
					) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				`,
					elementID, id, page.Number, pos, string(el.Kind),
					el.X, el.Y, el.W, el.H,
					el.Font.Family, el.Font.Size, el.Font.Bold, el.Font.Italic, colorString(el.Font.Color),
					el.Content, el.CurrentField, el.ContentTemplate,
					colorPtrString(el.FillColor), colorPtrString(el.BorderColor), el.BorderWidth,
					el.RowSource, data,
				).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Raw(`SELECT name FROM templates ORDER BY name`).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete remove um template pelo nome. Os embutidos são protegidos.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == DefaultPurchaseName || name == DefaultRentalName {
		return fmt.Errorf("%w: %s", ErrProtected, name)
	}
	tpl, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM template_elements WHERE template_id = ?`, tpl.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM template_pages WHERE template_id = ?`, tpl.ID).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM templates WHERE id = ?`, tpl.ID).Error
	})
}

// Validate aplica as checagens estruturais: páginas presentes, página 1
// de cotação não editável, geometria positiva dentro dos limites A4 e
// campo declarado em todo elemento dinâmico.
func Validate(tpl *model.Template) error {
	if tpl == nil || strings.TrimSpace(tpl.Name) == "" {
		return fmt.Errorf("%w: nome vazio", ErrInvalid)
	}
	if len(tpl.Pages) == 0 {
		return fmt.Errorf("%w: sem páginas", ErrInvalid)
	}
	if tpl.Kind == model.DocumentKindPurchase && tpl.Pages[0].Editable {
		return fmt.Errorf("%w: página 1 da cotação deve ser não editável", ErrInvalid)
	}
	for _, page := range tpl.Pages {
		for _, el := range page.Elements {
			if el.W <= 0 || el.H <= 0 {
				return fmt.Errorf("%w: elemento %s com dimensões não positivas na página %d",
					ErrInvalid, el.Kind, page.Number)
			}
			if el.X < 0 || el.Y < 0 || el.X > model.PageWidthPt || el.Y > model.PageHeightPt {
				return fmt.Errorf("%w: elemento %s fora dos limites da página %d",
					ErrInvalid, el.Kind, page.Number)
			}
			if el.Kind == model.ElementDynamicField && strings.TrimSpace(el.CurrentField) == "" {
				return fmt.Errorf("%w: elemento dinâmico sem current_field na página %d",
					ErrInvalid, page.Number)
			}
		}
	}
	return nil
}

type tableData struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func colorString(c model.Color) string {
	if c == (model.Color{}) {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

func colorPtrString(c *model.Color) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

func parseColor(raw string) model.Color {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return model.Color{}
	}
	r, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	g, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	b, _ := strconv.Atoi(strings.TrimSpace(parts[2]))
	return model.Color{R: r, G: g, B: b}
}
