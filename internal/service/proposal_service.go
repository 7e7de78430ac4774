package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aircomp/propostas-service/internal/config"
	"github.com/aircomp/propostas-service/internal/excel"
	"github.com/aircomp/propostas-service/internal/layout"
	"github.com/aircomp/propostas-service/internal/model"
	"github.com/aircomp/propostas-service/internal/pdf"
	"github.com/aircomp/propostas-service/internal/repository"
	"github.com/aircomp/propostas-service/internal/resolver"
	"github.com/aircomp/propostas-service/internal/template"
)

// ProposalService orquestra uma renderização: carrega o documento e os
// itens, escolhe o template, monta o contexto, invoca layout e
// renderizador e grava o caminho do PDF de volta no documento.
type ProposalService struct {
	docs      *repository.DocumentRepository
	templates *template.Store
	engine    *layout.Engine
	renderer  *pdf.Renderer
	exporter  *excel.Generator
	cfg       *config.Config
	log       zerolog.Logger
	now       func() time.Time
}

func NewProposalService(
	docs *repository.DocumentRepository,
	templates *template.Store,
	cfg *config.Config,
	log zerolog.Logger,
) *ProposalService {
	return &ProposalService{
		docs:      docs,
		templates: templates,
		engine:    layout.NewEngine(),
		renderer:  pdf.NewRenderer(),
		exporter:  excel.NewGenerator(),
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

type RenderResult struct {
	Path        string
	Diagnostics []model.Diagnostic
}

// Render gera o PDF do documento. templateName vazio seleciona o
// template embutido do tipo do documento. Uma renderização roda até o
// fim; não há pontos de suspensão nem cancelamento.
func (s *ProposalService) Render(ctx context.Context, documentID uuid.UUID, templateName string) (*RenderResult, error) {
	bundle, err := s.docs.GetBundle(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	s.loadKitCompositions(ctx, bundle)

	if templateName == "" {
		templateName = template.DefaultPurchaseName
		if bundle.Document.Kind == model.DocumentKindRental {
			templateName = template.DefaultRentalName
		}
	}
	tpl, err := s.templates.Load(ctx, templateName)
	if err != nil {
		return nil, err
	}

	rctx := resolver.BuildContext(*bundle, s.now())
	s.checkTemplateFields(tpl, rctx)

	ops, diags := s.engine.Build(tpl, rctx, layout.Options{
		Kind:            bundle.Document.Kind,
		CoverBackground: s.coverBackground(bundle.Document.Kind),
		CoverInner:      s.coverInner(bundle.Responsible),
	})

	content, renderDiags, err := s.renderer.Render(ops, bundle.Document.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("renderizar pdf: %w", err)
	}
	diags = append(diags, renderDiags...)

	path := s.outputPath(bundle.Document)
	if err := writeFileMkdir(path, content); err != nil {
		return nil, err
	}

	if err := s.docs.UpdatePDFPath(ctx, documentID, path); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("document", bundle.Document.Number).
		Str("template", templateName).
		Int("diagnostics", len(diags)).
		Str("path", path).
		Msg("proposta renderizada")

	return &RenderResult{Path: path, Diagnostics: diags}, nil
}

// GetPDFPath devolve o caminho do artefato já renderizado do documento.
func (s *ProposalService) GetPDFPath(ctx context.Context, documentID uuid.UUID) (string, error) {
	bundle, err := s.docs.GetBundle(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}
	if bundle.Document.PDFPath == "" {
		return "", ErrDocumentNotFound
	}
	return bundle.Document.PDFPath, nil
}

// Export gera a planilha das propostas emitidas no intervalo
// [from, to).
func (s *ProposalService) Export(ctx context.Context, from, to time.Time) ([]byte, error) {
	if !to.After(from) {
		return nil, ErrInvalidInput
	}
	rows, err := s.docs.ListForExport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.exporter.Generate(model.ProposalExport{
		PeriodStart: from,
		PeriodEnd:   to,
		Rows:        rows,
	})
}

func (s *ProposalService) loadKitCompositions(ctx context.Context, bundle *model.DocumentBundle) {
	for i := range bundle.Items {
		item := &bundle.Items[i]
		if item.Kind != model.ItemKindKit {
			continue
		}
		if item.ProductID == nil {
			item.CompositionErr = true
			continue
		}
		components, err := s.docs.GetKitComposition(ctx, *item.ProductID)
		if err != nil {
			s.log.Warn().Err(err).Str("kit", item.Name).Msg("falha ao carregar composição do kit")
			item.CompositionErr = true
			continue
		}
		item.Composition = components
	}
}

// checkTemplateFields valida os campos dinâmicos do template contra o
// contexto. Campos ausentes não são fatais: o layout renderiza [token]
// e registra o diagnóstico.
func (s *ProposalService) checkTemplateFields(tpl *model.Template, rctx *resolver.Context) {
	for _, page := range tpl.Pages {
		for _, el := range page.Elements {
			if el.Kind != model.ElementDynamicField {
				continue
			}
			if _, ok := rctx.Lookup(el.CurrentField); !ok {
				s.log.Warn().
					Str("template", tpl.Name).
					Int("page", page.Number).
					Str("field", el.CurrentField).
					Msg("campo dinâmico sem valor no contexto")
			}
		}
	}
}

func (s *ProposalService) coverBackground(kind model.DocumentKind) string {
	if kind == model.DocumentKindRental {
		return s.cfg.Assets.RentalCoverImage
	}
	return s.cfg.Assets.PurchaseCoverImage
}

func (s *ProposalService) coverInner(user model.User) string {
	if user.CoverPath != "" {
		return user.CoverPath
	}
	return filepath.Join(s.cfg.Assets.CoversDir, user.Username+".jpg")
}

func (s *ProposalService) outputPath(doc model.Document) string {
	kindDir := "cotacoes"
	if doc.Kind == model.DocumentKindRental {
		kindDir = "locacoes"
	}
	safe := strings.NewReplacer("/", "_", " ", "_").Replace(doc.Number)
	return filepath.Join(s.cfg.DataDir, kindDir, "arquivos", safe+".pdf")
}

// writeFileMkdir grava o arquivo, criando os diretórios intermediários
// uma única vez quando a primeira tentativa falha. A segunda falha é
// definitiva.
func writeFileMkdir(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("criar diretório de saída: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("gravar pdf: %w", err)
	}
	return nil
}
