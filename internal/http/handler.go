package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aircomp/propostas-service/internal/http/middleware"
	"github.com/aircomp/propostas-service/internal/repository"
	"github.com/aircomp/propostas-service/internal/service"
	"github.com/aircomp/propostas-service/internal/template"
)

type Handler struct {
	proposals *service.ProposalService
	templates *template.Store
	clients   *repository.ClientRepository
	log       zerolog.Logger
}

func NewHandler(
	proposals *service.ProposalService,
	templates *template.Store,
	clients *repository.ClientRepository,
	log zerolog.Logger,
) *Handler {
	return &Handler{proposals: proposals, templates: templates, clients: clients, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/documents/:id/pdf", h.renderDocument)
	protected.GET("/documents/:id/pdf", h.downloadDocument)
	protected.POST("/documents/export", h.exportDocuments)

	protected.GET("/templates", h.listTemplates)
	protected.GET("/templates/:name", h.getTemplate)
	protected.PUT("/templates/:name", h.saveTemplate)
	protected.DELETE("/templates/:name", h.deleteTemplate)

	protected.GET("/clients", h.listClients)
}

type renderRequest struct {
	TemplateName string `json:"template_name"`
}

type diagnosticResponse struct {
	Kind      string `json:"kind"`
	ElementID string `json:"element_id,omitempty"`
	Page      int    `json:"page"`
	Message   string `json:"message"`
}

func (h *Handler) renderDocument(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req renderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.proposals.Render(c.Request.Context(), id, strings.TrimSpace(req.TemplateName))
	if err != nil {
		h.handleError(c, err)
		return
	}

	diags := make([]diagnosticResponse, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		resp := diagnosticResponse{Kind: string(d.Kind), Page: d.Page, Message: d.Message}
		if d.ElementID != uuid.Nil {
			resp.ElementID = d.ElementID.String()
		}
		diags = append(diags, resp)
	}

	c.JSON(http.StatusOK, gin.H{"path": result.Path, "diagnostics": diags})
}

func (h *Handler) downloadDocument(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	path, err := h.proposals.GetPDFPath(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, "proposta.pdf")
}

type exportRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

func (h *Handler) exportDocuments(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return
	}

	content, err := h.proposals.Export(c.Request.Context(), start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\"propostas.xlsx\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) listTemplates(c *gin.Context) {
	names, err := h.templates.ListNames(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": names})
}

func (h *Handler) getTemplate(c *gin.Context) {
	tpl, err := h.templates.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, templateToPayload(tpl))
}

func (h *Handler) saveTemplate(c *gin.Context) {
	var payload templatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload.Name = c.Param("name")

	tpl, err := payloadToTemplate(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.templates.Save(c.Request.Context(), tpl); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": tpl.Name, "version": tpl.Version})
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("name")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		out = append(out, gin.H{
			"id":         client.ID,
			"legal_name": client.LegalName,
			"trade_name": client.TradeName,
			"cnpj":       client.CNPJ,
		})
	}
	c.JSON(http.StatusOK, gin.H{"clients": out})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, template.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDocumentNotFound), errors.Is(err, template.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, template.ErrProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
