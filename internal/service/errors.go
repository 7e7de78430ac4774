package service

import (
	"errors"

	"github.com/aircomp/propostas-service/internal/template"
)

var (
	ErrDocumentNotFound = errors.New("documento não encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")

	// Erros do modelo de templates, reexportados para os handlers.
	ErrTemplateNotFound  = template.ErrNotFound
	ErrTemplateInvalid   = template.ErrInvalid
	ErrTemplateProtected = template.ErrProtected
)
