package model

import "github.com/google/uuid"

type DiagnosticKind string

const (
	DiagResolverMissingField      DiagnosticKind = "ResolverMissingField"
	DiagImageMissing              DiagnosticKind = "ImageMissing"
	DiagImageUnsupported          DiagnosticKind = "ImageUnsupported"
	DiagKitCompositionUnavailable DiagnosticKind = "KitCompositionUnavailable"
	DiagTextOverflow              DiagnosticKind = "TextOverflow"
)

// Diagnostic registra uma condição recuperada durante a renderização.
// A lista acompanha o resultado mas nunca entra no PDF.
type Diagnostic struct {
	Kind      DiagnosticKind
	ElementID uuid.UUID
	Page      int
	Message   string
}
