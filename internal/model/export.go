package model

import "time"

// ProposalExport é o recorte de propostas de um período, pronto para a
// planilha: linhas já enriquecidas com o nome do cliente.
type ProposalExport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Rows        []ProposalExportRow
}

type ProposalExportRow struct {
	Number     string
	Kind       DocumentKind
	IssueDate  time.Time
	ClientName string
	Status     DocumentStatus
	Total      float64
}
