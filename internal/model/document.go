package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentKindPurchase DocumentKind = "COTACAO"
	DocumentKindRental   DocumentKind = "LOCACAO"
)

type DocumentStatus string

const (
	DocumentStatusOpen     DocumentStatus = "ABERTA"
	DocumentStatusApproved DocumentStatus = "APROVADA"
	DocumentStatusRejected DocumentStatus = "REJEITADA"
)

type Document struct {
	ID               uuid.UUID
	Number           string
	Kind             DocumentKind
	IssueDate        time.Time
	ValidityDate     *time.Time // cotação
	PeriodStart      *time.Time // locação
	PeriodEnd        *time.Time
	FilialID         uuid.UUID
	ResponsibleID    uuid.UUID
	ClientID         uuid.UUID
	Status           DocumentStatus
	Observations     string
	CompressorModel  string
	CompressorSerial string
	FreightType      string
	PaymentTerms     string
	DeliveryTime     string
	Currency         string
	Total            float64
	MonthlyValue     float64 // locação
	Months           int
	EquipmentTitle   string
	EquipmentImage   string
	PDFPath          string
	CreatedAt        time.Time
}

type ItemKind string

const (
	ItemKindProduct ItemKind = "PRODUTO"
	ItemKindService ItemKind = "SERVICO"
	ItemKindKit     ItemKind = "KIT"
	ItemKindRental  ItemKind = "LOCACAO"
)

type DocumentItem struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Position    int
	Kind        ItemKind
	ProductID   *uuid.UUID
	Name        string
	Description string
	Quantity    float64
	UnitValue   float64
	Total       float64
	// Extras de serviço; zero quando Kind != SERVICO.
	LaborValue   float64
	TravelValue  float64
	LodgingValue float64
	// Campos de locação.
	Months         int
	EquipmentImage string

	// Composição resolvida para itens KIT. CompositionErr marca falha
	// na consulta; a descrição vira "Erro ao carregar composição".
	Composition    []KitComponent
	CompositionErr bool
}

type KitComponent struct {
	Quantity float64
	Name     string
}

// DocumentBundle reúne tudo que o resolvedor de campos consome
// para montar o contexto de um documento.
type DocumentBundle struct {
	Document    Document
	Items       []DocumentItem
	Filial      Filial
	Responsible User
	Client      Client
	Contact     *Contact
}
