package model

import "github.com/google/uuid"

type ProductKind string

const (
	ProductKindProduct ProductKind = "PRODUTO"
	ProductKindService ProductKind = "SERVICO"
	ProductKindKit     ProductKind = "KIT"
)

type Product struct {
	ID          uuid.UUID
	Kind        ProductKind
	Name        string
	Description string
	UnitValue   float64
	ImagePath   string
}
