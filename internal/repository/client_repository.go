package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aircomp/propostas-service/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// List devolve os clientes, filtrados por nome ou CNPJ quando search
// não é vazio.
func (r *ClientRepository) List(ctx context.Context, search string) ([]model.Client, error) {
	query := `
		SELECT id, legal_name, trade_name, cnpj, address, city, state, cep,
			phone, email, prazo_pagamento, observations
		FROM clients
	`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE legal_name LIKE ? OR trade_name LIKE ? OR cnpj LIKE ?`
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY legal_name`

	var rows []struct {
		ID             uuid.UUID
		LegalName      string
		TradeName      string
		CNPJ           string
		Address        string
		City           string
		State          string
		CEP            string
		Phone          string
		Email          string
		PrazoPagamento string
		Observations   string
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	clients := make([]model.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, model.Client{
			ID:           row.ID,
			LegalName:    row.LegalName,
			TradeName:    row.TradeName,
			CNPJ:         row.CNPJ,
			Address:      row.Address,
			City:         row.City,
			State:        row.State,
			CEP:          row.CEP,
			Phone:        row.Phone,
			Email:        row.Email,
			PaymentTerm:  row.PrazoPagamento,
			Observations: row.Observations,
		})
	}
	return clients, nil
}
