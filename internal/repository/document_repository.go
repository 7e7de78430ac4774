package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aircomp/propostas-service/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetBundle carrega o documento e tudo que o resolvedor de campos
// precisa: itens, filial, responsável, cliente e contato principal.
func (r *DocumentRepository) GetBundle(ctx context.Context, id uuid.UUID) (*model.DocumentBundle, error) {
	doc, err := r.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	filial, err := r.getFilial(ctx, doc.FilialID)
	if err != nil {
		return nil, err
	}

	responsible, err := r.getUser(ctx, doc.ResponsibleID)
	if err != nil {
		return nil, err
	}

	client, err := r.getClient(ctx, doc.ClientID)
	if err != nil {
		return nil, err
	}

	return &model.DocumentBundle{
		Document:    *doc,
		Items:       items,
		Filial:      *filial,
		Responsible: *responsible,
		Client:      *client,
		Contact:     client.PrimaryContact(),
	}, nil
}

func (r *DocumentRepository) getDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var row struct {
		ID               uuid.UUID
		Number           string
		Kind             string
		IssueDate        time.Time
		ValidityDate     *time.Time
		PeriodStart      *time.Time
		PeriodEnd        *time.Time
		FilialID         uuid.UUID
		ResponsibleID    uuid.UUID
		ClientID         uuid.UUID
		Status           string
		Observations     string
		CompressorModel  string
		CompressorSerial string
		FreightType      string
		PaymentTerms     string
		DeliveryTime     string
		Currency         string
		Total            float64
		MonthlyValue     float64
		Months           int
		EquipmentTitle   string
		EquipmentImage   string
		PDFPath          string
		CreatedAt        time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id, number, kind, issue_date, validity_date, period_start, period_end,
			filial_id, responsible_id, client_id, status, observations,
			compressor_model, compressor_serial, freight_type, payment_terms,
			delivery_time, currency, total, monthly_value, months,
			equipment_title, equipment_image, pdf_path, created_at
		FROM documents
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.Document{
		ID:               row.ID,
		Number:           row.Number,
		Kind:             model.DocumentKind(row.Kind),
		IssueDate:        row.IssueDate,
		ValidityDate:     row.ValidityDate,
		PeriodStart:      row.PeriodStart,
		PeriodEnd:        row.PeriodEnd,
		FilialID:         row.FilialID,
		ResponsibleID:    row.ResponsibleID,
		ClientID:         row.ClientID,
		Status:           model.DocumentStatus(row.Status),
		Observations:     row.Observations,
		CompressorModel:  row.CompressorModel,
		CompressorSerial: row.CompressorSerial,
		FreightType:      row.FreightType,
		PaymentTerms:     row.PaymentTerms,
		DeliveryTime:     row.DeliveryTime,
		Currency:         row.Currency,
		Total:            row.Total,
		MonthlyValue:     row.MonthlyValue,
		Months:           row.Months,
		EquipmentTitle:   row.EquipmentTitle,
		EquipmentImage:   row.EquipmentImage,
		PDFPath:          row.PDFPath,
		CreatedAt:        row.CreatedAt,
	}, nil
}

func (r *DocumentRepository) listItems(ctx context.Context, documentID uuid.UUID) ([]model.DocumentItem, error) {
	var rows []struct {
		ID             uuid.UUID
		DocumentID     uuid.UUID
		Position       int
		Kind           string
		ProductID      *uuid.UUID
		Name           string
		Description    string
		Quantity       float64
		UnitValue      float64
		Total          float64
		LaborValue     float64
		TravelValue    float64
		LodgingValue   float64
		Months         int
		EquipmentImage string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id, document_id, position, kind, product_id, name, description,
			quantity, unit_value, total, labor_value, travel_value,
			lodging_value, months, equipment_image
		FROM document_items
		WHERE document_id = ?
		ORDER BY position
	`, documentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]model.DocumentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.DocumentItem{
			ID:             row.ID,
			DocumentID:     row.DocumentID,
			Position:       row.Position,
			Kind:           model.ItemKind(row.Kind),
			ProductID:      row.ProductID,
			Name:           row.Name,
			Description:    row.Description,
			Quantity:       row.Quantity,
			UnitValue:      row.UnitValue,
			Total:          row.Total,
			LaborValue:     row.LaborValue,
			TravelValue:    row.TravelValue,
			LodgingValue:   row.LodgingValue,
			Months:         row.Months,
			EquipmentImage: row.EquipmentImage,
		})
	}
	return items, nil
}

func (r *DocumentRepository) getFilial(ctx context.Context, id uuid.UUID) (*model.Filial, error) {
	var filial model.Filial
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, trade_name, cnpj, address, city, state, cep, phones, email, logo_path
		FROM filiais
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&filial).Error
	if err != nil {
		return nil, err
	}
	if filial.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &filial, nil
}

func (r *DocumentRepository) getUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, full_name, email, phone, cover_path, is_admin
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *DocumentRepository) getClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var row struct {
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
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, legal_name, trade_name, cnpj, address, city, state, cep,
			phone, email, prazo_pagamento, observations
		FROM clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	client := &model.Client{
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
	}

	var contacts []struct {
		ID        uuid.UUID
		ClientID  uuid.UUID
		Name      string
		Role      string
		Phone     string
		Email     string
		IsPrimary bool
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, name, role, phone, email, is_primary
		FROM contacts
		WHERE client_id = ?
		ORDER BY position, rowid
	`, id).Scan(&contacts).Error
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		client.Contacts = append(client.Contacts, model.Contact{
			ID:       contact.ID,
			ClientID: contact.ClientID,
			Name:     contact.Name,
			Role:     contact.Role,
			Phone:    contact.Phone,
			Email:    contact.Email,
			Primary:  contact.IsPrimary,
		})
	}
	return client, nil
}

// GetKitComposition consulta a relação de componentes de um kit em um
// único salto. Ciclos não recursam porque a consulta não é recursiva.
func (r *DocumentRepository) GetKitComposition(ctx context.Context, kitID uuid.UUID) ([]model.KitComponent, error) {
	var components []model.KitComponent
	err := r.db.WithContext(ctx).Raw(`
		SELECT kc.quantity, p.name
		FROM kit_components kc
		JOIN products p ON p.id = kc.component_id
		WHERE kc.kit_id = ?
		ORDER BY p.name
	`, kitID).Scan(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

// UpdatePDFPath grava o caminho do artefato renderizado no documento.
// A renderização nunca altera nenhum outro campo.
func (r *DocumentRepository) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE documents SET pdf_path = ? WHERE id = ?
	`, path, id).Error
}

// ListForExport devolve as propostas emitidas no intervalo, já com o
// nome do cliente resolvido, para a exportação em planilha. O nome
// fantasia tem precedência sobre a razão social.
func (r *DocumentRepository) ListForExport(ctx context.Context, from, to time.Time) ([]model.ProposalExportRow, error) {
	var rows []struct {
		Number    string
		Kind      string
		IssueDate time.Time
		Status    string
		Total     float64
		LegalName string
		TradeName string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.number, d.kind, d.issue_date, d.status, d.total,
		       c.legal_name, c.trade_name
		FROM documents d
		JOIN clients c ON c.id = d.client_id
		WHERE d.issue_date >= ? AND d.issue_date < ?
		ORDER BY d.issue_date, d.number
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.ProposalExportRow, 0, len(rows))
	for _, row := range rows {
		name := row.TradeName
		if name == "" {
			name = row.LegalName
		}
		out = append(out, model.ProposalExportRow{
			Number:     row.Number,
			Kind:       model.DocumentKind(row.Kind),
			IssueDate:  row.IssueDate,
			ClientName: name,
			Status:     model.DocumentStatus(row.Status),
			Total:      row.Total,
		})
	}
	return out, nil
}
