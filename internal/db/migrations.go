package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		legal_name TEXT NOT NULL,
		trade_name TEXT NOT NULL DEFAULT '',
		cnpj TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		cep TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		prazo_pagamento TEXT NOT NULL DEFAULT '',
		observations TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		is_primary INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_client_id ON contacts (client_id);`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_value REAL NOT NULL DEFAULT 0,
		image_path TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS kit_components (
		kit_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		component_id TEXT NOT NULL REFERENCES products(id),
		quantity REAL NOT NULL DEFAULT 1,
		PRIMARY KEY (kit_id, component_id)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		cover_path TEXT NOT NULL DEFAULT '',
		is_admin INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS filiais (
		id TEXT PRIMARY KEY,
		trade_name TEXT NOT NULL,
		cnpj TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		cep TEXT NOT NULL DEFAULT '',
		phones TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		logo_path TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		issue_date TIMESTAMP NOT NULL,
		validity_date TIMESTAMP,
		period_start TIMESTAMP,
		period_end TIMESTAMP,
		filial_id TEXT NOT NULL REFERENCES filiais(id),
		responsible_id TEXT NOT NULL REFERENCES users(id),
		client_id TEXT NOT NULL REFERENCES clients(id),
		status TEXT NOT NULL DEFAULT 'ABERTA',
		observations TEXT NOT NULL DEFAULT '',
		compressor_model TEXT NOT NULL DEFAULT '',
		compressor_serial TEXT NOT NULL DEFAULT '',
		freight_type TEXT NOT NULL DEFAULT '',
		payment_terms TEXT NOT NULL DEFAULT '',
		delivery_time TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT 'BRL',
		total REAL NOT NULL DEFAULT 0,
		monthly_value REAL NOT NULL DEFAULT 0,
		months INTEGER NOT NULL DEFAULT 0,
		equipment_title TEXT NOT NULL DEFAULT '',
		equipment_image TEXT NOT NULL DEFAULT '',
		pdf_path TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (kind);`,
	`CREATE TABLE IF NOT EXISTS document_items (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		product_id TEXT REFERENCES products(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity REAL NOT NULL DEFAULT 1,
		unit_value REAL NOT NULL DEFAULT 0,
		total REAL NOT NULL DEFAULT 0,
		labor_value REAL NOT NULL DEFAULT 0,
		travel_value REAL NOT NULL DEFAULT 0,
		lodging_value REAL NOT NULL DEFAULT 0,
		months INTEGER NOT NULL DEFAULT 0,
		equipment_image TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_document_items_document_id ON document_items (document_id);`,
	`CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS template_pages (
		template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		number INTEGER NOT NULL,
		editable INTEGER NOT NULL DEFAULT 1,
		has_header INTEGER NOT NULL DEFAULT 1,
		has_footer INTEGER NOT NULL DEFAULT 1,
		is_cover INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (template_id, number)
	);`,
	`CREATE TABLE IF NOT EXISTS template_elements (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		page_number INTEGER NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		w REAL NOT NULL,
		h REAL NOT NULL,
		font_family TEXT NOT NULL DEFAULT '',
		font_size REAL NOT NULL DEFAULT 0,
		bold INTEGER NOT NULL DEFAULT 0,
		italic INTEGER NOT NULL DEFAULT 0,
		font_color TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		current_field TEXT NOT NULL DEFAULT '',
		content_template TEXT NOT NULL DEFAULT '',
		fill_color TEXT NOT NULL DEFAULT '',
		border_color TEXT NOT NULL DEFAULT '',
		border_width REAL NOT NULL DEFAULT 0,
		row_source TEXT NOT NULL DEFAULT '',
		table_data TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_template_elements_template_id ON template_elements (template_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
