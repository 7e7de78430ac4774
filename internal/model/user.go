package model

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID
	Username string
	FullName string
	Email    string
	Phone    string
	// Caminho do JPEG de capa do usuário; vazio quando não há.
	CoverPath string
	IsAdmin   bool
}

// Principal identifica o usuário autenticado na requisição.
type Principal struct {
	UserID   uuid.UUID
	Username string
}
