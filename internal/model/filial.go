package model

import "github.com/google/uuid"

// Filial é uma unidade legal da empresa, com CNPJ e endereço próprios,
// escolhida por documento e usada no cabeçalho e rodapé do PDF.
type Filial struct {
	ID        uuid.UUID
	TradeName string
	CNPJ      string
	Address   string
	City      string
	State     string
	CEP       string
	Phones    string
	Email     string
	LogoPath  string
}
