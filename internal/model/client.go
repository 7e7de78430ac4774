package model

import "github.com/google/uuid"

type Client struct {
	ID           uuid.UUID
	LegalName    string
	TradeName    string
	CNPJ         string
	Address      string
	City         string
	State        string
	CEP          string
	Phone        string
	Email        string
	PaymentTerm  string
	Observations string
	Contacts     []Contact
}

// DisplayName prefere o nome fantasia quando preenchido.
func (c Client) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}

// PrimaryContact devolve o contato marcado como principal, senão o
// primeiro na ordem de inserção. Nil quando não há contatos.
func (c Client) PrimaryContact() *Contact {
	for i := range c.Contacts {
		if c.Contacts[i].Primary {
			return &c.Contacts[i]
		}
	}
	if len(c.Contacts) > 0 {
		return &c.Contacts[0]
	}
	return nil
}

type Contact struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Name     string
	Role     string
	Phone    string
	Email    string
	Primary  bool
}
