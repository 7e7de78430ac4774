// Package resolver monta o contexto plano de campos de um documento e
// substitui referências {token} nas strings dos templates.
package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aircomp/propostas-service/internal/format"
	"github.com/aircomp/propostas-service/internal/model"
)

// tokenPattern segue a gramática {identificador}; chaves que não formam
// um token válido ficam literais.
var tokenPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Context é o mapa imutável token→valor formatado de um documento, mais
// a lista de itens. Construído uma vez por renderização.
type Context struct {
	values  map[string]string
	items   []model.DocumentItem
	missing []string
}

// BuildContext lê o pacote do documento e devolve o contexto com chaves
// agrupadas por prefixo (cliente_*, contato_*, filial_*, responsavel_*,
// cabeçalho do documento, locação e meta). Todos os valores passam pelo
// sanitizador e pelo formatador adequado à classe da chave.
func BuildContext(bundle model.DocumentBundle, now time.Time) *Context {
	doc := bundle.Document
	v := map[string]string{}

	put := func(key, raw string) {
		v[key] = format.Sanitize(raw)
	}

	client := bundle.Client
	put("cliente_nome", client.DisplayName())
	put("cliente_razao_social", client.LegalName)
	put("cliente_cnpj", format.CNPJ(client.CNPJ))
	put("cliente_telefone", format.Phone(client.Phone))
	put("cliente_email", client.Email)
	put("cliente_endereco", client.Address)
	put("cliente_cidade", client.City)
	put("cliente_estado", client.State)
	put("cliente_cep", format.CEP(client.CEP))
	put("cliente_endereco_completo", composeAddress(client.Address, client.City, client.State, client.CEP))

	if bundle.Contact != nil {
		put("contato_nome", bundle.Contact.Name)
		put("contato_email", bundle.Contact.Email)
		put("contato_telefone", format.Phone(bundle.Contact.Phone))
	} else {
		put("contato_nome", "")
		put("contato_email", "")
		put("contato_telefone", "")
	}

	filial := bundle.Filial
	put("filial_nome", filial.TradeName)
	put("filial_cnpj", format.CNPJ(filial.CNPJ))
	put("filial_endereco_completo", composeAddress(filial.Address, filial.City, filial.State, filial.CEP))
	put("filial_telefones", filial.Phones)
	put("filial_email", filial.Email)
	put("filial_contato_completo", fmt.Sprintf("E-mail: %s | Fone: %s", filial.Email, filial.Phones))

	resp := bundle.Responsible
	put("responsavel_nome", resp.FullName)
	put("responsavel_email", resp.Email)
	put("responsavel_telefone", format.Phone(resp.Phone))

	put("numero_proposta", doc.Number)
	put("data_criacao", format.DateTime(doc.IssueDate))
	if doc.ValidityDate != nil {
		put("data_validade", format.DateTime(*doc.ValidityDate))
	} else {
		put("data_validade", "")
	}
	put("modelo_compressor", doc.CompressorModel)
	put("numero_serie_compressor", doc.CompressorSerial)
	put("tipo_frete", doc.FreightType)
	put("condicao_pagamento", doc.PaymentTerms)
	put("prazo_entrega", doc.DeliveryTime)
	put("moeda", doc.Currency)
	put("observacoes", doc.Observations)
	put("valor_total", format.Currency(doc.Total))
	put("status", string(doc.Status))

	if doc.Kind == model.DocumentKindRental {
		put("locacao_valor_mensal", format.Currency(doc.MonthlyValue))
		put("locacao_qtd_meses", strconv.Itoa(doc.Months))
		if doc.PeriodStart != nil {
			put("locacao_data_inicio", format.DateTime(*doc.PeriodStart))
		} else {
			put("locacao_data_inicio", "")
		}
		if doc.PeriodEnd != nil {
			put("locacao_data_fim", format.DateTime(*doc.PeriodEnd))
		} else {
			put("locacao_data_fim", "")
		}
		put("locacao_nome_equipamento", doc.EquipmentTitle)
		put("locacao_imagem_path", doc.EquipmentImage)
	}

	total := 0.0
	for _, item := range bundle.Items {
		total += item.Total
	}
	put("data_hoje", format.DateTime(now))
	put("hora_atual", now.Format("15:04"))
	put("total_itens", strconv.Itoa(len(bundle.Items)))
	put("valor_total_calculado", format.Currency(total))

	return &Context{values: v, items: bundle.Items}
}

// Lookup devolve o valor de um token, sem registrar falta.
func (c *Context) Lookup(token string) (string, bool) {
	value, ok := c.values[token]
	return value, ok
}

// Items devolve a lista de itens do documento.
func (c *Context) Items() []model.DocumentItem {
	return c.items
}

// Resolve substitui todo {token} na string. Tokens desconhecidos viram
// o literal [token] e são acumulados para diagnóstico. Nunca falha.
func (c *Context) Resolve(template string) string {
	return c.resolve(template, "", -1)
}

// ResolveDynamic resolve o template de conteúdo de um elemento dinâmico,
// onde {value} referencia currentField.
func (c *Context) ResolveDynamic(template, currentField string) string {
	if template == "" {
		template = "{value}"
	}
	return c.resolve(template, currentField, -1)
}

// ResolveItem resolve tokens com prefixo item_ contra o item de índice
// dado, além dos tokens globais.
func (c *Context) ResolveItem(template string, index int) string {
	return c.resolve(template, "", index)
}

// DrainMissing devolve e limpa a lista de tokens não resolvidos desde a
// última chamada. O motor de layout converte em diagnósticos.
func (c *Context) DrainMissing() []string {
	missing := c.missing
	c.missing = nil
	return missing
}

func (c *Context) resolve(template, currentField string, itemIndex int) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		token := match[1 : len(match)-1]

		if token == "value" && currentField != "" {
			if value, ok := c.values[currentField]; ok {
				return value
			}
			c.missing = append(c.missing, currentField)
			return "[" + currentField + "]"
		}

		if itemIndex >= 0 && strings.HasPrefix(token, "item_") {
			if value, ok := c.itemValue(token, itemIndex); ok {
				return value
			}
			c.missing = append(c.missing, token)
			return "[" + token + "]"
		}

		if value, ok := c.values[token]; ok {
			return value
		}
		c.missing = append(c.missing, token)
		return "[" + token + "]"
	})
}

func (c *Context) itemValue(token string, index int) (string, bool) {
	if index >= len(c.items) {
		return "", false
	}
	item := c.items[index]
	switch token {
	case "item_numero":
		return strconv.Itoa(item.Position), true
	case "item_nome":
		return format.Sanitize(item.Name), true
	case "item_descricao":
		return format.Sanitize(item.Description), true
	case "item_quantidade":
		return formatQuantity(item.Quantity), true
	case "item_valor_unitario":
		return format.Currency(item.UnitValue), true
	case "item_valor_total":
		return format.Currency(item.Total), true
	default:
		return "", false
	}
}

func composeAddress(address, city, state, cep string) string {
	parts := make([]string, 0, 3)
	if strings.TrimSpace(address) != "" {
		parts = append(parts, address)
	}
	if city != "" && state != "" {
		parts = append(parts, city+" - "+state)
	} else if city != "" {
		parts = append(parts, city)
	}
	if cep != "" {
		parts = append(parts, "CEP: "+format.CEP(cep))
	}
	return strings.Join(parts, ", ")
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strings.Replace(strconv.FormatFloat(q, 'f', 2, 64), ".", ",", 1)
}
