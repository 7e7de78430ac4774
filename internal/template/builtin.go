package template

import "github.com/aircomp/propostas-service/internal/model"

// Templates embutidos. São gravados na subida do serviço quando
// ausentes e nunca podem ser apagados.

func text(x, y, w, h float64, content string, size float64, bold bool) model.Element {
	return model.Element{
		Kind: model.ElementText,
		X:    x, Y: y, W: w, H: h,
		Content: content,
		Font:    model.FontStyle{Family: "Helvetica", Size: size, Bold: bold},
	}
}

func dynamic(x, y, w, h float64, field, contentTemplate string, size float64, bold bool) model.Element {
	return model.Element{
		Kind: model.ElementDynamicField,
		X:    x, Y: y, W: w, H: h,
		CurrentField:    field,
		ContentTemplate: contentTemplate,
		Font:            model.FontStyle{Family: "Helvetica", Size: size, Bold: bold},
	}
}

func rule(x, y, w float64) model.Element {
	return model.Element{
		Kind: model.ElementLine,
		X:    x, Y: y, W: w, H: 4,
		BorderColor: &model.Color{R: 137, G: 207, B: 240},
		BorderWidth: 1,
	}
}

func itemsTable(y float64) model.Element {
	return model.Element{
		Kind: model.ElementTable,
		X:    40, Y: y, W: 515, H: 500,
		RowSource: "items",
	}
}

// DefaultPurchase é o template embutido de cotação de compra.
func DefaultPurchase() *model.Template {
	return &model.Template{
		Name: DefaultPurchaseName,
		Kind: model.DocumentKindPurchase,
		Pages: []model.TemplatePage{
			{Number: 1, Editable: false, IsCover: true},
			{
				Number: 2, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "APRESENTAÇÃO", 14, true),
					rule(40, 134, 515),
					dynamic(40, 150, 515, 18, "cliente_nome", "Cliente: {value}", 11, true),
					dynamic(40, 170, 515, 16, "contato_nome", "A/C: {value}", 10, false),
					text(40, 210, 515, 140,
						"Prezado cliente,\n\nAgradecemos a oportunidade de apresentar a proposta comercial "+
							"nº {numero_proposta}. Este documento descreve os equipamentos e serviços "+
							"selecionados para a sua operação de ar comprimido, com valores, prazos e "+
							"condições detalhados nas páginas seguintes.\n\nPermanecemos à disposição para "+
							"qualquer esclarecimento.", 10, false),
					dynamic(40, 560, 300, 16, "responsavel_nome", "Responsável comercial: {value}", 10, true),
					dynamic(40, 580, 300, 14, "responsavel_email", "E-mail: {value}", 9, false),
					dynamic(40, 596, 300, 14, "responsavel_telefone", "Fone: {value}", 9, false),
				},
			},
			{
				Number: 3, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "SOBRE A EMPRESA", 14, true),
					rule(40, 134, 515),
					text(40, 150, 515, 200,
						"Somos especializados em venda, locação e manutenção de compressores de ar e "+
							"periféricos. Atuamos com as principais marcas do mercado, equipe técnica "+
							"própria e atendimento em todo o território nacional.\n\nNossa estrutura conta "+
							"com oficina equipada, estoque permanente de peças genuínas e frota dedicada "+
							"para atendimento em campo, garantindo agilidade e disponibilidade para o seu "+
							"parque de ar comprimido.", 10, false),
					text(40, 380, 515, 60,
						"- Manutenção preventiva e corretiva\n- Contratos de locação com manutenção inclusa\n"+
							"- Peças e insumos originais\n- Laudos e medições de eficiência", 10, false),
				},
			},
			{
				Number: 4, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "PROPOSTA", 14, true),
					rule(40, 134, 515),
					dynamic(40, 150, 257, 16, "modelo_compressor", "Modelo do compressor: {value}", 10, false),
					dynamic(300, 150, 255, 16, "numero_serie_compressor", "Número de série: {value}", 10, false),
					itemsTable(190),
				},
			},
			{
				Number: 5, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "CONDIÇÕES GERAIS", 14, true),
					rule(40, 134, 515),
					dynamic(40, 160, 515, 16, "condicao_pagamento", "Condição de pagamento: {value}", 10, false),
					dynamic(40, 180, 515, 16, "tipo_frete", "Frete: {value}", 10, false),
					dynamic(40, 200, 515, 16, "prazo_entrega", "Prazo de entrega: {value}", 10, false),
					dynamic(40, 220, 515, 16, "data_validade", "Proposta válida até: {value}", 10, false),
					dynamic(40, 260, 515, 80, "observacoes", "Observações:\n{value}", 10, false),
					rule(150, 620, 295),
					dynamic(150, 632, 295, 16, "responsavel_nome", "{value}", 10, true),
					dynamic(150, 650, 295, 14, "filial_nome", "{value}", 9, false),
				},
			},
		},
	}
}

// DefaultRental é o template embutido de proposta de locação.
func DefaultRental() *model.Template {
	return &model.Template{
		Name: DefaultRentalName,
		Kind: model.DocumentKindRental,
		Pages: []model.TemplatePage{
			{Number: 1, Editable: false, IsCover: true},
			{
				Number: 2, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "APRESENTAÇÃO", 14, true),
					rule(40, 134, 515),
					dynamic(40, 150, 515, 18, "cliente_nome", "Cliente: {value}", 11, true),
					dynamic(40, 170, 515, 16, "contato_nome", "A/C: {value}", 10, false),
					text(40, 210, 515, 120,
						"Prezado cliente,\n\nApresentamos a proposta de locação nº {numero_proposta}, "+
							"elaborada para atender a demanda de ar comprimido da sua operação com "+
							"flexibilidade e previsibilidade de custos.", 10, false),
					dynamic(40, 560, 300, 16, "responsavel_nome", "Responsável comercial: {value}", 10, true),
					dynamic(40, 580, 300, 14, "responsavel_email", "E-mail: {value}", 9, false),
					dynamic(40, 596, 300, 14, "responsavel_telefone", "Fone: {value}", 9, false),
				},
			},
			{
				Number: 3, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "SOBRE A EMPRESA", 14, true),
					rule(40, 134, 515),
					text(40, 150, 515, 160,
						"Somos especializados em venda, locação e manutenção de compressores de ar e "+
							"periféricos, com equipe técnica própria, estoque permanente de peças e "+
							"atendimento em todo o território nacional.", 10, false),
				},
			},
			{
				Number: 4, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "VANTAGENS DA LOCAÇÃO", 14, true),
					rule(40, 134, 515),
					text(40, 150, 515, 200,
						"- Sem imobilização de capital\n- Manutenção preventiva e corretiva inclusas\n"+
							"- Substituição do equipamento em caso de falha\n- Custo mensal fixo e previsível\n"+
							"- Equipamentos revisados e prontos para operação", 10, false),
				},
			},
			{
				Number: 5, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "EQUIPAMENTO", 14, true),
					rule(40, 134, 515),
					dynamic(40, 150, 515, 18, "locacao_nome_equipamento", "{value}", 12, true),
					model.Element{
						Kind: model.ElementImage,
						X:    130, Y: 190, W: 335, H: 250,
						Content: "{locacao_imagem_path}",
					},
					dynamic(40, 470, 257, 16, "locacao_valor_mensal", "Valor mensal: {value}", 11, true),
					dynamic(300, 470, 255, 16, "locacao_qtd_meses", "Período: {value} meses", 11, false),
					dynamic(40, 492, 257, 16, "locacao_data_inicio", "Início: {value}", 10, false),
					dynamic(300, 492, 255, 16, "locacao_data_fim", "Término: {value}", 10, false),
				},
			},
			{
				Number: 6, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "PROPOSTA DE LOCAÇÃO", 14, true),
					rule(40, 134, 515),
					itemsTable(160),
				},
			},
			{
				Number: 7, Editable: true, HasHeader: true, HasFooter: true,
				Elements: []model.Element{
					text(40, 110, 515, 24, "CONDIÇÕES GERAIS", 14, true),
					rule(40, 134, 515),
					dynamic(40, 160, 515, 16, "condicao_pagamento", "Condição de pagamento: {value}", 10, false),
					dynamic(40, 180, 515, 16, "tipo_frete", "Frete: {value}", 10, false),
					dynamic(40, 220, 515, 80, "observacoes", "Observações:\n{value}", 10, false),
					rule(150, 620, 295),
					dynamic(150, 632, 295, 16, "responsavel_nome", "{value}", 10, true),
					dynamic(150, 650, 295, 14, "filial_nome", "{value}", 9, false),
				},
			},
		},
	}
}
