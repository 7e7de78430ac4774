package resolver

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aircomp/propostas-service/internal/model"
)

func testBundle(kind model.DocumentKind) model.DocumentBundle {
	issue := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	validity := issue.AddDate(0, 0, 30)

	doc := model.Document{
		ID:               uuid.New(),
		Number:           "2024/0042",
		Kind:             kind,
		IssueDate:        issue,
		ValidityDate:     &validity,
		Status:           model.DocumentStatusOpen,
		CompressorModel:  "GA-30",
		CompressorSerial: "SN-9981",
		FreightType:      "CIF",
		PaymentTerms:     "28 dias",
		DeliveryTime:     "10 dias úteis",
		Currency:         "BRL",
		Total:            15000,
		MonthlyValue:     1200,
		Months:           6,
		EquipmentTitle:   "Compressor GA-30",
		EquipmentImage:   "assets/ga30.jpg",
	}

	return model.DocumentBundle{
		Document: doc,
		Items: []model.DocumentItem{
			{Position: 1, Kind: model.ItemKindProduct, Name: "Filtro de Ar", Quantity: 2, UnitValue: 250, Total: 500},
		},
		Filial: model.Filial{
			TradeName: "AirComp Matriz",
			CNPJ:      "12345678000190",
			Address:   "Rua das Turbinas, 100",
			City:      "São Paulo",
			State:     "SP",
			CEP:       "01310100",
			Phones:    "(11) 3456-7890",
			Email:     "contato@aircomp.com.br",
		},
		Responsible: model.User{Username: "vend1", FullName: "Maria Souza", Email: "maria@aircomp.com.br", Phone: "11987654321"},
		Client: model.Client{
			LegalName: "Metalúrgica Ipanema Ltda",
			TradeName: "Ipanema Metais",
			CNPJ:      "98765432000155",
			Address:   "Av. Industrial, 2000",
			City:      "Sorocaba",
			State:     "SP",
			CEP:       "18052000",
			Phone:     "1532221100",
			Email:     "compras@ipanema.com.br",
		},
		Contact: &model.Contact{Name: "João Pereira", Email: "joao@ipanema.com.br", Phone: "15991112222"},
	}
}

func TestBuildContextCompleteness(t *testing.T) {
	now := time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC)
	ctx := BuildContext(testBundle(model.DocumentKindPurchase), now)

	want := map[string]string{
		"cliente_nome":            "Ipanema Metais",
		"cliente_razao_social":    "Metalúrgica Ipanema Ltda",
		"cliente_cnpj":            "98.765.432/0001-55",
		"contato_nome":            "João Pereira",
		"filial_nome":             "AirComp Matriz",
		"filial_cnpj":             "12.345.678/0001-90",
		"filial_contato_completo": "E-mail: contato@aircomp.com.br | Fone: (11) 3456-7890",
		"numero_proposta":         "2024/0042",
		"data_criacao":            "01/03/2024",
		"data_validade":           "31/03/2024",
		"modelo_compressor":       "GA-30",
		"condicao_pagamento":      "28 dias",
		"valor_total":             "R$ 15.000,00",
		"data_hoje":               "02/03/2024",
		"hora_atual":              "14:30",
		"total_itens":             "1",
		"valor_total_calculado":   "R$ 500,00",
	}
	for token, expected := range want {
		got, ok := ctx.Lookup(token)
		if !ok {
			t.Fatalf("token %q ausente do contexto", token)
		}
		if got != expected {
			t.Fatalf("token %q = %q, want %q", token, got, expected)
		}
	}
}

func TestBuildContextRentalKeys(t *testing.T) {
	now := time.Now()

	t.Run("cotação não tem chaves de locação", func(t *testing.T) {
		ctx := BuildContext(testBundle(model.DocumentKindPurchase), now)
		if _, ok := ctx.Lookup("locacao_valor_mensal"); ok {
			t.Fatal("locacao_valor_mensal não deveria existir em cotação")
		}
	})

	t.Run("locação tem chaves próprias", func(t *testing.T) {
		ctx := BuildContext(testBundle(model.DocumentKindRental), now)
		cases := map[string]string{
			"locacao_valor_mensal":     "R$ 1.200,00",
			"locacao_qtd_meses":        "6",
			"locacao_nome_equipamento": "Compressor GA-30",
			"locacao_imagem_path":      "assets/ga30.jpg",
		}
		for token, want := range cases {
			got, ok := ctx.Lookup(token)
			if !ok || got != want {
				t.Fatalf("token %q = %q (ok=%v), want %q", token, got, ok, want)
			}
		}
	})
}

func TestResolveUnknownToken(t *testing.T) {
	ctx := BuildContext(testBundle(model.DocumentKindPurchase), time.Now())

	got := ctx.Resolve("Olá {cliente_nome}, ref {nao_existe}")
	if got != "Olá Ipanema Metais, ref [nao_existe]" {
		t.Fatalf("got %q", got)
	}

	missing := ctx.DrainMissing()
	if len(missing) != 1 || missing[0] != "nao_existe" {
		t.Fatalf("missing = %v", missing)
	}
	if again := ctx.DrainMissing(); len(again) != 0 {
		t.Fatalf("segundo drain deveria ser vazio, got %v", again)
	}
}

func TestResolveBracesWithoutToken(t *testing.T) {
	ctx := BuildContext(testBundle(model.DocumentKindPurchase), time.Now())
	in := "chaves { soltas } e {1invalido} ficam literais"
	if got := ctx.Resolve(in); got != in {
		t.Fatalf("got %q", got)
	}
	if missing := ctx.DrainMissing(); len(missing) != 0 {
		t.Fatalf("nada deveria faltar, got %v", missing)
	}
}

func TestResolveDynamic(t *testing.T) {
	ctx := BuildContext(testBundle(model.DocumentKindPurchase), time.Now())

	t.Run("template vazio equivale a {value}", func(t *testing.T) {
		if got := ctx.ResolveDynamic("", "cliente_nome"); got != "Ipanema Metais" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("template com prefixo", func(t *testing.T) {
		if got := ctx.ResolveDynamic("CNPJ: {value}", "cliente_cnpj"); got != "CNPJ: 98.765.432/0001-55" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("campo inexistente vira [campo]", func(t *testing.T) {
		if got := ctx.ResolveDynamic("", "campo_fantasma"); got != "[campo_fantasma]" {
			t.Fatalf("got %q", got)
		}
		missing := ctx.DrainMissing()
		if len(missing) != 1 || missing[0] != "campo_fantasma" {
			t.Fatalf("missing = %v", missing)
		}
	})
}

func TestResolveItem(t *testing.T) {
	ctx := BuildContext(testBundle(model.DocumentKindPurchase), time.Now())

	got := ctx.ResolveItem("{item_numero}: {item_nome} x{item_quantidade} = {item_valor_total}", 0)
	if got != "1: Filtro de Ar x2 = R$ 500,00" {
		t.Fatalf("got %q", got)
	}

	got = ctx.ResolveItem("{item_nome}", 5)
	if got != "[item_nome]" {
		t.Fatalf("índice fora da lista deveria virar [item_nome], got %q", got)
	}
	ctx.DrainMissing()
}

func TestBuildContextWithoutContact(t *testing.T) {
	bundle := testBundle(model.DocumentKindPurchase)
	bundle.Contact = nil
	ctx := BuildContext(bundle, time.Now())

	for _, token := range []string{"contato_nome", "contato_email", "contato_telefone"} {
		got, ok := ctx.Lookup(token)
		if !ok || got != "" {
			t.Fatalf("token %q = %q (ok=%v), want vazio presente", token, got, ok)
		}
	}
}
