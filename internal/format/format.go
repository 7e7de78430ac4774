package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formatadores de valores para o padrão brasileiro. Todos são puros e
// totais: qualquer entrada, inclusive vazia ou malformada, produz uma
// string não vazia ou a própria entrada.

// Currency formata um valor em reais: "R$ 1.234,56".
func Currency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	intPart := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(intPart, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%02d", sign, b.String(), frac)
}

// CurrencyString aceita valores numéricos em texto, inclusive já
// no formato brasileiro ("1.234,56"). Entrada não numérica vira R$ 0,00.
func CurrencyString(s string) string {
	return Currency(ParseDecimal(s))
}

// ParseDecimal interpreta números em formato brasileiro ou americano.
// Devolve 0 quando a entrada não é numérica.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Date converte "2006-01-02" em "02/01/2006". Entrada malformada
// é devolvida sem alteração.
func Date(iso string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// DateTime formata um time.Time como dd/mm/aaaa; zero vira vazio.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// CNPJ aplica a máscara NN.NNN.NNN/NNNN-NN quando a entrada tem
// 14 dígitos; caso contrário devolve a entrada.
func CNPJ(s string) string {
	d := onlyDigits(s)
	if len(d) != 14 {
		return s
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// Phone aplica máscara de telefone brasileiro com 10 ou 11
// dígitos; outras contagens são devolvidas sem alteração.
func Phone(s string) string {
	d := onlyDigits(s)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:11])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:6], d[6:10])
	default:
		return s
	}
}

// CEP aplica a máscara NNNNN-NNN a CEPs de 8 dígitos.
func CEP(s string) string {
	d := onlyDigits(s)
	if len(d) != 8 {
		return s
	}
	return fmt.Sprintf("%s-%s", d[0:5], d[5:8])
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
