package format

import "strings"

// Substituições determinísticas de caracteres tipográficos por
// equivalentes seguros em Latin-1. Aplicadas antes de qualquer desenho
// de texto; as fontes internas do PDF cobrem apenas cp1252.
var sanitizeTable = map[rune]string{
	'\t': "    ",
	'•':  "-", // bullet
	'◦':  "-", // white bullet
	'▪':  "-", // black small square
	'–':  "-", // en dash
	'—':  "-", // em dash
	'―':  "-", // horizontal bar
	'…':  "...",
	'‘':  "'",
	'’':  "'",
	'‚':  "'",
	'“':  `"`,
	'”':  `"`,
	'„':  `"`,
	'‹':  "<",
	'›':  ">",
	'®':  "(R)",
	'™':  "(TM)",
	'©':  "(C)",
	'°':  " graus",
	' ':  " ",
}

// Sanitize normaliza texto de usuário ou do banco para uma forma segura
// em Latin-1, sem tabulações. Idempotente e total: nunca falha e para a
// string vazia devolve a string vazia. Pontos de código fora do Latin-1
// que não tenham substituição são descartados.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := sanitizeTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return b.String()
}
