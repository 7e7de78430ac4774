package format

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"vazio", "", ""},
		{"tab vira quatro espaços", "a\tb", "a    b"},
		{"travessões viram hífen", "a – b — c", "a - b - c"},
		{"aspas tipográficas", "“ok” ‘x’", `"ok" 'x'`},
		{"bullet", "• item", "- item"},
		{"reticências", "fim…", "fim..."},
		{"graus", "90°C", "90 grausC"},
		{"marcas", "X® Y™ Z©", "X(R) Y(TM) Z(C)"},
		{"latin-1 preservado", "manutenção técnica à razão", "manutenção técnica à razão"},
		{"fora do latin-1 descartado", "abc日本def", "abcdef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIdempotente(t *testing.T) {
	inputs := []string{
		"a\tb – “c” • 90° X®…",
		"proposta técnica de manutenção",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Fatalf("Sanitize não idempotente para %q: %q != %q", in, once, twice)
		}
	}
}
