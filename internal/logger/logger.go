package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New devolve o logger do serviço: saída de console legível em
// desenvolvimento, JSON estruturado nos demais ambientes.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
