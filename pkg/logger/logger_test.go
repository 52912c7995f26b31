package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/pkg/logger"
)

func TestNew_EstampaNombreDelServicio(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "nomina-pruebas"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	require.NotEmpty(t, buf.String(), "debe emitir el registro")
	assert.Contains(t, buf.String(), `"service":"nomina-pruebas"`, "cada registro lleva el nombre del servicio")
}

func TestNew_ServicioPorDefecto(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")

	assert.Contains(t, buf.String(), `"service":"nomina-api"`, "sin nombre configurado usa el del proyecto")
}
