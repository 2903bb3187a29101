package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/albaranes-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard-ventas", "albaranes-api-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	consumer, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "dashboard-ventas", consumer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard-ventas", "albaranes-api-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "dashboard-ventas", "albaranes-api-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_ParametrosVacios(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", "i", 60)
	assert.Error(t, err)
	_, err = pkgjwt.Generate(testSecret, "", "i", 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}
