package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Tienda-Funkos-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testSessionID = "5f0c1c8e-3b53-4a0e-9a53-7c1b0e6a1d11"
	testUserID    = "42"
	testIssuer    = "tienda-funkos-test"
)

func TestJWT_GenerateAndParse_ConSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "mixto", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testSessionID, claims.SessionID)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "mixto", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SinSesion_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token sin session_id no referencia ninguna sesión")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testSessionID, testUserID, "admin", testIssuer, 60)
	assert.Error(t, err)
}
