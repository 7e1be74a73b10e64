// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/sec"
)

// newTestService generates a throwaway RSA key pair on disk and builds a
// TokenService from it.
func newTestService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	service, err := sec.NewTokenService(privPath, pubPath, "inkwell-test")
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip signs a token and verifies that the typed claims
survive the trip, including the role as a [sec.Role] rather than a bare string.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken(42, "ana@inkwell.pub", sec.RoleEditor, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "ana@inkwell.pub", claims.Email)
	assert.Equal(t, sec.RoleEditor, claims.Role)
	assert.True(t, claims.Role.AtLeast(sec.RoleUser))
}

/*
TestTokenService_RejectsExpired refuses tokens past their expiry.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken(42, "ana@inkwell.pub", sec.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

/*
TestTokenService_RejectsTampered refuses tokens whose payload was altered
after signing.
*/
func TestTokenService_RejectsTampered(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken(42, "ana@inkwell.pub", sec.RoleUser, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token + "x")
	require.Error(t, err)
}
