package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondspire/intake-api/internal/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("LOG_FORMAT", "json")

	out, err := execute(t, "token", "--subject", "ops-1", "--email", "ops@example.com")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("cli-secret", 0).ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestMigratePrint(t *testing.T) {
	out, err := execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "newsletter_subscriptions")
	migratePrint = false
}

func TestSubmitCommand(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/partnership", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Thanks for reaching out","inquiryId":"inq-1"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "submit", "--server", srv.URL, "--form", "partnership",
		"--partnership-type", "impact-investor",
		"--field", "organizationName=Acme",
		"--field", "name=Jane",
		"--field", "email=jane@acme.org",
		"--field", "message=Hello there",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks for reaching out")
	assert.Contains(t, out, "id: inq-1")
	assert.Equal(t, []any{"impact-investor"}, received["partnershipType"])
	assert.Equal(t, "Acme", received["organizationName"])
}
