package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namnm309/finmate-go/internal/adapters/identity"
	"github.com/namnm309/finmate-go/internal/utils"
)

func TestNewPasswordTokenSource_ExchangesCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "alice@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "s3cret", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"granted-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	src, err := identity.NewPasswordTokenSource(context.Background(), identity.Config{
		TokenURL: srv.URL + "/oauth/token",
		ClientID: "finmate-mobile",
		Username: "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "granted-token", tok.AccessToken)
}

func TestNewPasswordTokenSource_BadCredentialsFailEagerly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	_, err := identity.NewPasswordTokenSource(context.Background(), identity.Config{
		TokenURL: srv.URL + "/oauth/token",
		Username: "alice@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestSubjectFromToken(t *testing.T) {
	raw, err := utils.GenerateJWT("user-42", "test-secret", time.Hour, "finmate-stub")
	require.NoError(t, err)

	subject, err := identity.SubjectFromToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestSubjectFromToken_RejectsGarbage(t *testing.T) {
	_, err := identity.SubjectFromToken("not-a-jwt")
	assert.Error(t, err)
}

func TestStaticTokenSource(t *testing.T) {
	tok, err := identity.StaticTokenSource("fixed").Token()
	require.NoError(t, err)
	assert.Equal(t, "fixed", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}
