package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/osokina-md/go-market-client/internal/client"
	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/session"
	"github.com/osokina-md/go-market-client/internal/storage/file"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		Subject:   "user-1",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	return signed
}

// newTestService собирает полный стек (transport -> session -> client ->
// service) поверх httptest-сервера и файлового хранилища во временном
// каталоге.
func newTestService(t *testing.T, h http.Handler) (*Service, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tr := client.NewTransport(client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})

	fs, err := file.New(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	sess := session.New(fs, tr)

	return New(client.New(tr, sess), sess), sess
}

// loginTestUser заселяет сессию действующим токеном.
func loginTestUser(t *testing.T, sess *session.Store) {
	t.Helper()

	access := mintToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sess.Login(context.Background(), access, "refresh-1",
		models.User{Image: "https://cdn/img.png", Nickname: "panda"}))
}
