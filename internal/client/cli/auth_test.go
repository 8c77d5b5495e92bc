package cli

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clinicsite/internal/client/services"
)

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestLogin_WithPromptedCredentials(t *testing.T) {
	stubPassword(t, "pw")
	app, auth, _, out := newTestApp("op@clinic.test\n")

	require.NoError(t, app.Login(context.Background()))
	require.NotNil(t, auth.lastCreds)
	assert.Equal(t, "op@clinic.test", auth.lastCreds.Email)
	assert.Equal(t, "pw", auth.lastCreds.Password)
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_EmptyEmailUsesSiteIdentity(t *testing.T) {
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		t.Fatal("password must not be requested")
		return nil, nil
	}
	t.Cleanup(func() { getPassword = orig })

	app, auth, _, _ := newTestApp("\n")

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, 1, auth.logins)
	assert.Nil(t, auth.lastCreds)
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "bad")
	app, auth, _, out := newTestApp("op@clinic.test\n")
	auth.loginErr = errors.New("authentication failed: 401 Invalid user credentials.")

	require.Error(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Login failed: authentication failed")
}

func TestLogin_PasswordReadError(t *testing.T) {
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return nil, errors.New("no tty") }
	t.Cleanup(func() { getPassword = orig })

	app, auth, _, _ := newTestApp("op@clinic.test\n")
	require.Error(t, app.Login(context.Background()))
	assert.Zero(t, auth.logins)
}

func TestLogout(t *testing.T) {
	app, auth, _, out := newTestApp("")
	auth.token, auth.authed = "T1", true

	require.NoError(t, app.Logout(context.Background()))
	assert.Empty(t, auth.token)
	assert.Contains(t, out.String(), "Logged out")

	auth.logoutErr = errors.New("redis down")
	require.Error(t, app.Logout(context.Background()))
	assert.Contains(t, out.String(), "redis down")
}

func TestStatus(t *testing.T) {
	app, auth, _, out := newTestApp("")
	ctx := context.Background()

	require.NoError(t, app.Status(ctx))
	assert.Contains(t, out.String(), "Not authenticated")

	out.Reset()
	auth.authed = true
	auth.claims = &services.TokenClaims{Subject: "user-7", Role: "editor", ExpiresAt: time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, app.Status(ctx))
	assert.Contains(t, out.String(), "Authenticated")
	assert.Contains(t, out.String(), "subject: user-7")
	assert.Contains(t, out.String(), "role:    editor")
	assert.Contains(t, out.String(), "2030-01-02T03:04:05Z")

	out.Reset()
	auth.claims, auth.claimsErr = nil, errors.New("invalid token")
	require.NoError(t, app.Status(ctx))
	assert.Contains(t, out.String(), "token: opaque")
}

func TestRoot_LoginThenListThroughSharedReader(t *testing.T) {
	stubPassword(t, "pw")
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	app, auth, _, out := newTestApp("login\nop@clinic.test\nteam\nexit\n")
	app.Root(context.Background())

	require.NotNil(t, auth.lastCreds)
	assert.Equal(t, "op@clinic.test", auth.lastCreds.Email)
	assert.Contains(t, out.String(), "Ana Souza")
	assert.Equal(t, "(authenticated)", app.getStatus(context.Background()))
}
