package core

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clinicsite/internal/client/config"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

func fakeCMS(t *testing.T, logins *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		_, _ = io.WriteString(w, `{"data":{"access_token":"T1","refresh_token":"R1","expires":3600000}}`)
	})
	mux.HandleFunc("GET /items/{collection}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":1,"nome_funcionario":"Ana"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CMSBaseURL = baseURL
	cfg.Email, cfg.Password = "site@clinic.test", "pw"
	cfg.StoreDSN = filepath.Join(t.TempDir(), "state", "clinicsite.db")
	return cfg
}

func TestNew_DurableTierSurvivesRestart(t *testing.T) {
	var logins atomic.Int32
	cfg := testConfig(t, fakeCMS(t, &logins).URL)
	cfg.StorePassphrase = "correct horse"
	ctx := context.Background()

	first, err := New(ctx, cfg, logging.Discard(), prometheus.NewRegistry())
	require.NoError(t, err)
	items, err := first.Team.TeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg, logging.Discard(), nil)
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.Auth.IsAuthenticated(ctx))
	assert.Equal(t, "T1", second.Auth.AccessToken(ctx))
	assert.Equal(t, int32(1), logins.Load())
}

func TestNew_RedisSessionTier(t *testing.T) {
	var logins atomic.Int32
	mr := miniredis.RunT(t)
	cfg := testConfig(t, fakeCMS(t, &logins).URL)
	cfg.SessionBackend = config.SessionRedis
	cfg.RedisAddr = mr.Addr()
	ctx := context.Background()

	c, err := New(ctx, cfg, logging.Discard(), nil)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Auth.Login(ctx, nil))
	assert.True(t, mr.Exists(RedisKeyPrefix+"auth_cache"))
	assert.Equal(t, cfg.SessionTTL, mr.TTL(RedisKeyPrefix+"auth_cache"))

	require.NoError(t, c.Auth.Logout(ctx))
	assert.False(t, mr.Exists(RedisKeyPrefix+"auth_cache"))
}

func TestNew_RedisUnreachable(t *testing.T) {
	var logins atomic.Int32
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t, fakeCMS(t, &logins).URL)
	cfg.SessionBackend = config.SessionRedis
	cfg.RedisAddr = addr

	_, err := New(context.Background(), cfg, logging.Discard(), nil)
	require.ErrorContains(t, err, "session store")
}

func TestNew_BadProxyURL(t *testing.T) {
	var logins atomic.Int32
	cfg := testConfig(t, fakeCMS(t, &logins).URL)
	cfg.ProxyURL = "ssh+socks5://user@jump:22"

	_, err := New(context.Background(), cfg, logging.Discard(), nil)
	require.ErrorContains(t, err, "http client")
}
