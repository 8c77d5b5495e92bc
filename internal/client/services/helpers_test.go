package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clinicsite/internal/client/client"
	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/repositories/kv"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

var fallbackIdentity = models.Credentials{Email: "site@clinic.test", Password: "fallback-pw"}

// ---- clock ----

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ---- fake CMS ----

type fakeCMS struct {
	srv *httptest.Server

	logins atomic.Int32
	items  atomic.Int32
	assets atomic.Int32

	mu sync.Mutex
	// loginStatus != 200 rejects logins with {"errors":[{"message":loginMessage}]}.
	loginStatus  int
	loginMessage string
	token        string
	expires      int64
	lastEmail    string
	// itemsStatus != 200 fails collection reads.
	itemsStatus int
	itemsBody   func(n int32) string
	itemsGate   func(n int32)
	lastAuth    string
}

func newFakeCMS(t *testing.T) *fakeCMS {
	t.Helper()
	f := &fakeCMS{
		loginStatus: http.StatusOK,
		token:       "T1",
		expires:     3_600_000,
		itemsStatus: http.StatusOK,
		itemsBody: func(int32) string {
			return `{"data":[{"id":1,"nome_funcionario":"Ana Souza","descricao_funcionario":"Dermatologista","Imagem_funcionario":"img-1"},
				{"id":2,"nome_funcionario":"Bruno Lima","descricao_funcionario":"Fisioterapeuta","Imagem_funcionario":"img-2"}]}`
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)

		f.mu.Lock()
		f.lastEmail = creds.Email
		status, msg, tok, exp := f.loginStatus, f.loginMessage, f.token, f.expires
		f.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"errors":[{"message":%q}]}`, msg)
			return
		}
		_, _ = fmt.Fprintf(w, `{"data":{"access_token":%q,"refresh_token":"R1","expires":%d}}`, tok, exp)
	})
	mux.HandleFunc("GET /items/{collection}", func(w http.ResponseWriter, r *http.Request) {
		n := f.items.Add(1)

		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		status, body, gate := f.itemsStatus, f.itemsBody, f.itemsGate
		f.mu.Unlock()

		if gate != nil {
			gate(n)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = io.WriteString(w, body(n))
	})
	mux.HandleFunc("/assets/", func(w http.ResponseWriter, r *http.Request) {
		f.assets.Add(1)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCMS) set(fn func(f *fakeCMS)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeCMS) client() *client.HTTPClient {
	return client.NewHTTPClient(f.srv.URL, f.srv.Client(), logging.Discard())
}

// ---- stores ----

type tiers struct {
	session *kv.MemoryStore
	durable *kv.MemoryStore
	chain   *kv.Tiered
}

func newTiers() *tiers {
	t := &tiers{session: kv.NewMemoryStore(), durable: kv.NewMemoryStore()}
	t.chain = kv.NewTiered(logging.Discard(),
		kv.Tier{Name: "session", Store: t.session},
		kv.Tier{Name: "durable", Store: t.durable},
	)
	return t
}

func snapshotIn(t *testing.T, s kv.Store) *models.TokenSnapshot {
	t.Helper()
	raw, err := s.Get(context.Background(), "auth_cache")
	require.NoError(t, err)
	if raw == nil {
		return nil
	}
	var snap models.TokenSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	return &snap
}

func putSnapshot(t *testing.T, s kv.Store, snap models.TokenSnapshot) {
	t.Helper()
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "auth_cache", raw))
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func (f *fakeCMS) email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastEmail
}

func (f *fakeCMS) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}
