package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sixgo.GO/client"
	"sixgo.GO/config"
	"sixgo.GO/localstore"
)

func testStore(t *testing.T) localstore.Store {
	t.Helper()
	s, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestNewManager_EmptyStore(t *testing.T) {
	m := NewManager(testStore(t))
	if m.IsAuthenticated() {
		t.Error("fresh store should be unauthenticated")
	}
	if m.AccessToken() != "" {
		t.Error("AccessToken should be empty")
	}
}

func TestNewManager_RestoresSlot(t *testing.T) {
	store := testStore(t)
	localstore.SetJSON(store, AuthSlot, StoredSession{AccessToken: "tok", UserName: "agent"})

	m := NewManager(store)
	if !m.IsAuthenticated() {
		t.Fatal("should be authenticated from slot")
	}
	if m.Current().UserName != "agent" {
		t.Errorf("UserName = %q", m.Current().UserName)
	}
}

func TestNewManager_CorruptSlotIsUnauthenticated(t *testing.T) {
	store := testStore(t)
	store.Set(AuthSlot, []byte("{broken"))

	m := NewManager(store)
	if m.IsAuthenticated() {
		t.Error("corrupt slot should mean unauthenticated")
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	config.LoadAppConfig()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/signin" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"message":"ok","data":{"userName":"agent","userRoles":"CS","accessToken":"at-1","refreshToken":"rt-1","accessTokenExp":"00:30:00"},"ts":"t"}`))
	}))
	defer srv.Close()

	store := testStore(t)
	m := NewManager(store)
	m.SetIdentityClient(client.New(func() string { return srv.URL }, client.WithTokenSource(m)))

	got, err := m.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "pw", RememberMe: true})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.AccessToken != "at-1" {
		t.Errorf("AccessToken = %q", got.AccessToken)
	}
	if m.AccessToken() != "at-1" {
		t.Error("in-memory token not set")
	}

	// New manager over the same store sees the persisted session.
	m2 := NewManager(store)
	if m2.AccessToken() != "at-1" {
		t.Error("session not persisted to slot")
	}
}

func TestLogout_ClearsEvenWhenUpstreamFails(t *testing.T) {
	config.LoadAppConfig()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := testStore(t)
	localstore.SetJSON(store, AuthSlot, StoredSession{AccessToken: "tok"})
	m := NewManager(store)
	m.SetIdentityClient(client.New(func() string { return srv.URL }, client.WithTokenSource(m)))

	m.Logout(context.Background())
	if m.IsAuthenticated() {
		t.Error("logout should clear session despite upstream failure")
	}
	if _, ok := store.Get(AuthSlot); ok {
		t.Error("slot should be deleted")
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	localstore.SetJSON(store, AuthSlot, StoredSession{AccessToken: "tok"})
	m := NewManager(store)

	m.Clear()
	if m.IsAuthenticated() {
		t.Error("Clear should drop the session")
	}
}
