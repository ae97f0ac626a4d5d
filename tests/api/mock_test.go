package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"

	"sixgo.GO/api"
	_ "sixgo.GO/api/products"
	_ "sixgo.GO/api/resources"
	_ "sixgo.GO/api/session"
	"sixgo.GO/client"
	"sixgo.GO/config"
	"sixgo.GO/core/auth"
	corecache "sixgo.GO/core/cache"
	"sixgo.GO/localstore"
	"sixgo.GO/products"
	"sixgo.GO/resources"
	"sixgo.GO/session"
)

const upstreamResourcesJSON = `{"message":"ok","data":{
	"categories":[
		{"id":"c1","code":"CTG10000000001","name":"Music","level":0,"children":[
			{"id":"c2","code":"CTG20000000001","name":"Guitar","level":1,"children":[]}
		]},
		{"id":"c3","code":"CTG90000000001","name":"Hidden","level":0,"children":[]}
	],
	"languages":[{"id":"l1","code":"ENG","name":"English"}],
	"locations":[
		{"id":"v1","code":"VNM","name":"Vietnam","level":0,"children":[
			{"id":"v2","code":"HAN","name":"Hanoi","level":1,"children":[]}
		]}
	],
	"productTypes":{"CTG10000000001":[{"id":"t1","code":"PT1","name":"Class"}]},
	"processMethods":{"CTG10000000001":[{"id":"m1","code":"PM1","name":"Offline"}]}
},"ts":"t"}`

const upstreamSearchJSON = `{"message":"ok","data":{
	"pageNumber":1,"pageSize":10,"totalRecords":1,"totalPages":1,
	"items":[{"productId":"p1","name":"Guitar class","csImportantNote":"vip"}]
},"ts":"t"}`

const upstreamLoginJSON = `{"message":"ok","data":{
	"userId":"u1","userName":"agent","userRoles":"cs",
	"accessToken":"tok-123","refreshToken":"ref-123"
},"ts":"t"}`

// upstream counts hits per concern so tests can assert cache behavior.
type upstream struct {
	srv       *httptest.Server
	resources int32
	searches  int32
	notes     int32
	logins    int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/resources":
			atomic.AddInt32(&u.resources, 1)
			w.Write([]byte(upstreamResourcesJSON))
		case r.URL.Path == "/products/cs" && r.Method == http.MethodGet:
			atomic.AddInt32(&u.searches, 1)
			w.Write([]byte(upstreamSearchJSON))
		case r.URL.Path == "/products/cs" && r.Method == http.MethodPost:
			atomic.AddInt32(&u.notes, 1)
			w.Write([]byte(`{"message":"ok","data":true,"ts":"t"}`))
		case r.URL.Path == "/account/signin":
			atomic.AddInt32(&u.logins, 1)
			w.Write([]byte(upstreamLoginJSON))
		case r.URL.Path == "/account/logout":
			w.Write([]byte(`{"message":"ok","data":true,"ts":"t"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

// newConsole builds the console HTTP surface against the mock upstream,
// with key auth so tests authenticate with a static header.
func newConsole(t *testing.T, u *upstream) (*echo.Echo, *api.Deps) {
	t.Helper()
	config.LoadAppConfig()
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "test-key")

	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}

	sessions := session.NewManager(store)
	base := func() string { return u.srv.URL }
	tokens := client.WithTokenSource(sessions)
	onAuthFailure := client.WithUnauthorizedHook(sessions.Clear)

	identity := client.New(base, tokens, onAuthFailure)
	sessions.SetIdentityClient(identity)
	upstreamClient := client.New(base, tokens, onAuthFailure)

	orchestrator := products.NewOrchestrator(upstreamClient, corecache.NewCache())
	deps := &api.Deps{
		Session:   sessions,
		Resources: resources.NewCache(store, upstreamClient),
		Search:    orchestrator,
		Filters:   products.NewFilterState(),
		Notes:     products.NewNoteService(upstreamClient, orchestrator),
	}

	e := echo.New()
	g := e.Group("/api")
	g.Use(auth.Middleware(sessions))
	api.ApplyModules(g, deps)
	return e, deps
}

// do issues an authenticated request against the console surface.
func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer test-key")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
