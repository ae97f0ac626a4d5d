package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"sixgo.GO/config"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	config.LoadAppConfig()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(func() string { return srv.URL }, WithTokenSource(staticTokens("tok-123")))
	return c, srv
}

func TestGet_DecodesEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Locale-Code") == "" {
			t.Error("X-Locale-Code header missing")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		w.Write([]byte(`{"message":"ok","data":{"name":"guitar"},"ts":"t"}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/thing", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Name != "guitar" {
		t.Errorf("Name = %q, want guitar", out.Name)
	}
}

func TestGet_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"message":"ok","data":null,"ts":"t"}`))
	})

	q := url.Values{}
	q.Add("categoryCodes", "A")
	q.Add("categoryCodes", "B")
	if err := c.Get(context.Background(), "/products/cs", q, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := gotQuery["categoryCodes"]; len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("categoryCodes = %v, want [A B]", got)
	}
}

func TestGet_RetriesOn500(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"message":"ok","data":null,"ts":"t"}`))
	})

	if err := c.Get(context.Background(), "/thing", nil, nil); err != nil {
		t.Fatalf("Get after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGet_NoRetryOn400(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	err := c.Get(context.Background(), "/thing", nil, nil)
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnauthorizedHook(t *testing.T) {
	hookCalls := 0
	config.LoadAppConfig()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(func() string { return srv.URL }, WithUnauthorizedHook(func() { hookCalls++ }))
	err := c.Post(context.Background(), "/account/logout", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if hookCalls != 1 {
		t.Errorf("hook calls = %d, want 1", hookCalls)
	}
}

func TestPost_WrapsBodyInData(t *testing.T) {
	var gotBody string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw := make([]byte, r.ContentLength)
		r.Body.Read(raw)
		gotBody = string(raw)
		w.Write([]byte(`{"message":"ok","data":null,"ts":"t"}`))
	})

	if err := c.Post(context.Background(), "/products/cs", map[string]string{"productId": "p1"}, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	want := `{"data":{"productId":"p1"}}`
	if gotBody != want {
		t.Errorf("body = %s, want %s", gotBody, want)
	}
}

func TestNormalizeError_DetailsWin(t *testing.T) {
	body := []byte(`{"message":"generic","data":[{"code":"E1","description":"First problem"},{"code":"E2","description":"Second problem"}],"ts":"t"}`)
	e := normalizeError(400, body)
	if e.Message != "First problem. Second problem" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Code != "E1" {
		t.Errorf("Code = %q, want E1", e.Code)
	}
	if len(e.Details) != 2 {
		t.Errorf("Details = %d, want 2", len(e.Details))
	}
}

func TestNormalizeError_StripsTrace(t *testing.T) {
	body := []byte(`{"message":"Bad thing happened, Non-Production trace: at Foo.Bar()","ts":"t"}`)
	e := normalizeError(500, body)
	if e.Message != "Bad thing happened" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestNormalizeError_StatusDefaults(t *testing.T) {
	cases := map[int]string{
		400: "Invalid request. Please check your input.",
		401: "Session expired. Please login again.",
		403: "You do not have permission to perform this action.",
		404: "The requested resource was not found.",
		500: "Server error. Please try again later.",
	}
	for status, want := range cases {
		if got := normalizeError(status, nil).Message; got != want {
			t.Errorf("status %d: Message = %q, want %q", status, got, want)
		}
	}
}
