package localstore

import (
	"testing"
)

func memStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return s
}

func TestSet_Get(t *testing.T) {
	s := memStore(t)
	if err := s.Set("auth", []byte(`{"accessToken":"x"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := s.Get("auth")
	if !ok {
		t.Fatal("Get: want hit")
	}
	if string(got) != `{"accessToken":"x"}` {
		t.Errorf("Get = %s", got)
	}
}

func TestGet_Missing(t *testing.T) {
	s := memStore(t)
	if _, ok := s.Get("nope"); ok {
		t.Error("missing slot should be a miss")
	}
}

func TestSet_Overwrites(t *testing.T) {
	s := memStore(t)
	s.Set("slot", []byte("one"))
	s.Set("slot", []byte("two"))
	got, _ := s.Get("slot")
	if string(got) != "two" {
		t.Errorf("Get = %s, want two", got)
	}
}

func TestDelete(t *testing.T) {
	s := memStore(t)
	s.Set("slot", []byte("x"))
	if err := s.Delete("slot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get("slot"); ok {
		t.Error("deleted slot should be a miss")
	}
}

func TestGetJSON_CorruptSlotIsMiss(t *testing.T) {
	s := memStore(t)
	s.Set("slot", []byte("{not json"))
	var out map[string]string
	if GetJSON(s, "slot", &out) {
		t.Error("corrupt slot should be a miss, not an error")
	}
}

func TestSetJSON_RoundTrip(t *testing.T) {
	s := memStore(t)
	type session struct {
		AccessToken string `json:"accessToken"`
		UserName    string `json:"userName"`
	}
	if err := SetJSON(s, "auth", session{AccessToken: "t", UserName: "cs-agent"}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var got session
	if !GetJSON(s, "auth", &got) {
		t.Fatal("GetJSON: want hit")
	}
	if got.UserName != "cs-agent" {
		t.Errorf("UserName = %q", got.UserName)
	}
}
